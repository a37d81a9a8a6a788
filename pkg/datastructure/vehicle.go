package datastructure

// Vehicle is the per-tick record the external driver reports for one routed
// vehicle. Fields stay exported: the snapshot codec and the request validator
// both reflect over them.
type Vehicle struct {
	ID           string  `json:"id" validate:"required"`
	CurrentEdge  string  `json:"current_edge" validate:"required"`
	Destination  string  `json:"destination" validate:"required"`
	Deadline     float64 `json:"deadline"`
	CurrentSpeed float64 `json:"current_speed" validate:"gte=0"`
}

func NewVehicle(id, currentEdge, destination string, deadline, currentSpeed float64) Vehicle {
	return Vehicle{
		ID:           id,
		CurrentEdge:  currentEdge,
		Destination:  destination,
		Deadline:     deadline,
		CurrentSpeed: currentSpeed,
	}
}

// LocalTargetMap is the only output of the decision core per tick: vehicle id
// to the edge id submitted as that vehicle's next local target. Vehicles
// absent from the map are left to the driver's default handling.
type LocalTargetMap map[string]string
