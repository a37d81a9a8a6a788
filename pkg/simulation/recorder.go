package simulation

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	lru "github.com/hashicorp/golang-lru/v2"
	da "github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/datastructure"
	"github.com/nathanguyenn/STR-Nathan-Nguyen/pkg/util"
	"go.uber.org/zap"
)

// Recorder appends tick records to a snapshot file for later replay.
type Recorder struct {
	writer   *da.SnapshotWriter
	logger   *zap.Logger
	written  int
	capacity int
}

func NewRecorder(filename string, numTicks int, logger *zap.Logger) (*Recorder, error) {
	if numTicks <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"recording needs a positive tick count, got %d", numTicks)
	}
	w, err := da.NewSnapshotWriter(filename, numTicks)
	if err != nil {
		return nil, err
	}
	return &Recorder{writer: w, logger: logger, capacity: numTicks}, nil
}

func (r *Recorder) Record(rec da.TickRecord) error {
	if r.written >= r.capacity {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"already recorded %d ticks, file header promises %d", r.written, r.capacity)
	}
	if err := r.writer.AppendTick(rec); err != nil {
		return err
	}
	r.written++
	return nil
}

func (r *Recorder) Close() error {
	r.logger.Info("closing snapshot file",
		zap.Int("ticks_written", r.written), zap.Int("ticks_promised", r.capacity))
	return r.writer.Close()
}

// Replayer streams a recorded run back in tick order, keeping decoded ticks
// in an LRU cache so several policies can evaluate the same tick without the
// file being decoded again. Decoded vehicle records are validated before they
// reach any policy; a malformed tick is rejected whole.
type Replayer struct {
	filename string
	reader   *da.SnapshotReader
	cache    *lru.Cache[int, da.TickRecord]
	validate *validator.Validate
	trans    ut.Translator
	logger   *zap.Logger
	pos      int
}

func NewReplayer(filename string, cacheSize int, logger *zap.Logger) (*Replayer, error) {
	reader, err := da.NewSnapshotReader(filename)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New[int, da.TickRecord](cacheSize)
	if err != nil {
		reader.Close()
		return nil, err
	}

	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	return &Replayer{
		filename: filename,
		reader:   reader,
		cache:    cache,
		validate: validate,
		trans:    trans,
		logger:   logger,
	}, nil
}

func (rp *Replayer) NumTicks() int {
	return rp.reader.NumTicks()
}

// Tick returns the record at position n in file order, decoding forward from
// the current stream position or restarting the stream for a rewind.
func (rp *Replayer) Tick(n int) (da.TickRecord, error) {
	if rec, ok := rp.cache.Get(n); ok {
		return rec, nil
	}
	if n < 0 || n >= rp.reader.NumTicks() {
		return da.TickRecord{}, util.WrapErrorf(nil, util.ErrNotFound,
			"tick %d outside the recorded range of %d", n, rp.reader.NumTicks())
	}
	if n < rp.pos {
		if err := rp.restart(); err != nil {
			return da.TickRecord{}, err
		}
	}

	var rec da.TickRecord
	for rp.pos <= n {
		var err error
		rec, err = rp.reader.NextTick()
		if err != nil {
			return da.TickRecord{}, err
		}
		if err := rp.checkVehicles(rec); err != nil {
			return da.TickRecord{}, err
		}
		rp.cache.Add(rp.pos, rec)
		rp.pos++
	}
	return rec, nil
}

func (rp *Replayer) restart() error {
	if err := rp.reader.Close(); err != nil {
		return err
	}
	reader, err := da.NewSnapshotReader(rp.filename)
	if err != nil {
		return err
	}
	rp.logger.Debug("replay stream restarted", zap.String("file", rp.filename))
	rp.reader = reader
	rp.pos = 0
	return nil
}

// checkVehicles rejects a tick whose decoded vehicles violate the record
// shape.
func (rp *Replayer) checkVehicles(rec da.TickRecord) error {
	for _, v := range rec.Vehicles {
		if err := rp.validate.Struct(v); err != nil {
			return util.WrapErrorf(err, util.ErrBadParamInput,
				"tick %d vehicle %s: %v", rec.Tick, v.ID, translateError(err, rp.trans))
		}
	}
	return nil
}

func translateError(err error, trans ut.Translator) []error {
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	out := make([]error, 0, len(validatorErrs))
	for _, fieldErr := range validatorErrs {
		out = append(out, errors.New(fieldErr.Translate(trans)))
	}
	return out
}

func (rp *Replayer) Close() error {
	return rp.reader.Close()
}
