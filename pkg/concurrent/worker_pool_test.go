package concurrent

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkerPoolProcessesEveryJob(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	for i := 0; i < 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Start(func(job int) int { return job * 2 })
	wp.Wait()

	got := make([]int, 0, 100)
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	sort.Ints(got)

	require.Len(t, got, 100)
	for i, v := range got {
		require.Equal(t, i*2, v)
	}
}

func TestWorkerPoolSingleWorkerKeepsOrder(t *testing.T) {
	wp := NewWorkerPool[string, string](1, 3)
	for _, s := range []string{"a", "b", "c"} {
		wp.AddJob(s)
	}
	wp.Close()
	wp.Start(func(job string) string { return job })
	wp.Wait()

	var got []string
	for res := range wp.CollectResults() {
		got = append(got, res)
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
}

func TestWorkerPoolCanceledContextDropsRemainingJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp := NewWorkerPool[int, int](2, 50)
	for i := 0; i < 50; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.StartWithContext(ctx, func(job int) int { return job })
	wp.Wait()

	count := 0
	for range wp.CollectResults() {
		count++
	}
	require.Zero(t, count)
}
