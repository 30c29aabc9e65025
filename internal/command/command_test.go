package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRunsInOrder(t *testing.T) {
	var order []string

	step := func(name string) Command {
		return Instant(name, func() error {
			order = append(order, name)
			return nil
		})
	}

	seq := Sequence("teste", step("a"), step("b"), step("c"))
	require.NoError(t, seq.Run(context.Background()))

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSequenceStopsOnError(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	seq := Sequence("teste",
		Instant("a", func() error {
			order = append(order, "a")
			return nil
		}),
		Instant("b", func() error {
			return boom
		}),
		Instant("c", func() error {
			order = append(order, "c")
			return nil
		}),
	)

	err := seq.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a"}, order)
}

func TestWaitRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := Wait(5 * time.Second).Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSchedulerRejectsConcurrentRoutines(t *testing.T) {
	sched := NewScheduler()
	defer sched.Shutdown()

	release := make(chan struct{})
	long := New("longa", func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-release:
			return nil
		}
	})

	require.NoError(t, sched.Submit(long))
	assert.True(t, sched.Busy())

	// Segunda rotina é rejeitada enquanto a primeira roda
	err := sched.Submit(Instant("curta", func() error { return nil }))
	require.Error(t, err)

	close(release)
	sched.Wait()
	assert.False(t, sched.Busy())

	// Com o agendador livre, uma nova rotina é aceita
	require.NoError(t, sched.Submit(Instant("curta", func() error { return nil })))
	sched.Wait()
}

func TestSchedulerCancelCurrent(t *testing.T) {
	sched := NewScheduler()
	defer sched.Shutdown()

	require.NoError(t, sched.Submit(Wait(5*time.Second)))

	start := time.Now()
	sched.CancelCurrent()
	sched.Wait()

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, sched.Busy())
}
