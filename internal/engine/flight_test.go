package engine_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pipeshot/internal/engine"
)

func TestFlightStreamsAllSegments(t *testing.T) {
	b, cannon := pipeToGoal()
	ball := cannon.Fire()
	want := engine.Run(b, ball, engine.DefaultOptions())

	var (
		mu     sync.Mutex
		calls  int
		result bool
	)
	fl := engine.Launch(context.Background(), b, ball, engine.DefaultOptions(), func(_ engine.Ball, won bool) {
		mu.Lock()
		defer mu.Unlock()
		calls++
		result = won
	})

	n := 0
	for range fl.Segments() {
		n++
		fl.Ack()
	}
	fl.Wait()

	wantSegs := 0
	for _, tr := range want.Transitions {
		wantSegs += len(tr.Segments)
	}
	assert.Equal(t, wantSegs, n)
	assert.Equal(t, engine.StateWon, fl.State())
	assert.Equal(t, want.Path, fl.Path())
	assert.Equal(t, ball.ID, fl.ID())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls)
	assert.True(t, result)
}

func TestFlightWaitsForAck(t *testing.T) {
	b, cannon := pipeToGoal()
	fl := engine.Launch(context.Background(), b, cannon.Fire(), engine.DefaultOptions(), nil)
	defer fl.Cancel()

	<-fl.Segments()
	select {
	case <-fl.Segments():
		t.Fatal("received a second segment before acknowledging the first")
	case <-time.After(20 * time.Millisecond):
	}
	fl.Ack()

	select {
	case _, ok := <-fl.Segments():
		assert.True(t, ok)
	case <-time.After(time.Second):
		t.Fatal("no segment after ack")
	}
}

func TestFlightCancelSkipsCallback(t *testing.T) {
	b, cannon := pipeToGoal()
	called := make(chan struct{}, 1)
	fl := engine.Launch(context.Background(), b, cannon.Fire(), engine.DefaultOptions(), func(engine.Ball, bool) {
		called <- struct{}{}
	})

	<-fl.Segments()
	fl.Cancel()

	select {
	case <-fl.Done():
	case <-time.After(time.Second):
		t.Fatal("flight did not stop after cancel")
	}

	_, open := <-fl.Segments()
	assert.False(t, open)
	assert.Len(t, called, 0)

	// Acking a finished flight must not block.
	fl.Ack()
}

func TestFlightContextCancel(t *testing.T) {
	b, cannon := pipeToGoal()
	ctx, cancel := context.WithCancel(context.Background())
	fl := engine.Launch(ctx, b, cannon.Fire(), engine.DefaultOptions(), nil)

	cancel()
	select {
	case <-fl.Done():
	case <-time.After(time.Second):
		t.Fatal("flight ignored context cancellation")
	}
}

func TestFlightLostOnDeadPipe(t *testing.T) {
	b := engine.NewBoard(10, 8)
	b.Set(engine.C(0, 0), engine.Cannon())
	b.Set(engine.C(1, 0), engine.Pipe(engine.PipeRightUp))

	done := make(chan bool, 1)
	fl := engine.Launch(context.Background(), b, engine.Launcher{Pos: engine.C(0, 0), Dir: engine.DirRight}.Fire(),
		engine.DefaultOptions(), func(_ engine.Ball, won bool) { done <- won })

	n := 0
	for range fl.Segments() {
		n++
		fl.Ack()
	}
	require.Equal(t, 0, n)
	assert.False(t, <-done)
	assert.Equal(t, engine.LossDeadPipe, fl.Reason())
}

func TestFlightIDStableWhileFlying(t *testing.T) {
	b, cannon := pipeToGoal()
	ball := cannon.Fire()
	fl := engine.Launch(context.Background(), b, ball, engine.DefaultOptions(), nil)

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				assert.Equal(t, ball.ID, fl.ID())
			}
		}
	}()

	for range fl.Segments() {
		fl.Ack()
	}
	fl.Wait()
	close(stop)
	wg.Wait()

	assert.Equal(t, ball.ID, fl.ID())
	assert.Equal(t, engine.StateWon, fl.State())
}
