package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueRoutesJobsByType(t *testing.T) {
	done := make(chan string, 2)
	router := Router{
		"portal.toggle": func(_ context.Context, job Job) error {
			done <- "portal:" + job.Payload.(string)
			return nil
		},
		"calendar.sync": func(_ context.Context, job Job) error {
			done <- "sync"
			return nil
		},
	}
	q := NewQueue("integrations", router.Handle, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "1", Type: "portal.toggle", Payload: "moodle"}))
	require.NoError(t, q.Enqueue(Job{ID: "2", Type: "calendar.sync"}))

	got := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case v := <-done:
			got[v] = true
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.True(t, got["portal:moodle"])
	assert.True(t, got["sync"])
}

func TestRouterRejectsUnknownType(t *testing.T) {
	err := Router{}.Handle(context.Background(), Job{Type: "nope"})
	assert.True(t, errors.Is(err, ErrUnknownJobType))
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var attempts int32
	succeeded := make(chan struct{})
	q := NewQueue("retry", func(context.Context, Job) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return errors.New("transient")
		}
		close(succeeded)
		return nil
	}, QueueConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "r1", Type: "x"}))
	select {
	case <-succeeded:
	case <-time.After(time.Second):
		t.Fatal("job was not retried")
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestQueueRejectsBeforeStartAndWhenFull(t *testing.T) {
	block := make(chan struct{})
	q := NewQueue("full", func(ctx context.Context, _ Job) error {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return nil
	}, QueueConfig{Workers: 1, BufferSize: 1})

	assert.Error(t, q.Enqueue(Job{ID: "early"}))
	assert.False(t, q.Running())

	q.Start(context.Background())
	assert.True(t, q.Running())
	defer func() {
		close(block)
		q.Stop()
	}()

	require.NoError(t, q.Enqueue(Job{ID: "a"}))
	// The worker may or may not have taken "a" yet; two more enqueues must overflow a buffer of one.
	errA := q.Enqueue(Job{ID: "b"})
	errB := q.Enqueue(Job{ID: "c"})
	assert.True(t, errors.Is(errA, ErrQueueFull) || errors.Is(errB, ErrQueueFull))
}
