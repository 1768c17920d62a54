package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesScheduleJobs(t *testing.T) {
	var mu sync.Mutex
	var rendered []string
	q := NewQueue("pdf_exports", func(_ context.Context, job Job) error {
		mu.Lock()
		rendered = append(rendered, job.ScheduleID)
		mu.Unlock()
		return nil
	}, QueueConfig{Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "job-1", Type: "pdf_export", ScheduleID: "sched-1"}))
	require.NoError(t, q.Enqueue(Job{ID: "job-2", Type: "pdf_export", ScheduleID: "sched-2"}))

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		done := len(rendered)
		mu.Unlock()
		if done == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("jobs not processed in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	assert.ElementsMatch(t, []string{"sched-1", "sched-2"}, rendered)
}

func TestQueueRejectsEnqueueBeforeStart(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	err := q.Enqueue(Job{ID: "job-1", ScheduleID: "sched-1"})
	require.Error(t, err)
}

func TestQueueRetriesFailedJobs(t *testing.T) {
	var mu sync.Mutex
	var attempts []int
	q := NewQueue("retry", func(_ context.Context, job Job) error {
		mu.Lock()
		attempts = append(attempts, job.Attempt)
		mu.Unlock()
		if job.Attempt == 0 {
			return errors.New("transient render failure")
		}
		return nil
	}, QueueConfig{Workers: 1, RetryDelay: time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "job-1", Type: "pdf_export", ScheduleID: "sched-1"}))

	deadline := time.After(2 * time.Second)
	for {
		mu.Lock()
		done := len(attempts) == 2
		mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatal("job was not retried in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
	assert.Equal(t, []int{0, 1}, attempts)
}
