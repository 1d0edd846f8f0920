package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierFIFOAndTermination(t *testing.T) {
	t.Parallel()

	f := newFrontier()
	f.push(Task{URL: "a"})
	f.push(Task{URL: "b", Depth: 1})

	task, ok := f.next()
	require.True(t, ok)
	assert.Equal(t, "a", task.URL)
	f.done()

	task, ok = f.next()
	require.True(t, ok)
	assert.Equal(t, Task{URL: "b", Depth: 1}, task)
	f.done()

	_, ok = f.next()
	assert.False(t, ok, "empty queue with nothing in flight is finished")
}

func TestFrontierWaitsForInFlightTasks(t *testing.T) {
	t.Parallel()

	f := newFrontier()
	f.push(Task{URL: "seed"})
	_, ok := f.next()
	require.True(t, ok)

	got := make(chan Task, 1)
	go func() {
		task, ok := f.next()
		if ok {
			got <- task
		}
		close(got)
	}()

	time.Sleep(20 * time.Millisecond)
	f.push(Task{URL: "child", Depth: 1})
	f.done()

	select {
	case task := <-got:
		assert.Equal(t, "child", task.URL)
	case <-time.After(time.Second):
		t.Fatal("waiting worker never received the pushed task")
	}
}

func TestFrontierClose(t *testing.T) {
	t.Parallel()

	f := newFrontier()
	f.push(Task{URL: "seed"})
	_, ok := f.next()
	require.True(t, ok)

	released := make(chan struct{})
	go func() {
		_, ok := f.next()
		assert.False(t, ok)
		close(released)
	}()

	f.close()
	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("close did not release waiting worker")
	}
	f.push(Task{URL: "late"})
	_, ok = f.next()
	assert.False(t, ok)
}
