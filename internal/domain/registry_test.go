package domain

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	require.True(t, reg.Register("example.com"))
	require.False(t, reg.Register("example.com"))
	assert.Equal(t, 1, reg.Len())
	assert.True(t, reg.Contains("example.com"))
	assert.False(t, reg.Contains("example.org"))
	assert.False(t, reg.Register(""), "empty domains are never stored")
}

func TestRegistryObserverSeesNewInsertsOnly(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		events []string
	)
	reg := NewRegistry(func(d Domain, total int) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, fmt.Sprintf("%s=%d", d, total))
	})

	reg.Register("b.com")
	reg.Register("a.org")
	reg.Register("b.com")

	assert.Equal(t, []string{"b.com=1", "a.org=2"}, events)
}

func TestRegistrySorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, d := range []Domain{"zeta.net", "alpha.com", "mid.co.uk"} {
		reg.Register(d)
	}
	assert.Equal(t, []Domain{"alpha.com", "mid.co.uk", "zeta.net"}, reg.Sorted())
}

func TestRegistryConcurrentRegister(t *testing.T) {
	t.Parallel()

	var added sync.Map
	reg := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d := Domain(fmt.Sprintf("site%d.com", j))
				if reg.Register(d) {
					_, dup := added.LoadOrStore(d, worker)
					assert.False(t, dup, "domain %s reported new twice", d)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, reg.Len())
}
