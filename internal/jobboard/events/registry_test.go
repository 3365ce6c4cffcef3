package events

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryInvalidateAndRefresh(t *testing.T) {
	r := NewRegistry()

	assert.False(t, r.Stale("/jobs"))

	r.Invalidate("/jobs", "/dashboard")
	assert.True(t, r.Stale("/jobs"))
	assert.True(t, r.Stale("/dashboard"))
	assert.False(t, r.Stale("/jobs/123"))

	r.Refresh("/jobs")
	assert.False(t, r.Stale("/jobs"))
	assert.True(t, r.Stale("/dashboard"), "refreshing one path must not clear others")
}

func TestRegistryRefreshUnknownPath(t *testing.T) {
	r := NewRegistry()
	r.Refresh("/never-marked")
	assert.False(t, r.Stale("/never-marked"))
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			path := fmt.Sprintf("/jobs/%d", n)
			r.Invalidate(path)
			r.Stale(path)
			r.Refresh(path)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		assert.False(t, r.Stale(fmt.Sprintf("/jobs/%d", i)))
	}
}
