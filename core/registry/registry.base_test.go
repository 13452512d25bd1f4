package registry

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("a", 2)
	require.NoError(t, err)
	assert.False(t, isNew)

	// Re-registering replaces the previous entry.
	value, exists := r.Get("a")
	assert.True(t, exists)
	assert.Equal(t, 2, value)

	_, exists = r.Get("missing")
	assert.False(t, exists)
}

func TestRegistry_RegisterRejectsEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.Register("", 1)
	assert.Error(t, err)
}

func TestRegistry_GetOrCreate_CreatesOnce(t *testing.T) {
	r := NewRegistry[int]()
	var creations int32

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := r.GetOrCreate("shared", func() (int, error) {
				atomic.AddInt32(&creations, 1)
				return 42, nil
			})
			assert.NoError(t, err)
			assert.Equal(t, 42, value)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&creations))
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.Register("a", "x")
	require.NoError(t, err)

	var cleaned string
	deleted, err := r.Clear("a", func(v string) error {
		cleaned = v
		return nil
	})
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Equal(t, "x", cleaned)

	_, exists := r.Get("a")
	assert.False(t, exists)

	deleted, err = r.Clear("a", nil)
	require.NoError(t, err)
	assert.False(t, deleted)
}
