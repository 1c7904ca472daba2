package session

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	a, err := r.Open("chart 1", "png")
	require.NoError(t, err)
	b, err := r.Open("chart 2", "png")
	require.NoError(t, err)

	_, err = r.Open("chart 1", "png")
	assert.ErrorIs(t, err, ErrDuplicateView)

	assert.Equal(t, []View{a, b}, r.List())

	require.NoError(t, r.Close(a.ID))
	assert.ErrorIs(t, r.Close(a.ID), ErrUnknownView)
	assert.Equal(t, []View{b}, r.List())

	// A closed name can be reopened.
	c, err := r.Open("chart 1", "png")
	require.NoError(t, err)
	assert.Greater(t, c.ID, b.ID)

	assert.Equal(t, []View{b, c}, r.CloseAll())
	assert.Empty(t, r.List())
}

func TestRegistryConcurrentOpen(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Open("view "+strconv.Itoa(i), "xlsx")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.List(), 50)
}
