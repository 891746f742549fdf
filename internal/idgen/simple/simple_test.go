package simple

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIDSequence(t *testing.T) {
	g := New("conn")

	first, err := g.GetID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "conn_1", first)

	second, err := g.GetID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "conn_2", second)
}

func TestGetIDConcurrentUnique(t *testing.T) {
	g := New("conn")

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		wg   sync.WaitGroup
	)

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			id, _ := g.GetID(context.Background())

			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}

	wg.Wait()
	assert.Len(t, seen, 50)
}
