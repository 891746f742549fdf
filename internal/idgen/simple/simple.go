package simple

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Generator hands out connection ids ("conn_1", "conn_2", ...). It is safe
// for concurrent use by the accept loop and its handlers.
type Generator struct {
	prefix  string
	counter atomic.Int64
}

func New(prefix string) *Generator {
	//nolint:exhaustruct
	return &Generator{prefix: prefix}
}

func (g *Generator) GetID(_ context.Context) (string, error) {
	return fmt.Sprintf("%s_%d", g.prefix, g.counter.Add(1)), nil
}
