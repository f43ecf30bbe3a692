// file: internals/services/aigen/generator.go
package aigen

import (
	"context"
	"errors"
)

// ErrUpstream marks a failed or timed-out inference call. Handlers surface it
// as 502 UPSTREAM_ERROR, distinct from a successful-but-empty generation.
var ErrUpstream = errors.New("ai generation upstream failure")

// Generator is the single entry point to the inference provider. One call,
// no retry; the context carries the timeout.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// StaticGenerator returns a fixed reply; used in tests and as a dry-run mode.
type StaticGenerator struct {
	Reply string
	Err   error
}

func (g StaticGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	return g.Reply, nil
}
