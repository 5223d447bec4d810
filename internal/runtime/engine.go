package runtime

import (
	"context"

	"github.com/example/go-llm-host/internal/llm"
)

// Engine is the boundary the external model-execution runtime satisfies: it
// consumes a fully populated session config and produces a live session.
// No further engine surface is part of this host layer.
type Engine interface {
	NewSession(ctx context.Context, cfg llm.SessionConfig) (Session, error)
}

// Session is a running inference session. Generate streams decoded pieces to
// the callback until the model emits an end-of-sequence or ctx is cancelled.
type Session interface {
	Generate(ctx context.Context, prompt string, emit func(piece string) error) error
	Close() error
}
