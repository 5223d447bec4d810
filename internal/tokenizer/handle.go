package tokenizer

import (
	"fmt"
	"log/slog"
)

// Handle owns a single tokenizer backend resource. The resource is exclusive
// to the handle: it is never shared between handles or duplicated.
//
// A handle is either live or released. Every encode/decode call on a released
// handle fails with ErrReleased. Handles are not safe for concurrent use;
// callers sharing one across goroutines must synchronize externally.
type Handle struct {
	backend  Backend
	released bool
}

func newHandle(b Backend) *Handle {
	return &Handle{backend: b}
}

// Encode tokenizes text without sequence markers. It is equivalent to
// EncodeWithMarkers(text, 0, 0).
func (h *Handle) Encode(text string) ([]int64, error) {
	return h.EncodeWithMarkers(text, 0, 0)
}

// EncodeWithMarkers tokenizes text and wraps the result in sequence markers:
// exactly bos BOS ids are prepended and eos EOS ids appended, in that order.
// The call is a pure read; it does not mutate backend state.
func (h *Handle) EncodeWithMarkers(text string, bos, eos int) ([]int64, error) {
	if h.released {
		return nil, ErrReleased
	}

	if bos < 0 || eos < 0 {
		return nil, fmt.Errorf("%w: negative marker count (bos=%d eos=%d)", ErrTokenize, bos, eos)
	}

	ids, err := h.backend.EncodeIDs(text)
	if err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrTokenize, err)
	}

	out := make([]int64, 0, bos+len(ids)+eos)
	for i := 0; i < bos; i++ {
		out = append(out, h.backend.BOS())
	}

	out = append(out, ids...)

	for i := 0; i < eos; i++ {
		out = append(out, h.backend.EOS())
	}

	return out, nil
}

// DecodeToken decodes cur into its textual piece, using prev only to resolve
// rendering state of the current token. Callers reconstruct full text by
// invoking this once per generated token, threading the previous token
// through.
func (h *Handle) DecodeToken(prev, cur int64) (string, error) {
	if h.released {
		return "", ErrReleased
	}

	piece, err := h.backend.DecodePiece(prev, cur)
	if err != nil {
		return "", fmt.Errorf("%w: decode token %d: %v", ErrTokenize, cur, err)
	}

	return piece, nil
}

// BOS returns the backend's beginning-of-sequence marker id.
func (h *Handle) BOS() (int64, error) {
	if h.released {
		return 0, ErrReleased
	}

	return h.backend.BOS(), nil
}

// EOS returns the backend's end-of-sequence marker id.
func (h *Handle) EOS() (int64, error) {
	if h.released {
		return 0, ErrReleased
	}

	return h.backend.EOS(), nil
}

// Release frees the backend resource. Calling it more than once is a no-op;
// the first call wins and later encode/decode calls fail with ErrReleased.
func (h *Handle) Release() {
	if h.released {
		return
	}

	h.released = true

	if err := h.backend.Close(); err != nil {
		slog.Warn("tokenizer backend close failed", "error", err)
	}
}

// Released reports whether the handle's resource has been released.
func (h *Handle) Released() bool {
	return h.released
}
