// Package tokenizer bridges filesystem-resident tokenizer artifacts and the
// engines that consume them. A Handle owns exactly one backend resource and
// exposes encode/decode primitives plus an explicit, idempotent release.
package tokenizer

import "errors"

var (
	// ErrModelNotFound is returned by Open when the tokenizer path does not
	// name an existing, readable, regular file.
	ErrModelNotFound = errors.New("tokenizer model not found")

	// ErrTokenize is returned when the backend rejects an encode or decode
	// call (malformed input, out-of-range token id).
	ErrTokenize = errors.New("tokenization failed")

	// ErrReleased is returned by every operation on a handle whose resource
	// was already released.
	ErrReleased = errors.New("tokenizer already released")
)

// Backend is the narrow boundary a tokenizer engine must satisfy. The engine
// may live in-process (pure Go) or behind a shared-library FFI binding; the
// Handle treats it as opaque either way.
//
// Backends give no thread-safety guarantee. Callers sharing a backend across
// goroutines must synchronize externally.
type Backend interface {
	// EncodeIDs tokenizes text into raw token ids, without sequence markers.
	EncodeIDs(text string) ([]int64, error)

	// DecodePiece renders cur into its textual piece. prev resolves only the
	// rendering state of the current token (for example leading-space
	// suppression after a sequence marker); it is not decoded itself.
	DecodePiece(prev, cur int64) (string, error)

	// BOS returns the beginning-of-sequence marker token id.
	BOS() int64

	// EOS returns the end-of-sequence marker token id.
	EOS() int64

	// Close frees the underlying resource. Implementations must tolerate
	// repeated calls.
	Close() error
}
