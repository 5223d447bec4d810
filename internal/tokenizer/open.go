package tokenizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BackendKind names a tokenizer backend implementation.
type BackendKind string

const (
	// BackendAuto selects a backend from the artifact's file extension.
	BackendAuto BackendKind = "auto"
	// BackendSentencePiece is the pure-Go SentencePiece backend (.model).
	BackendSentencePiece BackendKind = "sentencepiece"
	// BackendTiktoken is the pure-Go BPE backend for tiktoken encodings.
	BackendTiktoken BackendKind = "tiktoken"
	// BackendNative drives a tokenizer engine in a shared library.
	BackendNative BackendKind = "native"
)

// NormalizeBackendKind maps a configuration string to a BackendKind.
func NormalizeBackendKind(raw string) (BackendKind, error) {
	kind := BackendKind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == "" {
		kind = BackendAuto
	}

	switch kind {
	case BackendAuto, BackendSentencePiece, BackendTiktoken, BackendNative:
		return kind, nil
	default:
		return "", fmt.Errorf("invalid tokenizer backend %q (want %s|%s|%s|%s)",
			raw, BackendAuto, BackendSentencePiece, BackendTiktoken, BackendNative)
	}
}

// Options control backend selection for Open.
type Options struct {
	kind      BackendKind
	nativeLib string
	bosID     int64
	eosID     int64
	markerSet bool
}

// Option adjusts Open behavior.
type Option func(*Options)

// WithBackend forces a specific backend instead of extension-based selection.
func WithBackend(kind BackendKind) Option {
	return func(o *Options) { o.kind = kind }
}

// WithNativeLibrary sets the shared library implementing the native tokenizer
// boundary. Implies the native backend when the backend kind is auto.
func WithNativeLibrary(path string) Option {
	return func(o *Options) { o.nativeLib = path }
}

// WithMarkerIDs overrides the BOS/EOS marker token ids reported by backends
// that cannot read them from the artifact.
func WithMarkerIDs(bos, eos int64) Option {
	return func(o *Options) {
		o.bosID = bos
		o.eosID = eos
		o.markerSet = true
	}
}

// newBackend is a seam for tests; production code always uses the default.
var newBackend = defaultNewBackend

// Open constructs a tokenizer handle from a filesystem artifact. The path
// must name an existing, readable, regular file; otherwise Open fails with
// ErrModelNotFound before any backend resource is allocated.
func Open(path string, opts ...Option) (*Handle, error) {
	o := Options{kind: BackendAuto}
	for _, opt := range opts {
		opt(&o)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotFound, path, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrModelNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrModelNotFound, path, err)
	}

	_ = f.Close()

	backend, err := newBackend(path, o)
	if err != nil {
		return nil, fmt.Errorf("open tokenizer %q: %w", path, err)
	}

	return newHandle(backend), nil
}

func defaultNewBackend(path string, o Options) (Backend, error) {
	kind := o.kind
	if kind == BackendAuto {
		kind = detectKind(path, o)
	}

	switch kind {
	case BackendSentencePiece:
		return newSentencePieceBackend(path, o)
	case BackendTiktoken:
		return newTiktokenBackend(path, o)
	case BackendNative:
		if o.nativeLib == "" {
			return nil, fmt.Errorf("native tokenizer backend requires a shared library path")
		}

		return newNativeBackend(o.nativeLib, path)
	default:
		return nil, fmt.Errorf("no tokenizer backend for %q", path)
	}
}

func detectKind(path string, o Options) BackendKind {
	if o.nativeLib != "" {
		return BackendNative
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".tiktoken":
		return BackendTiktoken
	default:
		// SentencePiece .model artifacts are the common case.
		return BackendSentencePiece
	}
}
