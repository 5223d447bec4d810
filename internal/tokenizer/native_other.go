//go:build !(linux || darwin)

package tokenizer

import "fmt"

// nativeBackend is unavailable on platforms without dlopen support. The type
// is kept so the package API stays build-compatible.
type nativeBackend struct{}

func newNativeBackend(libPath, artifactPath string) (*nativeBackend, error) {
	return nil, fmt.Errorf("native tokenizer backend is unavailable on this platform (library %q)", libPath)
}

func (b *nativeBackend) EncodeIDs(string) ([]int64, error) {
	return nil, fmt.Errorf("native tokenizer backend is unavailable on this platform")
}

func (b *nativeBackend) DecodePiece(int64, int64) (string, error) {
	return "", fmt.Errorf("native tokenizer backend is unavailable on this platform")
}

func (b *nativeBackend) BOS() int64 { return 0 }

func (b *nativeBackend) EOS() int64 { return 0 }

func (b *nativeBackend) Close() error { return nil }
