//go:build linux || darwin

package tokenizer

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
)

// nativeBackend drives a tokenizer engine compiled into a shared library.
// The library must export the C surface:
//
//	void*    llm_tokenizer_new(const char* artifact_path);
//	int64_t  llm_tokenizer_encode(void* h, const char* text, int64_t* out, int64_t cap);
//	char*    llm_tokenizer_decode(void* h, int64_t prev, int64_t cur);
//	int64_t  llm_tokenizer_bos(void* h);
//	int64_t  llm_tokenizer_eos(void* h);
//	char*    llm_tokenizer_error(void* h);
//	void     llm_tokenizer_free(void* h);
//
// encode returns the number of ids the text tokenizes to, writing at most cap
// of them into out; a negative return signals failure. decode returns an
// empty string on failure, with the cause available from llm_tokenizer_error.
type nativeBackend struct {
	lib     uintptr
	handle  uintptr
	encode  func(h uintptr, text string, out []int64, capacity int64) int64
	decode  func(h uintptr, prev, cur int64) string
	bosFn   func(h uintptr) int64
	eosFn   func(h uintptr) int64
	lastErr func(h uintptr) string
	free    func(h uintptr)
}

func newNativeBackend(libPath, artifactPath string) (*nativeBackend, error) {
	lib, err := purego.Dlopen(libPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer library %q: %w", libPath, err)
	}

	b := &nativeBackend{lib: lib}

	var create func(path string) uintptr

	symbols := []struct {
		name string
		fn   any
	}{
		{"llm_tokenizer_new", &create},
		{"llm_tokenizer_encode", &b.encode},
		{"llm_tokenizer_decode", &b.decode},
		{"llm_tokenizer_bos", &b.bosFn},
		{"llm_tokenizer_eos", &b.eosFn},
		{"llm_tokenizer_error", &b.lastErr},
		{"llm_tokenizer_free", &b.free},
	}
	for _, sym := range symbols {
		addr, err := purego.Dlsym(lib, sym.name)
		if err != nil {
			_ = purego.Dlclose(lib)
			return nil, fmt.Errorf("tokenizer library %q: symbol %s: %w", libPath, sym.name, err)
		}

		purego.RegisterFunc(sym.fn, addr)
	}

	b.handle = create(artifactPath)
	if b.handle == 0 {
		_ = purego.Dlclose(lib)
		return nil, fmt.Errorf("native tokenizer rejected artifact %q", artifactPath)
	}

	return b, nil
}

func (b *nativeBackend) EncodeIDs(text string) ([]int64, error) {
	n := b.encode(b.handle, text, nil, 0)
	if n < 0 {
		return nil, b.takeError("encode")
	}

	if n == 0 {
		return []int64{}, nil
	}

	out := make([]int64, n)

	written := b.encode(b.handle, text, out, n)
	if written < 0 {
		return nil, b.takeError("encode")
	}

	return out[:written], nil
}

func (b *nativeBackend) DecodePiece(prev, cur int64) (string, error) {
	piece := b.decode(b.handle, prev, cur)
	if piece == "" {
		if msg := b.lastErr(b.handle); msg != "" {
			return "", fmt.Errorf("decode: %s", msg)
		}
	}

	return piece, nil
}

func (b *nativeBackend) BOS() int64 { return b.bosFn(b.handle) }

func (b *nativeBackend) EOS() int64 { return b.eosFn(b.handle) }

func (b *nativeBackend) Close() error {
	if b.handle != 0 {
		b.free(b.handle)
		b.handle = 0
	}

	if b.lib != 0 {
		err := purego.Dlclose(b.lib)
		b.lib = 0

		return err
	}

	return nil
}

func (b *nativeBackend) takeError(op string) error {
	if msg := b.lastErr(b.handle); msg != "" {
		return fmt.Errorf("%s: %s", op, msg)
	}

	return errors.New(op + ": native tokenizer failure")
}
