package tokenizer

import (
	"errors"
	"testing"
)

// fakeBackend is a deterministic in-memory Backend for contract tests.
type fakeBackend struct {
	bos       int64
	eos       int64
	encodeErr error
	decodeErr error
	closed    int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{bos: 1, eos: 2}
}

// EncodeIDs maps every byte of text to 100+byte, so outputs are predictable.
func (f *fakeBackend) EncodeIDs(text string) ([]int64, error) {
	if f.encodeErr != nil {
		return nil, f.encodeErr
	}

	ids := make([]int64, 0, len(text))
	for i := 0; i < len(text); i++ {
		ids = append(ids, 100+int64(text[i]))
	}

	return ids, nil
}

func (f *fakeBackend) DecodePiece(prev, cur int64) (string, error) {
	if f.decodeErr != nil {
		return "", f.decodeErr
	}

	if cur < 100 {
		return "", errors.New("token id out of range")
	}

	piece := string(rune(cur - 100))
	if prev == f.bos {
		// Leading-space suppression after a sequence start.
		if piece == " " {
			return "", nil
		}
	}

	return piece, nil
}

func (f *fakeBackend) BOS() int64 { return f.bos }

func (f *fakeBackend) EOS() int64 { return f.eos }

func (f *fakeBackend) Close() error {
	f.closed++
	return nil
}

// ---------------------------------------------------------------------------
// Encode
// ---------------------------------------------------------------------------

func TestEncode_EquivalentToZeroMarkers(t *testing.T) {
	h := newHandle(newFakeBackend())

	for _, text := range []string{"", "a", "hello world", "päivää"} {
		plain, err := h.Encode(text)
		if err != nil {
			t.Fatalf("Encode(%q): %v", text, err)
		}

		marked, err := h.EncodeWithMarkers(text, 0, 0)
		if err != nil {
			t.Fatalf("EncodeWithMarkers(%q, 0, 0): %v", text, err)
		}

		if !equalIDs(plain, marked) {
			t.Errorf("Encode(%q) = %v; EncodeWithMarkers(..., 0, 0) = %v", text, plain, marked)
		}
	}
}

func TestEncodeWithMarkers_Layout(t *testing.T) {
	h := newHandle(newFakeBackend())

	base, err := h.Encode("hi")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tests := []struct {
		bos, eos int
	}{
		{0, 0}, {1, 0}, {0, 1}, {1, 1}, {3, 2},
	}

	for _, tt := range tests {
		got, err := h.EncodeWithMarkers("hi", tt.bos, tt.eos)
		if err != nil {
			t.Fatalf("EncodeWithMarkers(bos=%d, eos=%d): %v", tt.bos, tt.eos, err)
		}

		if len(got) != tt.bos+len(base)+tt.eos {
			t.Errorf("len = %d; want %d", len(got), tt.bos+len(base)+tt.eos)
			continue
		}

		for i := 0; i < tt.bos; i++ {
			if got[i] != 1 {
				t.Errorf("got[%d] = %d; want BOS id 1", i, got[i])
			}
		}

		if !equalIDs(got[tt.bos:tt.bos+len(base)], base) {
			t.Errorf("content = %v; want %v", got[tt.bos:tt.bos+len(base)], base)
		}

		for i := tt.bos + len(base); i < len(got); i++ {
			if got[i] != 2 {
				t.Errorf("got[%d] = %d; want EOS id 2", i, got[i])
			}
		}
	}
}

func TestEncodeWithMarkers_NegativeCounts(t *testing.T) {
	h := newHandle(newFakeBackend())

	if _, err := h.EncodeWithMarkers("hi", -1, 0); !errors.Is(err, ErrTokenize) {
		t.Errorf("negative bos: error = %v; want ErrTokenize", err)
	}

	if _, err := h.EncodeWithMarkers("hi", 0, -1); !errors.Is(err, ErrTokenize) {
		t.Errorf("negative eos: error = %v; want ErrTokenize", err)
	}
}

func TestEncode_BackendFailureWrapsErrTokenize(t *testing.T) {
	b := newFakeBackend()
	b.encodeErr = errors.New("malformed encoding")
	h := newHandle(b)

	_, err := h.Encode("hi")
	if !errors.Is(err, ErrTokenize) {
		t.Errorf("error = %v; want ErrTokenize", err)
	}
}

// ---------------------------------------------------------------------------
// DecodeToken
// ---------------------------------------------------------------------------

func TestDecodeToken_ThreadsPrevState(t *testing.T) {
	h := newHandle(newFakeBackend())

	ids, err := h.Encode(" hi")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Decoding right after BOS suppresses the leading space.
	var text string
	prev := int64(1)
	for _, id := range ids {
		piece, err := h.DecodeToken(prev, id)
		if err != nil {
			t.Fatalf("DecodeToken(%d, %d): %v", prev, id, err)
		}

		text += piece
		prev = id
	}

	if text != "hi" {
		t.Errorf("reconstructed %q; want %q", text, "hi")
	}
}

func TestDecodeToken_InvalidID(t *testing.T) {
	h := newHandle(newFakeBackend())

	_, err := h.DecodeToken(0, 5)
	if !errors.Is(err, ErrTokenize) {
		t.Errorf("error = %v; want ErrTokenize", err)
	}
}

// ---------------------------------------------------------------------------
// Release
// ---------------------------------------------------------------------------

func TestRelease_Idempotent(t *testing.T) {
	b := newFakeBackend()
	h := newHandle(b)

	h.Release()
	h.Release()

	if b.closed != 1 {
		t.Errorf("backend closed %d times; want 1", b.closed)
	}

	if !h.Released() {
		t.Error("Released() = false after Release")
	}
}

func TestOperationsAfterRelease(t *testing.T) {
	h := newHandle(newFakeBackend())
	h.Release()

	if _, err := h.Encode("hi"); !errors.Is(err, ErrReleased) {
		t.Errorf("Encode after release: error = %v; want ErrReleased", err)
	}

	if _, err := h.EncodeWithMarkers("hi", 1, 1); !errors.Is(err, ErrReleased) {
		t.Errorf("EncodeWithMarkers after release: error = %v; want ErrReleased", err)
	}

	if _, err := h.DecodeToken(1, 101); !errors.Is(err, ErrReleased) {
		t.Errorf("DecodeToken after release: error = %v; want ErrReleased", err)
	}

	if _, err := h.BOS(); !errors.Is(err, ErrReleased) {
		t.Errorf("BOS after release: error = %v; want ErrReleased", err)
	}

	if _, err := h.EOS(); !errors.Is(err, ErrReleased) {
		t.Errorf("EOS after release: error = %v; want ErrReleased", err)
	}
}

func TestLiveHandleStaysLive(t *testing.T) {
	h := newHandle(newFakeBackend())

	for i := 0; i < 5; i++ {
		if _, err := h.Encode("hi"); err != nil {
			t.Fatalf("Encode #%d: %v", i, err)
		}
	}

	if h.Released() {
		t.Error("Released() = true without Release call")
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}
