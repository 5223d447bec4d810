package tokenizer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const endOfTextToken = "<|endoftext|>"

// tiktokenBackend encodes and decodes with a byte-level BPE encoding. The
// artifact's base name selects the encoding (for example cl100k_base.tiktoken
// selects cl100k_base); the rank data itself is resolved by the tiktoken
// loader.
type tiktokenBackend struct {
	enc *tiktoken.Tiktoken
	bos int64
	eos int64
}

func newTiktokenBackend(artifactPath string, o Options) (*tiktokenBackend, error) {
	name := strings.TrimSuffix(filepath.Base(artifactPath), filepath.Ext(artifactPath))

	enc, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("load tiktoken encoding %q: %w", name, err)
	}

	b := &tiktokenBackend{enc: enc}
	if o.markerSet {
		b.bos, b.eos = o.bosID, o.eosID
		return b, nil
	}

	// tiktoken encodings carry no dedicated BOS/EOS pair; <|endoftext|>
	// serves as both markers, matching GPT-style usage.
	ids := enc.Encode(endOfTextToken, []string{endOfTextToken}, nil)
	if len(ids) != 1 {
		return nil, fmt.Errorf("encoding %q has no %s special token", name, endOfTextToken)
	}

	b.bos = int64(ids[0])
	b.eos = int64(ids[0])

	return b, nil
}

func (b *tiktokenBackend) EncodeIDs(text string) ([]int64, error) {
	if text == "" {
		return []int64{}, nil
	}

	ids := b.enc.Encode(text, nil, nil)

	result := make([]int64, len(ids))
	for i, id := range ids {
		result[i] = int64(id)
	}

	return result, nil
}

// DecodePiece renders a single token. Byte-level BPE pieces carry their own
// whitespace, so prev is not needed to resolve rendering state here.
func (b *tiktokenBackend) DecodePiece(_, cur int64) (string, error) {
	if cur < 0 {
		return "", fmt.Errorf("token id %d out of range", cur)
	}

	if cur == b.eos {
		return "", nil
	}

	piece := b.enc.Decode([]int{int(cur)})
	if piece == "" {
		return "", fmt.Errorf("token id %d not in vocabulary", cur)
	}

	return piece, nil
}

func (b *tiktokenBackend) BOS() int64 { return b.bos }

func (b *tiktokenBackend) EOS() int64 { return b.eos }

func (b *tiktokenBackend) Close() error { return nil }
