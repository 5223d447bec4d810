package tokenizer

import (
	"errors"
	"fmt"

	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// SentencePiece models conventionally reserve id 1 for <s> and 2 for </s>.
// Artifacts that deviate can override via WithMarkerIDs.
const (
	defaultSentencePieceBOS = 1
	defaultSentencePieceEOS = 2
)

// sentencePieceBackend encodes text with a pure-Go SentencePiece model.
// The upstream library exposes encoding only; single-step decode requires
// the native backend.
type sentencePieceBackend struct {
	proc gosp.Sentencepiece
	bos  int64
	eos  int64
}

func newSentencePieceBackend(modelPath string, o Options) (*sentencePieceBackend, error) {
	proc, err := gosp.NewSentencepieceFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	b := &sentencePieceBackend{
		proc: proc,
		bos:  defaultSentencePieceBOS,
		eos:  defaultSentencePieceEOS,
	}
	if o.markerSet {
		b.bos, b.eos = o.bosID, o.eosID
	}

	return b, nil
}

func (b *sentencePieceBackend) EncodeIDs(text string) ([]int64, error) {
	if text == "" {
		return []int64{}, nil
	}

	ids := b.proc.TokenizeToIDs(text)

	result := make([]int64, len(ids))
	for i, id := range ids {
		result[i] = int64(id)
	}

	return result, nil
}

func (b *sentencePieceBackend) DecodePiece(prev, cur int64) (string, error) {
	return "", errors.New("sentencepiece backend does not expose single-token decode; use the native backend")
}

func (b *sentencePieceBackend) BOS() int64 { return b.bos }

func (b *sentencePieceBackend) EOS() int64 { return b.eos }

func (b *sentencePieceBackend) Close() error { return nil }
