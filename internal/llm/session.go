// Package llm assembles the parameters a native model-execution session
// needs: artifact paths, sampling parameters, sequence-length overrides and
// encoder toggles. A SessionConfig is built through a validating builder and
// is immutable once built.
package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingRequiredField is returned by Build when the module path and/or
// tokenizer path were never set.
var ErrMissingRequiredField = errors.New("missing required field")

// ModelKind selects the model family loaded by the native runtime.
type ModelKind int

const (
	// ModelKindText is a text-only model.
	ModelKindText ModelKind = 1
	// ModelKindTextVision is a text-and-vision model.
	ModelKindTextVision ModelKind = 2
	// ModelKindMultimodal is a generic multimodal model. The native runtime's
	// numeric scheme does not distinguish it from text-and-vision, so both
	// names share the same value.
	ModelKindMultimodal ModelKind = 2
)

func (k ModelKind) String() string {
	switch k {
	case ModelKindText:
		return "text"
	case ModelKindTextVision:
		return "multimodal"
	default:
		return fmt.Sprintf("ModelKind(%d)", int(k))
	}
}

// ParseModelKind maps a configuration string to a ModelKind.
func ParseModelKind(raw string) (ModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "text":
		return ModelKindText, nil
	case "text-vision":
		return ModelKindTextVision, nil
	case "multimodal":
		return ModelKindMultimodal, nil
	default:
		return 0, fmt.Errorf("invalid model kind %q (want text|text-vision|multimodal)", raw)
	}
}

// SessionConfig carries every parameter needed to start a runtime session.
// Instances are produced only by SessionConfigBuilder.Build and are plain
// values: copies are independent and safe to share across goroutines.
//
// A zero value for PrefillChunkSize, MaxSeqLen or MaxContextLen means "defer
// to the model's embedded metadata", not a literal zero-length limit.
type SessionConfig struct {
	ModulePath        string
	TokenizerPath     string
	Temperature       float32
	TopP              float32
	DataPath          string
	ModelKind         ModelKind
	NumBOS            int
	NumEOS            int
	PrefillChunkSize  int
	MaxSeqLen         int
	MaxContextLen     int
	LoadVisionEncoder bool
	LoadAudioEncoder  bool
}

// SessionConfigBuilder accumulates session parameters. Setters may be called
// in any order; later calls for the same field overwrite earlier ones.
type SessionConfigBuilder struct {
	cfg SessionConfig
}

// NewSessionConfig returns a builder holding the documented defaults.
func NewSessionConfig() *SessionConfigBuilder {
	return &SessionConfigBuilder{cfg: SessionConfig{
		Temperature:       0.8,
		TopP:              0.9,
		DataPath:          "",
		ModelKind:         ModelKindText,
		LoadVisionEncoder: true,
		LoadAudioEncoder:  true,
	}}
}

// ModulePath sets the path to the compiled model module. Required.
func (b *SessionConfigBuilder) ModulePath(path string) *SessionConfigBuilder {
	b.cfg.ModulePath = path
	return b
}

// TokenizerPath sets the path to the tokenizer artifact. Required.
func (b *SessionConfigBuilder) TokenizerPath(path string) *SessionConfigBuilder {
	b.cfg.TokenizerPath = path
	return b
}

// Temperature sets the sampling temperature.
func (b *SessionConfigBuilder) Temperature(t float32) *SessionConfigBuilder {
	b.cfg.Temperature = t
	return b
}

// TopP sets the nucleus sampling threshold.
func (b *SessionConfigBuilder) TopP(p float32) *SessionConfigBuilder {
	b.cfg.TopP = p
	return b
}

// DataPath sets an optional path to supplementary data files.
func (b *SessionConfigBuilder) DataPath(path string) *SessionConfigBuilder {
	b.cfg.DataPath = path
	return b
}

// ModelKind sets the model family.
func (b *SessionConfigBuilder) ModelKind(k ModelKind) *SessionConfigBuilder {
	b.cfg.ModelKind = k
	return b
}

// NumBOS sets the number of BOS tokens prepended during prompt encoding.
func (b *SessionConfigBuilder) NumBOS(n int) *SessionConfigBuilder {
	b.cfg.NumBOS = n
	return b
}

// NumEOS sets the number of EOS tokens appended during prompt encoding.
func (b *SessionConfigBuilder) NumEOS(n int) *SessionConfigBuilder {
	b.cfg.NumEOS = n
	return b
}

// PrefillChunkSize sets the max tokens per prefill forward pass. Zero defers
// to the model's embedded default.
func (b *SessionConfigBuilder) PrefillChunkSize(n int) *SessionConfigBuilder {
	b.cfg.PrefillChunkSize = n
	return b
}

// MaxSeqLen overrides the model's max sequence length. Zero defers to the
// model's embedded default.
func (b *SessionConfigBuilder) MaxSeqLen(n int) *SessionConfigBuilder {
	b.cfg.MaxSeqLen = n
	return b
}

// MaxContextLen overrides the model's max context length. Zero defers to the
// model's embedded default.
func (b *SessionConfigBuilder) MaxContextLen(n int) *SessionConfigBuilder {
	b.cfg.MaxContextLen = n
	return b
}

// LoadVisionEncoder controls whether the runtime loads the vision encoder.
func (b *SessionConfigBuilder) LoadVisionEncoder(load bool) *SessionConfigBuilder {
	b.cfg.LoadVisionEncoder = load
	return b
}

// LoadAudioEncoder controls whether the runtime loads the audio encoder.
func (b *SessionConfigBuilder) LoadAudioEncoder(load bool) *SessionConfigBuilder {
	b.cfg.LoadAudioEncoder = load
	return b
}

// Build validates the required fields and returns an immutable snapshot of
// the builder's current values. The builder stays usable after Build; the
// returned config is unaffected by later setter calls.
//
// Path existence is deliberately not checked here: configured paths may
// reference artifacts that are materialized later. The tokenizer and runtime
// constructors that consume the paths perform their own checks.
func (b *SessionConfigBuilder) Build() (SessionConfig, error) {
	var missing []string
	if b.cfg.ModulePath == "" {
		missing = append(missing, "module path")
	}

	if b.cfg.TokenizerPath == "" {
		missing = append(missing, "tokenizer path")
	}

	if len(missing) > 0 {
		return SessionConfig{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, strings.Join(missing, ", "))
	}

	return b.cfg, nil
}
