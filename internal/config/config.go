// Package config loads llmhost configuration from defaults, flags,
// environment variables and an optional config file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Runtime  RuntimeConfig  `mapstructure:"runtime"`
	Sampling SamplingConfig `mapstructure:"sampling"`
	Model    ModelConfig    `mapstructure:"model"`
	LogLevel string         `mapstructure:"log_level"`
}

type PathsConfig struct {
	ModulePath      string `mapstructure:"module_path"`
	TokenizerPath   string `mapstructure:"tokenizer_path"`
	DataPath        string `mapstructure:"data_path"`
	EncoderManifest string `mapstructure:"encoder_manifest"`
}

type RuntimeConfig struct {
	LibraryPath      string `mapstructure:"library_path"`
	Version          string `mapstructure:"version"`
	TokenizerLibrary string `mapstructure:"tokenizer_library"`
	TokenizerBackend string `mapstructure:"tokenizer_backend"`
}

type SamplingConfig struct {
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
}

type ModelConfig struct {
	Kind              string `mapstructure:"kind"`
	NumBOS            int    `mapstructure:"num_bos"`
	NumEOS            int    `mapstructure:"num_eos"`
	PrefillChunkSize  int    `mapstructure:"prefill_chunk_size"`
	MaxSeqLen         int    `mapstructure:"max_seq_len"`
	MaxContextLen     int    `mapstructure:"max_context_len"`
	LoadVisionEncoder bool   `mapstructure:"load_vision_encoder"`
	LoadAudioEncoder  bool   `mapstructure:"load_audio_encoder"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// DefaultConfig returns the documented defaults. The module and tokenizer
// paths default to empty: they are required and validated by the session
// config builder, not here.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ModulePath:      "",
			TokenizerPath:   "",
			DataPath:        "",
			EncoderManifest: "",
		},
		Runtime: RuntimeConfig{
			LibraryPath:      "",
			Version:          "",
			TokenizerLibrary: "",
			TokenizerBackend: "auto",
		},
		Sampling: SamplingConfig{
			Temperature: 0.8,
			TopP:        0.9,
		},
		Model: ModelConfig{
			Kind:              "text",
			NumBOS:            0,
			NumEOS:            0,
			PrefillChunkSize:  0,
			MaxSeqLen:         0,
			MaxContextLen:     0,
			LoadVisionEncoder: true,
			LoadAudioEncoder:  true,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-module-path", defaults.Paths.ModulePath, "Path to the compiled model module")
	fs.String("paths-tokenizer-path", defaults.Paths.TokenizerPath, "Path to the tokenizer artifact")
	fs.String("paths-data-path", defaults.Paths.DataPath, "Optional path to supplementary data files")
	fs.String("paths-encoder-manifest", defaults.Paths.EncoderManifest, "Path to the multimodal encoder graph manifest")
	fs.String("runtime-library-path", defaults.Runtime.LibraryPath, "Path to the native runtime shared library")
	fs.String("runtime-lib", defaults.Runtime.LibraryPath, "Path to the native runtime shared library (alias for --runtime-library-path)")
	fs.String("runtime-version", defaults.Runtime.Version, "Expected native runtime version")
	fs.String("runtime-tokenizer-library", defaults.Runtime.TokenizerLibrary, "Path to the native tokenizer shared library")
	fs.String("runtime-tokenizer-backend", defaults.Runtime.TokenizerBackend, "Tokenizer backend (auto|sentencepiece|tiktoken|native)")
	fs.Float32("sampling-temperature", defaults.Sampling.Temperature, "Sampling temperature")
	fs.Float32("sampling-top-p", defaults.Sampling.TopP, "Nucleus sampling threshold")
	fs.String("model-kind", defaults.Model.Kind, "Model kind (text|text-vision|multimodal)")
	fs.Int("model-num-bos", defaults.Model.NumBOS, "Number of BOS tokens prepended to prompts")
	fs.Int("model-num-eos", defaults.Model.NumEOS, "Number of EOS tokens appended to prompts")
	fs.Int("model-prefill-chunk-size", defaults.Model.PrefillChunkSize, "Max tokens per prefill pass (0 = model default)")
	fs.Int("model-max-seq-len", defaults.Model.MaxSeqLen, "Max sequence length override (0 = model default)")
	fs.Int("model-max-context-len", defaults.Model.MaxContextLen, "Max context length override (0 = model default)")
	fs.Bool("model-load-vision-encoder", defaults.Model.LoadVisionEncoder, "Load the vision encoder for multimodal models")
	fs.Bool("model-load-audio-encoder", defaults.Model.LoadAudioEncoder, "Load the audio encoder for multimodal models")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("LLMHOST")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	if err := v.BindEnv("runtime.library_path", "LLMHOST_RUNTIME_LIB", "LLM_RUNTIME_LIBRARY_PATH"); err != nil {
		return Config{}, fmt.Errorf("bind runtime env vars: %w", err)
	}
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("llmhost")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.module_path", c.Paths.ModulePath)
	v.SetDefault("paths.tokenizer_path", c.Paths.TokenizerPath)
	v.SetDefault("paths.data_path", c.Paths.DataPath)
	v.SetDefault("paths.encoder_manifest", c.Paths.EncoderManifest)
	v.SetDefault("runtime.library_path", c.Runtime.LibraryPath)
	v.SetDefault("runtime.version", c.Runtime.Version)
	v.SetDefault("runtime.tokenizer_library", c.Runtime.TokenizerLibrary)
	v.SetDefault("runtime.tokenizer_backend", c.Runtime.TokenizerBackend)
	v.SetDefault("sampling.temperature", c.Sampling.Temperature)
	v.SetDefault("sampling.top_p", c.Sampling.TopP)
	v.SetDefault("model.kind", c.Model.Kind)
	v.SetDefault("model.num_bos", c.Model.NumBOS)
	v.SetDefault("model.num_eos", c.Model.NumEOS)
	v.SetDefault("model.prefill_chunk_size", c.Model.PrefillChunkSize)
	v.SetDefault("model.max_seq_len", c.Model.MaxSeqLen)
	v.SetDefault("model.max_context_len", c.Model.MaxContextLen)
	v.SetDefault("model.load_vision_encoder", c.Model.LoadVisionEncoder)
	v.SetDefault("model.load_audio_encoder", c.Model.LoadAudioEncoder)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.module_path", "paths-module-path")
	v.RegisterAlias("paths.tokenizer_path", "paths-tokenizer-path")
	v.RegisterAlias("paths.data_path", "paths-data-path")
	v.RegisterAlias("paths.encoder_manifest", "paths-encoder-manifest")
	v.RegisterAlias("runtime.library_path", "runtime-library-path")
	v.RegisterAlias("runtime.library_path", "runtime-lib")
	v.RegisterAlias("runtime.version", "runtime-version")
	v.RegisterAlias("runtime.tokenizer_library", "runtime-tokenizer-library")
	v.RegisterAlias("runtime.tokenizer_backend", "runtime-tokenizer-backend")
	v.RegisterAlias("sampling.temperature", "sampling-temperature")
	v.RegisterAlias("sampling.top_p", "sampling-top-p")
	v.RegisterAlias("model.kind", "model-kind")
	v.RegisterAlias("model.num_bos", "model-num-bos")
	v.RegisterAlias("model.num_eos", "model-num-eos")
	v.RegisterAlias("model.prefill_chunk_size", "model-prefill-chunk-size")
	v.RegisterAlias("model.max_seq_len", "model-max-seq-len")
	v.RegisterAlias("model.max_context_len", "model-max-context-len")
	v.RegisterAlias("model.load_vision_encoder", "model-load-vision-encoder")
	v.RegisterAlias("model.load_audio_encoder", "model-load-audio-encoder")
	v.RegisterAlias("log_level", "log-level")
}
