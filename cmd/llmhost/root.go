package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-llm-host/internal/config"
	"github.com/example/go-llm-host/internal/llm"
	"github.com/example/go-llm-host/internal/tokenizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	cfgLoaded bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "llmhost",
		Short: "Host-side tooling for the native LLM runtime",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			cfgLoaded = true
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newVerifyEncodersCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !cfgLoaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// buildSessionConfig runs the loaded configuration through the session
// config builder so every command sees the same validation and defaulting.
func buildSessionConfig(cfg config.Config) (llm.SessionConfig, error) {
	kind, err := llm.ParseModelKind(cfg.Model.Kind)
	if err != nil {
		return llm.SessionConfig{}, err
	}

	return llm.NewSessionConfig().
		ModulePath(cfg.Paths.ModulePath).
		TokenizerPath(cfg.Paths.TokenizerPath).
		DataPath(cfg.Paths.DataPath).
		Temperature(cfg.Sampling.Temperature).
		TopP(cfg.Sampling.TopP).
		ModelKind(kind).
		NumBOS(cfg.Model.NumBOS).
		NumEOS(cfg.Model.NumEOS).
		PrefillChunkSize(cfg.Model.PrefillChunkSize).
		MaxSeqLen(cfg.Model.MaxSeqLen).
		MaxContextLen(cfg.Model.MaxContextLen).
		LoadVisionEncoder(cfg.Model.LoadVisionEncoder).
		LoadAudioEncoder(cfg.Model.LoadAudioEncoder).
		Build()
}

// openTokenizer opens the configured tokenizer artifact with the configured
// backend selection.
func openTokenizer(cfg config.Config) (*tokenizer.Handle, error) {
	kind, err := tokenizer.NormalizeBackendKind(cfg.Runtime.TokenizerBackend)
	if err != nil {
		return nil, err
	}

	opts := []tokenizer.Option{tokenizer.WithBackend(kind)}
	if cfg.Runtime.TokenizerLibrary != "" {
		opts = append(opts, tokenizer.WithNativeLibrary(cfg.Runtime.TokenizerLibrary))
	}

	return tokenizer.Open(cfg.Paths.TokenizerPath, opts...)
}
