package main

import (
	"fmt"
	"os"

	"github.com/example/go-llm-host/internal/encoder"
	"github.com/spf13/cobra"
)

func newVerifyEncodersCmd() *cobra.Command {
	var ortLib string
	var ortAPIVersion uint32

	cmd := &cobra.Command{
		Use:   "verify-encoders",
		Short: "Smoke-load the multimodal encoder graphs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			sess, err := buildSessionConfig(cfg)
			if err != nil {
				return err
			}

			if cfg.Paths.EncoderManifest == "" {
				return fmt.Errorf("no encoder manifest configured; set --paths-encoder-manifest")
			}

			return encoder.Verify(encoder.VerifyOptions{
				ManifestPath:  cfg.Paths.EncoderManifest,
				ORTLibrary:    ortLib,
				ORTAPIVersion: ortAPIVersion,
				Vision:        sess.LoadVisionEncoder,
				Audio:         sess.LoadAudioEncoder,
				Stdout:        os.Stdout,
				Stderr:        os.Stderr,
			})
		},
	}

	cmd.Flags().StringVar(&ortLib, "ort-lib", "libonnxruntime.so", "Path to the ONNX Runtime shared library")
	cmd.Flags().Uint32Var(&ortAPIVersion, "ort-api-version", 0, "ONNX Runtime API version (0 = default)")

	return cmd
}
