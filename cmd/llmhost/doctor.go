package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/example/go-llm-host/internal/doctor"
	"github.com/example/go-llm-host/internal/media"
	"github.com/example/go-llm-host/internal/runtime"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var audioSample string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local runtime and artifact checks",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			dcfg := doctor.Config{
				ModulePath:    cfg.Paths.ModulePath,
				TokenizerPath: cfg.Paths.TokenizerPath,
				DataPath:      cfg.Paths.DataPath,
				DetectRuntime: func() (string, error) {
					info, err := runtime.Detect(cfg.Runtime)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("%s (%s)", info.LibraryPath, info.Version), nil
				},
				AudioSamplePath: audioSample,
				ProbeAudio:      probeAudioSample,
			}

			result := doctor.Run(dcfg, os.Stdout)

			if result.Failed() {
				for _, f := range result.Failures() {
					_, _ = fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	cmd.Flags().StringVar(&audioSample, "audio-sample", "", "Optional WAV file to validate against the audio encoder input format")

	return cmd
}

// probeAudioSample decodes a WAV file and returns its sample count.
func probeAudioSample(path string) (int, error) {
	samples, err := media.LoadWAV(path)
	if err != nil {
		return 0, err
	}
	return len(samples), nil
}
