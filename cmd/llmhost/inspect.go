package main

import (
	"encoding/json"
	"fmt"

	"github.com/example/go-llm-host/internal/llm"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Validate the loaded configuration and print the effective session config",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			sess, err := buildSessionConfig(cfg)
			if err != nil {
				return err
			}

			out, err := renderSessionConfig(sess)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	return cmd
}

// sessionView adds the human-readable model kind to the JSON rendering.
type sessionView struct {
	llm.SessionConfig
	ModelKindName string
}

func renderSessionConfig(sess llm.SessionConfig) (string, error) {
	view := sessionView{SessionConfig: sess, ModelKindName: sess.ModelKind.String()}

	b, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("render session config: %w", err)
	}
	return string(b), nil
}
