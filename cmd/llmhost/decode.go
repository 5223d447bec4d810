package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var tokens string

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode token ids back into text",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			ids, err := parseTokenList(tokens)
			if err != nil {
				return err
			}

			h, err := openTokenizer(cfg)
			if err != nil {
				return err
			}
			defer h.Release()

			// The decoder is stateless across calls; the previous token id
			// is threaded explicitly, starting from the BOS marker.
			prev, err := h.BOS()
			if err != nil {
				return err
			}

			var sb strings.Builder
			for _, id := range ids {
				piece, err := h.DecodeToken(prev, id)
				if err != nil {
					return err
				}
				sb.WriteString(piece)
				prev = id
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sb.String())
			return err
		},
	}

	cmd.Flags().StringVar(&tokens, "tokens", "", "Comma-separated token ids to decode")

	return cmd
}

func parseTokenList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("--tokens is required")
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid token id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no token ids provided")
	}
	return ids, nil
}
