package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var text string
	var bos int
	var eos int

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Encode text into token ids",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputText, err := readInputText(text, os.Stdin)
			if err != nil {
				return err
			}

			numBOS := cfg.Model.NumBOS
			if cmd.Flags().Changed("bos") {
				numBOS = bos
			}
			numEOS := cfg.Model.NumEOS
			if cmd.Flags().Changed("eos") {
				numEOS = eos
			}

			h, err := openTokenizer(cfg)
			if err != nil {
				return err
			}
			defer h.Release()

			ids, err := h.EncodeWithMarkers(inputText, numBOS, numEOS)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatTokenIDs(ids))
			return err
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to tokenize (if empty, read from stdin)")
	cmd.Flags().IntVar(&bos, "bos", 0, "BOS markers to prepend (overrides --model-num-bos)")
	cmd.Flags().IntVar(&eos, "eos", 0, "EOS markers to append (overrides --model-num-eos)")

	return cmd
}

func formatTokenIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func readInputText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide --text or pipe text on stdin")
	}
	return input, nil
}
