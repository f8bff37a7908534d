package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/spend_tracker_app/internal/adapters/llm"
	"github.com/SscSPs/spend_tracker_app/internal/core/ports"
	"github.com/SscSPs/spend_tracker_app/internal/core/services"
)

// recordedReply replays an LLM reply captured earlier instead of calling a model.
type recordedReply struct {
	payload []byte
}

var _ ports.LLMClient = recordedReply{}

func (r recordedReply) Parse(_ context.Context, _ string, _ string) ([]byte, error) {
	return llm.ExtractJSONObject(string(r.payload))
}

type normalizeOptions struct {
	text   string
	input  string
	at     string
	format string
}

func newNormalizeCmd() *cobra.Command {
	opts := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Run the post-processing rules over a recorded LLM reply",
		Long: `Reads a reply previously produced by the extraction model (raw, fenced or
wrapped in prose), validates it and prints the normalized preview that
the API would return for the given text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readInput(cmd.InOrStdin(), opts.input)
			if err != nil {
				return err
			}
			ref, err := referenceTime(opts.at)
			if err != nil {
				return err
			}
			parser := services.NewParserService(recordedReply{payload: payload}, services.WithParserVersion("recorded"))
			result, err := parser.Parse(cmd.Context(), opts.text, ref)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), result.Preview, opts.format)
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "", "raw text the reply was produced for (drives split detection)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "file holding the LLM reply, - for stdin")
	cmd.Flags().StringVar(&opts.at, "at", "", "reference datetime (RFC3339), defaults to now")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatJSON, "output format: json or yaml")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func referenceTime(at string) (time.Time, error) {
	if at == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value %q: %w", at, err)
	}
	return t, nil
}
