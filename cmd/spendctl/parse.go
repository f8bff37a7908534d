package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/SscSPs/spend_tracker_app/internal/adapters/llm/gemini"
	"github.com/SscSPs/spend_tracker_app/internal/core/services"
	"github.com/SscSPs/spend_tracker_app/internal/platform/config"
)

type parseOptions struct {
	text   string
	at     string
	format string
	raw    bool
}

func newParseCmd() *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Send text to the configured model and print the normalized preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.text == "" {
				return errors.New("--text is required")
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.LLMAPIKey == "" {
				return errors.New("LLM_API_KEY is not set")
			}
			ref, err := referenceTime(opts.at)
			if err != nil {
				return err
			}

			client, err := gemini.NewClient(cmd.Context(), gemini.Config{
				APIKey:      cfg.LLMAPIKey,
				Model:       cfg.LLMModel,
				Temperature: cfg.LLMTemperature,
				Timeout:     cfg.LLMTimeout,
			})
			if err != nil {
				return err
			}

			parser := services.NewParserService(client, services.WithParserVersion(cfg.ParserVersion))
			result, err := parser.Parse(cmd.Context(), opts.text, ref)
			if err != nil {
				return err
			}
			if opts.raw {
				return writeResult(cmd.OutOrStdout(), result, opts.format)
			}
			return writeResult(cmd.OutOrStdout(), result.Preview, opts.format)
		},
	}
	cmd.Flags().StringVar(&opts.text, "text", "", "free text to parse")
	cmd.Flags().StringVar(&opts.at, "at", "", "reference datetime (RFC3339), defaults to now")
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatJSON, "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "also print the unmodified model reply")
	return cmd
}
