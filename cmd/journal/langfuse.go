package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/health-journal/internal/config"
	"github.com/blaisecz/health-journal/internal/langfuse"
	"github.com/spf13/cobra"
)

func newLangfuseCheckCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "langfuse-check",
		Short: "Write a test trace to Langfuse using LANGFUSE_* settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := g.logger()
			if err != nil {
				return err
			}
			cfg := config.Load()

			fmt.Fprintf(g.out, "Base URL:    %s\n", cfg.LangfuseBaseURL)
			fmt.Fprintf(g.out, "Public Key:  %s\n", maskKey(cfg.LangfusePublicKey))
			fmt.Fprintf(g.out, "Secret Key:  %s\n", maskKey(cfg.LangfuseSecretKey))
			fmt.Fprintf(g.out, "Environment: %s\n", cfg.LangfuseEnv)

			client := langfuse.NewClient(langfuse.Config{
				BaseURL:     cfg.LangfuseBaseURL,
				PublicKey:   cfg.LangfusePublicKey,
				SecretKey:   cfg.LangfuseSecretKey,
				Environment: cfg.LangfuseEnv,
				Logger:      &log,
			})
			if !client.IsEnabled() {
				return errors.New("langfuse client is disabled, check LANGFUSE_* env vars")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()

			traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
				UserID: "journal-cli",
				Name:   "langfuse-check",
				Input:  map[string]any{"time": time.Now().Format(time.RFC3339)},
				Output: map[string]any{"status": "success"},
				Tags:   []string{"test", "manual"},
			})
			if err != nil {
				return fmt.Errorf("create trace: %w", err)
			}

			fmt.Fprintf(g.out, "Trace created: %s/trace/%s\n", cfg.LangfuseBaseURL, traceID)
			return nil
		},
	}
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "(empty)"
	case len(key) < 8:
		return "***"
	default:
		return key[:8] + "..."
	}
}
