package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotdogbot/internal/domain/mms"
	"hotdogbot/internal/infrastructure/config"
	"hotdogbot/internal/infrastructure/llm"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image-url>",
		Short: "Classify a single image URL and print the verdict",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			client, err := llm.NewClient(cfg, nil, zap.NewNop())
			if err != nil {
				return fmt.Errorf("create LLM client: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			answer, err := client.Classify(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "answer: %s\n", answer)
			fmt.Fprintf(cmd.OutOrStdout(), "reply:  %s\n", mms.ReplyText(answer))
			return nil
		},
	}
}
