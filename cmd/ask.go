package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/district91/leaderboard-cli/internal/assistant"
	"github.com/district91/leaderboard-cli/internal/scoring"
	"github.com/district91/leaderboard-cli/pkg/anthropic"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about the current standings",
	Long: `Runs the scoring pipeline, then answers a free-form question grounded
in the computed standings. The answer has no effect on any scores.

Example:
  leaderboard-cli ask "Which Rising Stars club is closest to the top three?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAskCmd,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAskCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate("score"); err != nil {
		return err
	}
	if err := cfg.Validate("ask"); err != nil {
		return err
	}

	cards, rules, _, err := runPipeline(ctx, false)
	if err != nil {
		return err
	}

	a := assistant.New(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
	answer, err := a.Answer(ctx, strings.Join(args, " "), scoring.Eligible(cards, rules))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
