// Package assistant answers free-form questions about the current
// leaderboard standings. Answers are grounded in a computed summary of
// the scoring run; the assistant never influences scoring itself.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/district91/leaderboard-cli/internal/config"
	"github.com/district91/leaderboard-cli/internal/model"
	"github.com/district91/leaderboard-cli/internal/scoring"
	"github.com/district91/leaderboard-cli/pkg/anthropic"
)

const systemPrompt = `You are an assistant for a district club leaderboard programme.
Answer questions using only the standings summary provided in the conversation.
Quote point totals and ranks exactly as given. If the summary does not cover
the question, say so rather than guessing.`

// Assistant answers questions grounded in leaderboard standings.
type Assistant struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func New(client anthropic.Client, cfg config.AnthropicConfig) *Assistant {
	return &Assistant{
		client:    client,
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
	}
}

// Answer asks one question against the given scoring run.
func (a *Assistant) Answer(ctx context.Context, question string, cards []model.ScoreCard) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", eris.New("assistant: empty question")
	}

	prompt := fmt.Sprintf("Current standings:\n\n%s\n\nQuestion: %s", Summarize(cards), question)
	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     a.model,
		MaxTokens: a.maxTokens,
		System:    systemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", eris.Wrap(err, "assistant: answer")
	}
	resp.Usage.LogCost(a.model)

	if resp.Text == "" {
		return "", eris.New("assistant: empty response")
	}
	return resp.Text, nil
}

// Summarize renders per-cohort standings as plain text for grounding.
func Summarize(cards []model.ScoreCard) string {
	var sb strings.Builder
	for _, cohort := range model.Cohorts() {
		entries := scoring.Rank(cards, cohort, scoring.MetricGrandTotal, scoring.ModeSequential)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "%s (%s):\n", cohort.DisplayName(), cohort.Description())
		for _, e := range entries {
			marker := ""
			if e.TopThree {
				marker = " [top 3]"
			}
			fmt.Fprintf(&sb, "  %d. %s (#%d): %d points (education %d, leadership %d, operations %d)%s\n",
				e.Rank, e.ClubName, e.ClubNumber, e.GrandTotal,
				e.EducationPts, e.LeadershipPts, e.OperationsPts, marker)
		}
		sb.WriteString("\n")
	}
	if sb.Len() == 0 {
		return "No clubs have scored any points yet."
	}
	return strings.TrimRight(sb.String(), "\n")
}
