/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/metrics"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/chainguard-dev/clog"
)

const (
	claudeJudgeName    = "claude-opus-4-1"
	defaultClaudeModel = "claude-opus-4-1"

	// defaultThinkingBudget is the extended thinking token budget.
	defaultThinkingBudget = 10000

	// responseHeadroom is added to the thinking budget to size max_tokens;
	// max_tokens must exceed the thinking budget.
	responseHeadroom = 4096
)

// claudePricing is the Opus rate card: $15/M input, $75/M output.
var claudePricing = pricing{inputPerMTok: 15.00, outputPerMTok: 75.00}

const claudeSystemPrompt = `You are an expert legal document analyst. You evaluate legal event extraction quality objectively.

You must return your evaluation in valid JSON format only. No other text before or after the JSON.

Think deeply about your evaluation using the extended thinking budget provided.`

// claude implements Interface using an Anthropic model with extended
// thinking. Thinking arrives as a separate content block; the API does not
// report thinking tokens separately, so they are estimated from the block.
type claude struct {
	client         anthropic.Client
	model          string
	thinkingBudget int64
	genaiMetrics   *metrics.GenAI
}

// ClaudeOption is a functional option for configuring the Claude judge.
type ClaudeOption func(*claude) error

// WithClaudeModel overrides the model ID.
func WithClaudeModel(model string) ClaudeOption {
	return func(j *claude) error {
		if !strings.HasPrefix(model, "claude-") {
			return fmt.Errorf("model %q does not appear to be a Claude model (expected claude-* format)", model)
		}
		j.model = model
		return nil
	}
}

// WithThinkingBudget sets the extended thinking token budget.
// At least 1024 tokens is required.
func WithThinkingBudget(budgetTokens int64) ClaudeOption {
	return func(j *claude) error {
		if budgetTokens < 1024 {
			return fmt.Errorf("thinking budget_tokens must be at least 1024, got %d", budgetTokens)
		}
		j.thinkingBudget = budgetTokens
		return nil
	}
}

// NewClaude creates the Claude judge with extended thinking enabled.
func NewClaude(apiKey string, opts ...ClaudeOption) (Interface, error) {
	if apiKey == "" {
		return nil, errors.New("Anthropic API key is required")
	}

	j := &claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:          defaultClaudeModel,
		thinkingBudget: defaultThinkingBudget,
		genaiMetrics:   metrics.NewGenAI(meterName),
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return j, nil
}

// Name implements Interface.
func (j *claude) Name() string { return claudeJudgeName }

// Model implements Interface.
func (j *claude) Model() string { return j.model }

// Available implements Interface.
func (j *claude) Available() bool { return true }

// JudgeProviders implements Interface.
func (j *claude) JudgeProviders(ctx context.Context, documentName string, outputs events.Outputs) (*Result, error) {
	log := clog.FromContext(ctx)

	prompt, err := buildPrompt(documentName, outputs)
	if err != nil {
		return nil, callErr(claudeJudgeName, documentName, err)
	}

	log.With("judge", claudeJudgeName).
		With("document", documentName).
		With("thinking_budget", j.thinkingBudget).
		Info("Starting judge evaluation")

	message, err := j.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(j.model),
		MaxTokens: j.thinkingBudget + responseHeadroom,
		// Temperature must be 1.0 when thinking is enabled.
		// See: https://docs.claude.com/en/docs/build-with-claude/extended-thinking#important-considerations-when-using-extended-thinking
		Temperature: anthropic.Float(1.0),
		Thinking: anthropic.ThinkingConfigParamUnion{
			OfEnabled: &anthropic.ThinkingConfigEnabledParam{
				BudgetTokens: j.thinkingBudget,
			},
		},
		System: []anthropic.TextBlockParam{{Text: claudeSystemPrompt}},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	})
	if err != nil {
		return nil, callErr(claudeJudgeName, documentName, err)
	}

	// Thinking appears as a separate content block alongside the text.
	var textContent, thinkingContent strings.Builder
	for _, content := range message.Content {
		switch content.Type {
		case "text":
			textContent.WriteString(content.Text)
		case "thinking":
			thinkingContent.WriteString(content.Thinking)
		}
	}

	inputTokens := message.Usage.InputTokens
	outputTokens := message.Usage.OutputTokens
	cost := claudePricing.cost(inputTokens, outputTokens)

	// The API folds thinking into output tokens without a separate count;
	// estimate from the thinking block's word count.
	thinkingTokens := int64(float64(len(strings.Fields(thinkingContent.String()))) * 1.3)

	j.genaiMetrics.RecordTokens(ctx, j.model, inputTokens, outputTokens)
	j.genaiMetrics.RecordReasoning(ctx, j.model, thinkingTokens)
	j.genaiMetrics.RecordCost(ctx, j.model, cost)

	scores, winner, err := parseScores(documentName, textContent.String(), outputs)
	if err != nil {
		return nil, callErr(claudeJudgeName, documentName, err)
	}

	log.With("judge", claudeJudgeName).
		With("document", documentName).
		With("winner", winner).
		With("thinking_tokens", thinkingTokens).
		Info("Judge evaluation complete")

	return &Result{
		JudgeName:      claudeJudgeName,
		Model:          j.model,
		DocumentName:   documentName,
		ProviderScores: scores,
		Winner:         winner,
		Timestamp:      time.Now(),
		Cost:           cost,
		ThinkingTokens: thinkingTokens,
	}, nil
}
