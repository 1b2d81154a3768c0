/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/metrics"
	"chainguard.dev/lexpanel/schema"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

const (
	gptJudgeName    = "gpt-5"
	defaultGPTModel = "gpt-5"
)

// gptPricing is the GPT-5 rate card: $2.50/M input, $10/M output.
var gptPricing = pricing{inputPerMTok: 2.50, outputPerMTok: 10.00}

const gptSystemPrompt = "You are an expert legal document analyst. You evaluate legal event extraction quality objectively and return results in JSON format."

// gpt implements Interface using an OpenAI reasoning model. Reasoning
// tokens are reported explicitly in the API's usage details.
type gpt struct {
	client          openai.Client
	model           string
	reasoningEffort shared.ReasoningEffort
	genaiMetrics    *metrics.GenAI
}

// GPTOption is a functional option for configuring the GPT judge.
type GPTOption func(*gpt) error

// WithGPTModel overrides the model ID.
func WithGPTModel(model string) GPTOption {
	return func(j *gpt) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		j.model = model
		return nil
	}
}

// WithReasoningEffort sets the reasoning effort level.
// Valid values are "minimal", "low", "medium", and "high".
func WithReasoningEffort(effort string) GPTOption {
	return func(j *gpt) error {
		switch shared.ReasoningEffort(effort) {
		case shared.ReasoningEffortMinimal, shared.ReasoningEffortLow,
			shared.ReasoningEffortMedium, shared.ReasoningEffortHigh:
			j.reasoningEffort = shared.ReasoningEffort(effort)
			return nil
		}
		return fmt.Errorf("invalid reasoning effort %q", effort)
	}
}

// NewGPT creates the GPT judge. Reasoning effort defaults to high.
func NewGPT(apiKey string, opts ...GPTOption) (Interface, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	j := &gpt{
		client:          openai.NewClient(option.WithAPIKey(apiKey)),
		model:           defaultGPTModel,
		reasoningEffort: shared.ReasoningEffortHigh,
		genaiMetrics:    metrics.NewGenAI(meterName),
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return j, nil
}

// Name implements Interface.
func (j *gpt) Name() string { return gptJudgeName }

// Model implements Interface.
func (j *gpt) Model() string { return j.model }

// Available implements Interface.
func (j *gpt) Available() bool { return true }

// JudgeProviders implements Interface.
func (j *gpt) JudgeProviders(ctx context.Context, documentName string, outputs events.Outputs) (*Result, error) {
	log := clog.FromContext(ctx)

	prompt, err := buildPrompt(documentName, outputs)
	if err != nil {
		return nil, callErr(gptJudgeName, documentName, err)
	}

	log.With("judge", gptJudgeName).
		With("document", documentName).
		With("reasoning_effort", string(j.reasoningEffort)).
		Info("Starting judge evaluation")

	resp, err := j.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(j.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(gptSystemPrompt),
			openai.UserMessage(prompt),
		},
		ReasoningEffort: j.reasoningEffort,
		// GPT reasoning models require temperature 1.0.
		Temperature: openai.Float(1.0),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   "provider_evaluation",
					Schema: schema.ReflectType[scoreResponse](),
					Strict: openai.Bool(true),
				},
			},
		},
	})
	if err != nil {
		return nil, callErr(gptJudgeName, documentName, err)
	}
	if len(resp.Choices) == 0 {
		return nil, callErr(gptJudgeName, documentName, errors.New("response has no choices"))
	}

	inputTokens := resp.Usage.PromptTokens
	outputTokens := resp.Usage.CompletionTokens
	reasoningTokens := resp.Usage.CompletionTokensDetails.ReasoningTokens
	cost := gptPricing.cost(inputTokens, outputTokens)

	j.genaiMetrics.RecordTokens(ctx, j.model, inputTokens, outputTokens)
	j.genaiMetrics.RecordReasoning(ctx, j.model, reasoningTokens)
	j.genaiMetrics.RecordCost(ctx, j.model, cost)

	scores, winner, err := parseScores(documentName, resp.Choices[0].Message.Content, outputs)
	if err != nil {
		return nil, callErr(gptJudgeName, documentName, err)
	}

	log.With("judge", gptJudgeName).
		With("document", documentName).
		With("winner", winner).
		With("reasoning_tokens", reasoningTokens).
		Info("Judge evaluation complete")

	return &Result{
		JudgeName:      gptJudgeName,
		Model:          j.model,
		DocumentName:   documentName,
		ProviderScores: scores,
		Winner:         winner,
		Timestamp:      time.Now(),
		Cost:           cost,
		ThinkingTokens: reasoningTokens,
	}, nil
}
