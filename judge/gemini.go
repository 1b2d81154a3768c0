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
	"github.com/chainguard-dev/clog"
	"google.golang.org/genai"
)

const (
	geminiJudgeName    = "gemini-2.5-pro"
	defaultGeminiModel = "gemini-2.5-pro"
)

// geminiPricing is the Gemini Pro rate card: $1.25/M input, $5/M output.
var geminiPricing = pricing{inputPerMTok: 1.25, outputPerMTok: 5.00}

// estimatedBlendedRate prices a call when the API returns no usage
// metadata, applied to a whitespace token estimate.
const estimatedBlendedRate = 2.00

// gemini implements Interface using a Gemini model. Thinking is built in;
// the usage metadata reports thought tokens directly.
type gemini struct {
	client       *genai.Client
	model        string
	temperature  float32
	genaiMetrics *metrics.GenAI
}

// GeminiOption is a functional option for configuring the Gemini judge.
type GeminiOption func(*gemini) error

// WithGeminiModel overrides the model ID.
func WithGeminiModel(model string) GeminiOption {
	return func(j *gemini) error {
		if !strings.HasPrefix(model, "gemini-") {
			return fmt.Errorf("model %q does not appear to be a Gemini model (expected gemini-* format)", model)
		}
		j.model = model
		return nil
	}
}

// WithGeminiTemperature sets the generation temperature.
func WithGeminiTemperature(temp float32) GeminiOption {
	return func(j *gemini) error {
		if temp < 0.0 || temp > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temp)
		}
		j.temperature = temp
		return nil
	}
}

// NewGemini creates the Gemini judge. Temperature defaults to 0 for
// consistent judgments.
func NewGemini(ctx context.Context, apiKey string, opts ...GeminiOption) (Interface, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	j := &gemini{
		client:       client,
		model:        defaultGeminiModel,
		genaiMetrics: metrics.NewGenAI(meterName),
	}
	for _, opt := range opts {
		if err := opt(j); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return j, nil
}

// Name implements Interface.
func (j *gemini) Name() string { return geminiJudgeName }

// Model implements Interface.
func (j *gemini) Model() string { return j.model }

// Available implements Interface.
func (j *gemini) Available() bool { return j.client != nil }

// JudgeProviders implements Interface.
func (j *gemini) JudgeProviders(ctx context.Context, documentName string, outputs events.Outputs) (*Result, error) {
	log := clog.FromContext(ctx)

	prompt, err := buildPrompt(documentName, outputs)
	if err != nil {
		return nil, callErr(geminiJudgeName, documentName, err)
	}

	log.With("judge", geminiJudgeName).
		With("document", documentName).
		Info("Starting judge evaluation")

	resp, err := j.client.Models.GenerateContent(ctx, j.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(j.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   geminiScoreSchema(),
	})
	if err != nil {
		return nil, callErr(geminiJudgeName, documentName, err)
	}

	text := resp.Text()
	if text == "" {
		return nil, callErr(geminiJudgeName, documentName, errors.New("response has no text content"))
	}

	var cost float64
	var thinkingTokens int64
	if usage := resp.UsageMetadata; usage != nil {
		inputTokens := int64(usage.PromptTokenCount)
		outputTokens := int64(usage.CandidatesTokenCount)
		thinkingTokens = int64(usage.ThoughtsTokenCount)
		cost = geminiPricing.cost(inputTokens, outputTokens)
		j.genaiMetrics.RecordTokens(ctx, j.model, inputTokens, outputTokens)
		j.genaiMetrics.RecordReasoning(ctx, j.model, thinkingTokens)
	} else {
		cost = estimatedCost(prompt, text)
	}
	j.genaiMetrics.RecordCost(ctx, j.model, cost)

	scores, winner, err := parseScores(documentName, text, outputs)
	if err != nil {
		return nil, callErr(geminiJudgeName, documentName, err)
	}

	log.With("judge", geminiJudgeName).
		With("document", documentName).
		With("winner", winner).
		With("thinking_tokens", thinkingTokens).
		Info("Judge evaluation complete")

	return &Result{
		JudgeName:      geminiJudgeName,
		Model:          j.model,
		DocumentName:   documentName,
		ProviderScores: scores,
		Winner:         winner,
		Timestamp:      time.Now(),
		Cost:           cost,
		ThinkingTokens: thinkingTokens,
	}, nil
}

// estimatedCost prices a call from whitespace token counts when the API
// returned no usage metadata.
func estimatedCost(prompt, text string) float64 {
	estimated := int64(len(strings.Fields(prompt)) + len(strings.Fields(text)))
	return float64(estimated) / 1e6 * estimatedBlendedRate
}

// geminiScoreSchema is the structured output schema matching scoreResponse.
func geminiScoreSchema() *genai.Schema {
	scoreProp := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        "number",
			Description: description,
		}
	}

	return &genai.Schema{
		Type: "object",
		Properties: map[string]*genai.Schema{
			"providers": {
				Type:        "array",
				Description: "One entry per evaluated provider",
				Items: &genai.Schema{
					Type: "object",
					Properties: map[string]*genai.Schema{
						"provider": {
							Type:        "string",
							Description: "Provider name",
						},
						"completeness":     scoreProp("Completeness score from 0 to 10"),
						"accuracy":         scoreProp("Accuracy score from 0 to 10"),
						"hallucinations":   scoreProp("Hallucination score from 0 to 10 where 10 means none"),
						"citation_quality": scoreProp("Citation quality score from 0 to 10"),
						"overall_quality":  scoreProp("Overall quality score from 0 to 10"),
						"reasoning": {
							Type:        "string",
							Description: "Brief explanation of the scores",
						},
					},
					Required: []string{
						"provider", "completeness", "accuracy", "hallucinations",
						"citation_quality", "overall_quality", "reasoning",
					},
				},
			},
			"winner": {
				Type:        "string",
				Description: "Name of the provider with the highest overall quality",
			},
		},
		Required: []string{"providers", "winner"},
	}
}
