/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"context"
	"fmt"
	"time"

	"chainguard.dev/lexpanel/events"
)

// meterName is the unified OpenTelemetry meter for all judges; the model
// name is a dimension on the recorded metrics.
const meterName = "chainguard.ai.judges"

// ProviderScore holds one judge's scores for a single provider on one
// document. All criteria are on a 0-10 scale, where for hallucinations
// 10 means no hallucinations.
type ProviderScore struct {
	Provider        string  `json:"provider"`
	DocumentName    string  `json:"document_name"`
	Completeness    float64 `json:"completeness"`
	Accuracy        float64 `json:"accuracy"`
	Hallucinations  float64 `json:"hallucinations"`
	CitationQuality float64 `json:"citation_quality"`
	OverallQuality  float64 `json:"overall_quality"`

	// Reasoning is the judge's explanation of the scores.
	Reasoning string `json:"reasoning"`

	// EventCount is the number of events the provider extracted, taken
	// from the evaluated outputs rather than the judge's response.
	EventCount int `json:"event_count"`
}

// Result is one judge's complete evaluation of a document.
type Result struct {
	// JudgeName identifies the judge variant (e.g. "gpt-5").
	JudgeName string `json:"judge_name"`

	// Model is the actual model ID used.
	Model string `json:"model"`

	DocumentName string `json:"document_name"`

	// ProviderScores holds one entry per provider the judge scored, in the
	// order the response listed them.
	ProviderScores []ProviderScore `json:"provider_scores"`

	// Winner is the provider the judge selected, taken from the response
	// rather than recomputed from the scores.
	Winner string `json:"winner"`

	Timestamp time.Time `json:"timestamp"`

	// Cost is the judging cost in USD for this call.
	Cost float64 `json:"cost"`

	// ThinkingTokens is the extended reasoning usage for this call, zero
	// when the API does not expose it.
	ThinkingTokens int64 `json:"thinking_tokens"`
}

// Interface is the contract shared by all judge variants.
type Interface interface {
	// Name identifies the judge variant within a panel.
	Name() string

	// Model returns the model ID the judge calls.
	Model() string

	// Available reports whether the judge has a usable client.
	Available() bool

	// JudgeProviders evaluates every provider's extracted events for one
	// document and returns the judge's scores and winner selection. The
	// outputs map is never mutated. Failures are returned as *CallError.
	JudgeProviders(ctx context.Context, documentName string, outputs events.Outputs) (*Result, error)
}

// CallError is a failed judge call: an API error, a malformed response, or
// a missing required field. The panel drops the judge from the current
// evaluation on this error without affecting the other judges.
type CallError struct {
	Judge    string
	Document string
	Err      error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("judge %s failed on %q: %v", e.Judge, e.Document, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// callErr wraps err as a *CallError for the given judge and document.
func callErr(judge, document string, err error) *CallError {
	return &CallError{Judge: judge, Document: document, Err: err}
}

// pricing holds a model's USD rates per million tokens.
type pricing struct {
	inputPerMTok  float64
	outputPerMTok float64
}

// cost computes the USD cost of one call.
func (p pricing) cost(inputTokens, outputTokens int64) float64 {
	return float64(inputTokens)/1e6*p.inputPerMTok + float64(outputTokens)/1e6*p.outputPerMTok
}
