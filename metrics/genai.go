/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package metrics provides OpenTelemetry metrics for judge API usage.
package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI provides OpenTelemetry metrics for generative AI judging: counters
// for prompt, completion, and reasoning tokens, plus judging cost in USD.
// Metric creation degrades gracefully to no-op counters.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	reasoningTokens  metric.Int64Counter
	costUSD          metric.Float64Counter
}

// NewGenAI creates a new GenAI metrics instance with the specified meter name.
// The meter name is shared across all judges, with the judge's model name as
// a dimension on the recorded metrics.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	reasoningTokens, err := meter.Int64Counter("genai.token.reasoning",
		metric.WithDescription("The number of extended reasoning tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create reasoning tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		reasoningTokens = noop.Int64Counter{}
	}

	costUSD, err := meter.Float64Counter("genai.cost",
		metric.WithDescription("The judging cost attributed to API token usage"),
		metric.WithUnit("{usd}"))
	if err != nil {
		slog.Warn("Failed to create cost counter, metrics will be disabled", "error", err, "meter", meterName)
		costUSD = noop.Float64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		reasoningTokens:  reasoningTokens,
		costUSD:          costUSD,
	}
}

// RecordTokens records prompt and completion token usage for one judge call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	baseAttrs := append([]attribute.KeyValue{
		attribute.String("model", model),
	}, attrs...)

	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(baseAttrs...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(baseAttrs...))
}

// RecordReasoning records extended reasoning ("thinking") token usage.
func (m *GenAI) RecordReasoning(ctx context.Context, model string, reasoningTokens int64, attrs ...attribute.KeyValue) {
	baseAttrs := append([]attribute.KeyValue{
		attribute.String("model", model),
	}, attrs...)

	m.reasoningTokens.Add(ctx, reasoningTokens, metric.WithAttributes(baseAttrs...))
}

// RecordCost records the USD cost of one judge call.
func (m *GenAI) RecordCost(ctx context.Context, model string, usd float64, attrs ...attribute.KeyValue) {
	baseAttrs := append([]attribute.KeyValue{
		attribute.String("model", model),
	}, attrs...)

	m.costUSD.Add(ctx, usd, metric.WithAttributes(baseAttrs...))
}
