/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"context"
	"errors"
	"time"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/judge"
)

// fakeJudge is a canned-response judge for tests.
type fakeJudge struct {
	name      string
	available bool
	result    *judge.Result
	err       error

	// delay staggers completion so completion order is deterministic in
	// ordering tests.
	delay time.Duration
}

func (f *fakeJudge) Name() string    { return f.name }
func (f *fakeJudge) Model() string   { return f.name + "-model" }
func (f *fakeJudge) Available() bool { return f.available }

func (f *fakeJudge) JudgeProviders(ctx context.Context, documentName string, outputs events.Outputs) (*judge.Result, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

var errFakeFailure = errors.New("simulated judge failure")

// scoredResult builds a judge result scoring each provider's overall
// quality, filling the remaining criteria with the same value.
func scoredResult(judgeName, winner string, overall map[string]float64, providers []string) *judge.Result {
	scores := make([]judge.ProviderScore, 0, len(overall))
	for _, provider := range providers {
		q := overall[provider]
		scores = append(scores, judge.ProviderScore{
			Provider:        provider,
			DocumentName:    "doc.pdf",
			Completeness:    q,
			Accuracy:        q,
			Hallucinations:  q,
			CitationQuality: q,
			OverallQuality:  q,
			Reasoning:       "test",
		})
	}
	return &judge.Result{
		JudgeName:      judgeName,
		Model:          judgeName + "-model",
		DocumentName:   "doc.pdf",
		ProviderScores: scores,
		Winner:         winner,
		Timestamp:      time.Now(),
		Cost:           0.5,
		ThinkingTokens: 1000,
	}
}
