/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"fmt"

	"chainguard.dev/lexpanel/judge"
)

// Confidence thresholds. HIGH requires a unanimous winner on top of
// strong score correlation.
const (
	highCorrelation   = 0.8
	mediumCorrelation = 0.6
	majorityPct       = 67.0
)

// computeAgreement derives the inter-judge agreement metrics from the
// surviving results, which must be in completion order.
func computeAgreement(results []judge.Result, consensus map[string]ConsensusScore) Agreement {
	correlations := make(map[string]float64)

	// Pairwise correlation of overall quality scores. Scores are aligned
	// by position; every judge sees the same prompt, so the per-judge
	// score order only diverges when a judge skipped a provider, and a
	// mismatched pair is simply not correlated.
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			x := overallScores(results[i])
			y := overallScores(results[j])
			if len(x) != len(y) || len(x) < 2 {
				continue
			}
			key := fmt.Sprintf("%s_vs_%s", results[i].JudgeName, results[j].JudgeName)
			correlations[key] = pearson(x, y)
		}
	}

	var avgCorrelation float64
	if len(correlations) > 0 {
		values := make([]float64, 0, len(correlations))
		for _, corr := range correlations {
			values = append(values, corr)
		}
		avgCorrelation = mean(values)
	}

	stdDevPerProvider := make(map[string]map[string]float64, len(consensus))
	for provider, score := range consensus {
		stdDevPerProvider[provider] = score.ScoreVariance
	}

	// Winner consensus is measured against the first judge to complete.
	var winnerPct float64
	if len(results) > 0 {
		reference := results[0].Winner
		agreed := 0
		for _, result := range results {
			if result.Winner == reference {
				agreed++
			}
		}
		winnerPct = float64(agreed) / float64(len(results)) * 100
	}

	confidence := ConfidenceLow
	switch {
	case avgCorrelation >= highCorrelation && winnerPct == 100:
		confidence = ConfidenceHigh
	case avgCorrelation >= mediumCorrelation && winnerPct >= majorityPct:
		confidence = ConfidenceMedium
	}

	return Agreement{
		PairwiseCorrelation:       correlations,
		AverageCorrelation:        avgCorrelation,
		ScoreStdDevPerProvider:    stdDevPerProvider,
		WinnerConsensusPercentage: winnerPct,
		ConfidenceLevel:           confidence,
	}
}

func overallScores(result judge.Result) []float64 {
	scores := make([]float64, 0, len(result.ProviderScores))
	for _, s := range result.ProviderScores {
		scores = append(scores, s.OverallQuality)
	}
	return scores
}
