/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/judge"
)

// criteria names the scored dimensions, in their JSON spelling. The order
// fixes the column order in reports.
var criteria = []string{
	"completeness",
	"accuracy",
	"hallucinations",
	"citation_quality",
	"overall_quality",
}

// criterionValue extracts one named criterion from a provider score.
func criterionValue(s judge.ProviderScore, criterion string) float64 {
	switch criterion {
	case "completeness":
		return s.Completeness
	case "accuracy":
		return s.Accuracy
	case "hallucinations":
		return s.Hallucinations
	case "citation_quality":
		return s.CitationQuality
	case "overall_quality":
		return s.OverallQuality
	}
	return 0.0
}

// consensusScores aggregates per-judge scores into one median score per
// provider. Providers no judge scored are absent from the result.
func consensusScores(results []judge.Result, outputs events.Outputs) map[string]ConsensusScore {
	consensus := make(map[string]ConsensusScore, len(outputs))

	for _, provider := range outputs.Providers() {
		byCriterion := make(map[string][]float64, len(criteria))
		for _, result := range results {
			for _, score := range result.ProviderScores {
				if score.Provider != provider {
					continue
				}
				for _, criterion := range criteria {
					byCriterion[criterion] = append(byCriterion[criterion], criterionValue(score, criterion))
				}
			}
		}

		if len(byCriterion["completeness"]) == 0 {
			continue
		}

		variance := make(map[string]float64, len(criteria))
		for _, criterion := range criteria {
			variance[criterion] = stdDev(byCriterion[criterion])
		}

		consensus[provider] = ConsensusScore{
			Provider:        provider,
			Completeness:    median(byCriterion["completeness"]),
			Accuracy:        median(byCriterion["accuracy"]),
			Hallucinations:  median(byCriterion["hallucinations"]),
			CitationQuality: median(byCriterion["citation_quality"]),
			OverallQuality:  median(byCriterion["overall_quality"]),
			ScoreVariance:   variance,
		}
	}

	return consensus
}

// consensusWinner tallies judge votes and returns the majority winner. A
// tie goes to the winner that was voted for earliest in completion order.
func consensusWinner(results []judge.Result) (string, map[string]int) {
	votes := make(map[string]int, len(results))
	var order []string

	for _, result := range results {
		if _, seen := votes[result.Winner]; !seen {
			order = append(order, result.Winner)
		}
		votes[result.Winner]++
	}

	var winner string
	best := -1
	for _, candidate := range order {
		if votes[candidate] > best {
			winner = candidate
			best = votes[candidate]
		}
	}

	return winner, votes
}
