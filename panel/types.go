/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"time"

	"chainguard.dev/lexpanel/judge"
)

// ConsensusMethod names the aggregation strategy: median scores per
// criterion, majority vote for the winner.
const ConsensusMethod = "median_scores_majority_winner"

// Confidence grades how much the judges agreed with each other.
type Confidence string

const (
	// ConfidenceHigh means strong score correlation and a unanimous winner.
	ConfidenceHigh Confidence = "HIGH"

	// ConfidenceMedium means moderate correlation and a clear majority.
	ConfidenceMedium Confidence = "MEDIUM"

	// ConfidenceLow means the judges disagreed on scores, the winner, or both.
	ConfidenceLow Confidence = "LOW"
)

// ConsensusScore is the panel's aggregate score for a single provider.
// Each criterion is the median across judges, which is robust to a single
// outlier judge.
type ConsensusScore struct {
	Provider        string  `json:"provider"`
	Completeness    float64 `json:"completeness"`
	Accuracy        float64 `json:"accuracy"`
	Hallucinations  float64 `json:"hallucinations"`
	CitationQuality float64 `json:"citation_quality"`
	OverallQuality  float64 `json:"overall_quality"`

	// ScoreVariance holds the sample standard deviation per criterion,
	// keyed by the criterion's JSON name. Zero when fewer than two judges
	// scored the provider.
	ScoreVariance map[string]float64 `json:"score_variance"`
}

// Agreement captures how consistently the judges scored and picked winners.
type Agreement struct {
	// PairwiseCorrelation maps "judgeA_vs_judgeB" to the Pearson
	// correlation of their overall quality scores.
	PairwiseCorrelation map[string]float64 `json:"pearson_correlation"`

	// AverageCorrelation is the mean of the pairwise correlations, zero
	// when no pair could be correlated.
	AverageCorrelation float64 `json:"average_correlation"`

	// ScoreStdDevPerProvider maps provider to per-criterion standard
	// deviations, mirroring each ConsensusScore's ScoreVariance.
	ScoreStdDevPerProvider map[string]map[string]float64 `json:"score_std_dev_per_provider"`

	// WinnerConsensusPercentage is the share of judges that picked the
	// same winner as the first judge to complete.
	WinnerConsensusPercentage float64 `json:"winner_consensus_percentage"`

	ConfidenceLevel Confidence `json:"confidence_level"`
}

// Result is a complete panel evaluation of one document.
type Result struct {
	DocumentName string    `json:"document_name"`
	Timestamp    time.Time `json:"timestamp"`

	// JudgesUsed lists the judges that returned a result, in completion
	// order.
	JudgesUsed []string `json:"judges_used"`

	// IndividualResults holds each surviving judge's full result, in
	// completion order. Judges that failed are absent.
	IndividualResults []judge.Result `json:"individual_results"`

	ConsensusMethod string                    `json:"consensus_method"`
	ConsensusScores map[string]ConsensusScore `json:"consensus_scores"`

	// ConsensusWinner is the provider with the most judge votes. Ties go
	// to the winner voted for earliest in completion order.
	ConsensusWinner string         `json:"consensus_winner"`
	WinnerVotes     map[string]int `json:"winner_votes"`

	Agreement Agreement `json:"agreement"`

	// TotalCost is the summed judging cost in USD across judges.
	TotalCost float64 `json:"total_cost"`

	// TotalThinkingTokens is the summed reasoning usage across judges.
	TotalThinkingTokens int64 `json:"total_thinking_tokens"`
}
