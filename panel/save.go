/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"chainguard.dev/lexpanel/judge"
)

// savedJudgeResult is the persisted shape of one judge's result.
type savedJudgeResult struct {
	JudgeName      string                `json:"judge_name"`
	Model          string                `json:"model"`
	Winner         string                `json:"winner"`
	Cost           float64               `json:"cost"`
	ThinkingTokens int64                 `json:"thinking_tokens"`
	Scores         []judge.ProviderScore `json:"scores"`
}

type savedConsensus struct {
	Method      string                    `json:"method"`
	Winner      string                    `json:"winner"`
	WinnerVotes map[string]int            `json:"winner_votes"`
	Scores      map[string]ConsensusScore `json:"scores"`
}

// savedResult is the on-disk shape of a panel evaluation.
type savedResult struct {
	DocumentName        string                      `json:"document_name"`
	Timestamp           string                      `json:"timestamp"`
	JudgesUsed          []string                    `json:"judges_used"`
	IndividualResults   map[string]savedJudgeResult `json:"individual_results"`
	Consensus           savedConsensus              `json:"consensus"`
	Agreement           Agreement                   `json:"agreement"`
	TotalCost           float64                     `json:"total_cost"`
	TotalThinkingTokens int64                       `json:"total_thinking_tokens"`
}

// SaveResults writes a panel result to path as indented JSON.
func SaveResults(result *Result, path string) error {
	individual := make(map[string]savedJudgeResult, len(result.IndividualResults))
	for _, jr := range result.IndividualResults {
		individual[jr.JudgeName] = savedJudgeResult{
			JudgeName:      jr.JudgeName,
			Model:          jr.Model,
			Winner:         jr.Winner,
			Cost:           jr.Cost,
			ThinkingTokens: jr.ThinkingTokens,
			Scores:         jr.ProviderScores,
		}
	}

	saved := savedResult{
		DocumentName:      result.DocumentName,
		Timestamp:         result.Timestamp.Format(time.RFC3339),
		JudgesUsed:        result.JudgesUsed,
		IndividualResults: individual,
		Consensus: savedConsensus{
			Method:      result.ConsensusMethod,
			Winner:      result.ConsensusWinner,
			WinnerVotes: result.WinnerVotes,
			Scores:      result.ConsensusScores,
		},
		Agreement:           result.Agreement,
		TotalCost:           result.TotalCost,
		TotalThinkingTokens: result.TotalThinkingTokens,
	}

	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling panel result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing panel result to %q: %w", path, err)
	}

	return nil
}
