/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"testing"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/judge"
	"github.com/google/go-cmp/cmp"
)

func TestConsensusScores(t *testing.T) {
	outputs := events.Outputs{"openai": {}, "anthropic": {}}
	providers := []string{"anthropic", "openai"}

	results := []judge.Result{
		*scoredResult("judge-a", "openai", map[string]float64{"openai": 9.0, "anthropic": 6.0}, providers),
		*scoredResult("judge-b", "openai", map[string]float64{"openai": 8.0, "anthropic": 7.0}, providers),
		*scoredResult("judge-c", "anthropic", map[string]float64{"openai": 7.0, "anthropic": 8.0}, providers),
	}

	consensus := consensusScores(results, outputs)

	if len(consensus) != 2 {
		t.Fatalf("len(consensus) = %d, wanted 2", len(consensus))
	}

	openai := consensus["openai"]
	if openai.OverallQuality != 8.0 {
		t.Errorf("openai.OverallQuality = %f, wanted 8.0 (median of 9, 8, 7)", openai.OverallQuality)
	}
	if !almostEqual(openai.ScoreVariance["overall_quality"], 1.0) {
		t.Errorf("openai variance = %f, wanted 1.0", openai.ScoreVariance["overall_quality"])
	}

	anthropic := consensus["anthropic"]
	if anthropic.OverallQuality != 7.0 {
		t.Errorf("anthropic.OverallQuality = %f, wanted 7.0 (median of 6, 7, 8)", anthropic.OverallQuality)
	}
}

func TestConsensusScoresTwoJudges(t *testing.T) {
	outputs := events.Outputs{"openai": {}}
	providers := []string{"openai"}

	results := []judge.Result{
		*scoredResult("judge-a", "openai", map[string]float64{"openai": 7.0}, providers),
		*scoredResult("judge-b", "openai", map[string]float64{"openai": 9.0}, providers),
	}

	consensus := consensusScores(results, outputs)

	// Even count of judges averages the two middle values.
	if got := consensus["openai"].OverallQuality; got != 8.0 {
		t.Errorf("OverallQuality = %f, wanted 8.0", got)
	}
}

func TestConsensusScoresSingleJudge(t *testing.T) {
	outputs := events.Outputs{"openai": {}}
	providers := []string{"openai"}

	results := []judge.Result{
		*scoredResult("judge-a", "openai", map[string]float64{"openai": 8.5}, providers),
	}

	consensus := consensusScores(results, outputs)

	score := consensus["openai"]
	if score.OverallQuality != 8.5 {
		t.Errorf("OverallQuality = %f, wanted 8.5", score.OverallQuality)
	}
	for criterion, variance := range score.ScoreVariance {
		if variance != 0.0 {
			t.Errorf("ScoreVariance[%q] = %f, wanted 0 for a single judge", criterion, variance)
		}
	}
}

func TestConsensusScoresUnscoredProviderAbsent(t *testing.T) {
	outputs := events.Outputs{"openai": {}, "unscored": {}}

	results := []judge.Result{
		*scoredResult("judge-a", "openai", map[string]float64{"openai": 8.0}, []string{"openai"}),
		*scoredResult("judge-b", "openai", map[string]float64{"openai": 7.0}, []string{"openai"}),
	}

	consensus := consensusScores(results, outputs)

	if _, ok := consensus["unscored"]; ok {
		t.Error("unscored provider present in consensus, wanted absent")
	}
	if _, ok := consensus["openai"]; !ok {
		t.Error("openai absent from consensus, wanted present")
	}
}

func TestConsensusWinner(t *testing.T) {
	results := []judge.Result{
		{JudgeName: "judge-a", Winner: "openai"},
		{JudgeName: "judge-b", Winner: "anthropic"},
		{JudgeName: "judge-c", Winner: "openai"},
	}

	winner, votes := consensusWinner(results)

	if winner != "openai" {
		t.Errorf("winner = %q, wanted %q", winner, "openai")
	}
	if diff := cmp.Diff(map[string]int{"openai": 2, "anthropic": 1}, votes); diff != "" {
		t.Errorf("votes mismatch (-want, +got):\n%s", diff)
	}
}

func TestConsensusWinnerTieBreak(t *testing.T) {
	// A tie goes to the winner first voted for in completion order.
	results := []judge.Result{
		{JudgeName: "judge-a", Winner: "anthropic"},
		{JudgeName: "judge-b", Winner: "openai"},
	}

	winner, _ := consensusWinner(results)

	if winner != "anthropic" {
		t.Errorf("winner = %q, wanted %q (first seen)", winner, "anthropic")
	}
}

func TestConsensusWinnerUnanimous(t *testing.T) {
	results := []judge.Result{
		{JudgeName: "judge-a", Winner: "gemini"},
		{JudgeName: "judge-b", Winner: "gemini"},
		{JudgeName: "judge-c", Winner: "gemini"},
	}

	winner, votes := consensusWinner(results)

	if winner != "gemini" {
		t.Errorf("winner = %q, wanted %q", winner, "gemini")
	}
	if votes["gemini"] != 3 {
		t.Errorf("votes[gemini] = %d, wanted 3", votes["gemini"])
	}
}
