/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// createStandardTable creates a table writer with standard formatting
// options so all panel reports render consistently.
func createStandardTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 80,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// WriteSummary writes a human-readable markdown summary of a panel
// evaluation to w.
func WriteSummary(w io.Writer, result *Result) error {
	fmt.Fprintf(w, "# Panel Evaluation: %s\n\n", result.DocumentName)
	fmt.Fprintf(w, "**Consensus Winner**: %s\n", result.ConsensusWinner)
	fmt.Fprintf(w, "**Confidence**: %s\n", result.Agreement.ConfidenceLevel)
	fmt.Fprintf(w, "**Winner Consensus**: %.1f%%\n", result.Agreement.WinnerConsensusPercentage)
	fmt.Fprintf(w, "**Average Correlation**: %.3f\n", result.Agreement.AverageCorrelation)
	fmt.Fprintf(w, "**Total Cost**: $%.4f\n", result.TotalCost)
	fmt.Fprintf(w, "**Total Thinking Tokens**: %d\n\n", result.TotalThinkingTokens)

	fmt.Fprintf(w, "## Consensus Scores\n\n")
	if err := writeConsensusTable(w, result); err != nil {
		return fmt.Errorf("rendering consensus table: %w", err)
	}

	fmt.Fprintf(w, "\n## Judges\n\n")
	if err := writeJudgeTable(w, result); err != nil {
		return fmt.Errorf("rendering judge table: %w", err)
	}

	if len(result.Agreement.PairwiseCorrelation) > 0 {
		fmt.Fprintf(w, "\n## Pairwise Correlation\n\n")
		if err := writeCorrelationTable(w, result); err != nil {
			return fmt.Errorf("rendering correlation table: %w", err)
		}
	}

	return nil
}

func writeConsensusTable(w io.Writer, result *Result) error {
	table := createStandardTable([]string{
		"Provider", "Completeness", "Accuracy", "Hallucinations",
		"Citations", "Overall", "Votes",
	}, w)

	providers := make([]string, 0, len(result.ConsensusScores))
	for provider := range result.ConsensusScores {
		providers = append(providers, provider)
	}
	sort.Strings(providers)

	for _, provider := range providers {
		score := result.ConsensusScores[provider]
		_ = table.Append([]string{
			provider,
			fmt.Sprintf("%.1f", score.Completeness),
			fmt.Sprintf("%.1f", score.Accuracy),
			fmt.Sprintf("%.1f", score.Hallucinations),
			fmt.Sprintf("%.1f", score.CitationQuality),
			fmt.Sprintf("%.1f", score.OverallQuality),
			fmt.Sprintf("%d", result.WinnerVotes[provider]),
		})
	}
	return table.Render()
}

func writeJudgeTable(w io.Writer, result *Result) error {
	table := createStandardTable([]string{
		"Judge", "Model", "Winner", "Cost", "Thinking Tokens",
	}, w)

	for _, jr := range result.IndividualResults {
		_ = table.Append([]string{
			jr.JudgeName,
			jr.Model,
			jr.Winner,
			fmt.Sprintf("$%.4f", jr.Cost),
			fmt.Sprintf("%d", jr.ThinkingTokens),
		})
	}
	return table.Render()
}

func writeCorrelationTable(w io.Writer, result *Result) error {
	table := createStandardTable([]string{"Judge Pair", "Pearson r"}, w)

	pairs := make([]string, 0, len(result.Agreement.PairwiseCorrelation))
	for pair := range result.Agreement.PairwiseCorrelation {
		pairs = append(pairs, pair)
	}
	sort.Strings(pairs)

	for _, pair := range pairs {
		_ = table.Append([]string{
			pair,
			fmt.Sprintf("%.3f", result.Agreement.PairwiseCorrelation[pair]),
		})
	}
	return table.Render()
}
