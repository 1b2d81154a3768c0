/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"chainguard.dev/lexpanel/events"
)

// scoreEntry is one provider's entry in a judge response. Fields are
// pointers so that a field the model omitted is distinguishable from a
// zero score; any missing field fails the whole call.
type scoreEntry struct {
	Provider        *string  `json:"provider" jsonschema:"description=Provider name,required"`
	Completeness    *float64 `json:"completeness" jsonschema:"description=Completeness score from 0 to 10,required"`
	Accuracy        *float64 `json:"accuracy" jsonschema:"description=Accuracy score from 0 to 10,required"`
	Hallucinations  *float64 `json:"hallucinations" jsonschema:"description=Hallucination score from 0 to 10 where 10 means none,required"`
	CitationQuality *float64 `json:"citation_quality" jsonschema:"description=Citation quality score from 0 to 10,required"`
	OverallQuality  *float64 `json:"overall_quality" jsonschema:"description=Overall quality score from 0 to 10,required"`
	Reasoning       *string  `json:"reasoning" jsonschema:"description=Brief explanation of the scores,required"`
}

// scoreResponse is the JSON object every judge must return.
type scoreResponse struct {
	Providers []scoreEntry `json:"providers" jsonschema:"description=One entry per evaluated provider,required"`
	Winner    *string      `json:"winner" jsonschema:"description=Name of the provider with the highest overall quality,required"`
}

// extractJSON strips markdown code fences that models occasionally wrap
// around JSON output despite instructions.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)

	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

// parseScores parses a judge's raw response text into provider scores and
// the judge's winner selection.
//
// Providers named in the response but absent from the evaluated outputs are
// ignored; providers the response did not score are simply unscored. A
// missing field or an unparseable response is an error, failing the whole
// judge call.
func parseScores(documentName, raw string, outputs events.Outputs) ([]ProviderScore, string, error) {
	var resp scoreResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		return nil, "", fmt.Errorf("unmarshaling score response: %w", err)
	}

	if resp.Winner == nil || *resp.Winner == "" {
		return nil, "", errors.New("score response has no winner")
	}

	scores := make([]ProviderScore, 0, len(resp.Providers))
	for i, entry := range resp.Providers {
		if entry.Provider == nil {
			return nil, "", fmt.Errorf("providers[%d]: missing provider name", i)
		}
		provider := *entry.Provider
		records, known := outputs[provider]
		if !known {
			continue
		}

		for field, v := range map[string]*float64{
			"completeness":     entry.Completeness,
			"accuracy":         entry.Accuracy,
			"hallucinations":   entry.Hallucinations,
			"citation_quality": entry.CitationQuality,
			"overall_quality":  entry.OverallQuality,
		} {
			if v == nil {
				return nil, "", fmt.Errorf("providers[%d] (%s): missing %s", i, provider, field)
			}
		}
		if entry.Reasoning == nil {
			return nil, "", fmt.Errorf("providers[%d] (%s): missing reasoning", i, provider)
		}

		scores = append(scores, ProviderScore{
			Provider:        provider,
			DocumentName:    documentName,
			Completeness:    *entry.Completeness,
			Accuracy:        *entry.Accuracy,
			Hallucinations:  *entry.Hallucinations,
			CitationQuality: *entry.CitationQuality,
			OverallQuality:  *entry.OverallQuality,
			Reasoning:       *entry.Reasoning,
			EventCount:      len(records),
		})
	}

	return scores, *resp.Winner, nil
}
