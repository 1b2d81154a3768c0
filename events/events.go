/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package events

import "sort"

// particularsLimit caps how much of the event particulars is rendered into
// judge prompts. Long narratives blow the shared prompt out of proportion
// without improving scoring.
const particularsLimit = 200

// Record is a single extracted legal event.
type Record struct {
	// Date is the event date as extracted, in whatever format the provider produced.
	Date string `json:"date"`

	// EventParticulars describes what happened.
	EventParticulars string `json:"event_particulars"`

	// Citation is the legal citation supporting the event.
	Citation string `json:"citation"`
}

// Outputs maps a provider name to the ordered events it extracted from one document.
type Outputs map[string][]Record

// orNA substitutes "N/A" for absent fields so prompt rendering never
// depends on provider completeness.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PromptDate returns the event date for prompt rendering.
func (r Record) PromptDate() string { return orNA(r.Date) }

// PromptCitation returns the citation for prompt rendering.
func (r Record) PromptCitation() string { return orNA(r.Citation) }

// PromptParticulars returns the particulars truncated for prompt rendering.
// Truncation is rune-aware so multi-byte text is never split mid-character.
func (r Record) PromptParticulars() string {
	s := orNA(r.EventParticulars)
	runes := []rune(s)
	if len(runes) <= particularsLimit {
		return s
	}
	return string(runes[:particularsLimit])
}

// Providers returns the provider names present in the outputs, in sorted
// order. Go map iteration is unordered, and downstream consensus math wants
// a deterministic walk.
func (o Outputs) Providers() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
