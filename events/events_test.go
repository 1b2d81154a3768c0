/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package events

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPromptFieldsDefaultToNA(t *testing.T) {
	var r Record

	if got := r.PromptDate(); got != "N/A" {
		t.Errorf("PromptDate: got = %q, wanted = %q", got, "N/A")
	}
	if got := r.PromptCitation(); got != "N/A" {
		t.Errorf("PromptCitation: got = %q, wanted = %q", got, "N/A")
	}
	if got := r.PromptParticulars(); got != "N/A" {
		t.Errorf("PromptParticulars: got = %q, wanted = %q", got, "N/A")
	}
}

func TestPromptParticularsTruncation(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantLength int
	}{{
		name:       "short text unchanged",
		input:      "Complaint filed",
		wantLength: len("Complaint filed"),
	}, {
		name:       "exactly at limit",
		input:      strings.Repeat("a", 200),
		wantLength: 200,
	}, {
		name:       "over limit truncated",
		input:      strings.Repeat("b", 500),
		wantLength: 200,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := Record{EventParticulars: test.input}
			got := r.PromptParticulars()
			if len([]rune(got)) != test.wantLength {
				t.Errorf("length: got = %d, wanted = %d", len([]rune(got)), test.wantLength)
			}
		})
	}
}

func TestPromptParticularsMultibyte(t *testing.T) {
	// 300 runes of multi-byte text must truncate on rune boundaries.
	r := Record{EventParticulars: strings.Repeat("§", 300)}
	got := r.PromptParticulars()
	if want := strings.Repeat("§", 200); got != want {
		t.Errorf("truncation: got = %d runes, wanted = 200 runes of %q", len([]rune(got)), "§")
	}
}

func TestProvidersSorted(t *testing.T) {
	o := Outputs{
		"openrouter":  nil,
		"anthropic":   nil,
		"langextract": nil,
	}

	want := []string{"anthropic", "langextract", "openrouter"}
	if diff := cmp.Diff(want, o.Providers()); diff != "" {
		t.Errorf("Providers() mismatch (-want +got):\n%s", diff)
	}
}
