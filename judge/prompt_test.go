/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"strings"
	"testing"

	"chainguard.dev/lexpanel/events"
)

func TestBuildPrompt(t *testing.T) {
	outputs := events.Outputs{
		"openai": {
			{Date: "2024-01-15", EventParticulars: "Complaint filed", Citation: "Dkt. 1"},
		},
		"gemini": {},
	}

	prompt, err := buildPrompt("smith_v_jones.pdf", outputs)
	if err != nil {
		t.Fatalf("buildPrompt() = %v", err)
	}

	for _, want := range []string{
		"**Document**: smith_v_jones.pdf",
		"**OPENAI** (1 events):",
		"**GEMINI** (0 events):",
		"(No events extracted)",
		"Date: 2024-01-15",
		"Event: Complaint filed...",
		"Citation: Dkt. 1",
		`"winner": "provider_name"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPromptMissingFields(t *testing.T) {
	outputs := events.Outputs{
		"claude": {{EventParticulars: "Order entered"}},
	}

	prompt, err := buildPrompt("doc.pdf", outputs)
	if err != nil {
		t.Fatalf("buildPrompt() = %v", err)
	}

	if !strings.Contains(prompt, "Date: N/A") {
		t.Errorf("missing date not rendered as N/A:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Citation: N/A") {
		t.Errorf("missing citation not rendered as N/A:\n%s", prompt)
	}
}

func TestRenderOutputsTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	outputs := events.Outputs{
		"openai": {{Date: "2024-01-01", EventParticulars: long, Citation: "Dkt. 2"}},
	}

	rendered := renderOutputs(outputs)

	want := "Event: " + strings.Repeat("x", 200) + "..."
	if !strings.Contains(rendered, want) {
		t.Errorf("particulars not truncated to 200 characters:\n%s", rendered)
	}
	if strings.Contains(rendered, strings.Repeat("x", 201)) {
		t.Errorf("rendered output contains more than 200 particulars characters")
	}
}

func TestRenderOutputsDeterministicOrder(t *testing.T) {
	outputs := events.Outputs{
		"zeta":  {},
		"alpha": {},
		"mid":   {},
	}

	rendered := renderOutputs(outputs)

	alpha := strings.Index(rendered, "**ALPHA**")
	mid := strings.Index(rendered, "**MID**")
	zeta := strings.Index(rendered, "**ZETA**")
	if alpha == -1 || mid == -1 || zeta == -1 {
		t.Fatalf("rendered output missing a provider:\n%s", rendered)
	}
	if !(alpha < mid && mid < zeta) {
		t.Errorf("providers not rendered in sorted order: alpha=%d, mid=%d, zeta=%d", alpha, mid, zeta)
	}
}
