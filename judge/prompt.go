/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package judge

import (
	"fmt"
	"strings"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/promptbuilder"
)

// evalPrompt is the evaluation prompt shared by every judge variant. The
// structure must stay identical across variants so their scores are
// comparable; only the API invocation differs per judge.
var evalPrompt = promptbuilder.MustNewPrompt(`You are an expert legal document analyst evaluating the quality of automated legal event extraction systems. You will compare the outputs of multiple AI providers that extracted legal events from the same document.

**Document**: {{document}}

**Your Task**: Score each provider on 5 criteria (0-10 scale) and identify the best provider.

**Scoring Criteria** (calibrated for legal professional needs):

1. **Completeness** (0-10): Did the provider capture all meaningful legal events?
   - 10 = All events captured, no important events missed
   - 5 = About half the events captured
   - 0 = Very few or no events captured
   - NOTE: High completeness with missing citations should NOT score 10 overall

2. **Accuracy** (0-10): Are the dates, parties, facts, and details correct?
   - 10 = All facts accurate, no errors
   - 5 = Some errors but mostly correct
   - 0 = Many errors or completely wrong

3. **Hallucinations** (0-10): Are there invented facts NOT in the source?
   - 10 = No hallucinations, all facts from source
   - 5 = Minor invented details
   - 0 = Many fabricated facts

4. **Citation Quality** (0-10): Are legal citations accurate and properly formatted?
   - 10 = All citations accurate and well-formatted
   - 5 = Some citation errors or missing citations
   - 0 = No citations or completely wrong citations
   - **CRITICAL FOR LEGAL WORK**: Missing citations is a fatal flaw (max 5/10 overall)

5. **Overall Quality** (0-10): Overall usability for legal professionals
   - 10 = Production-ready, no corrections needed (requires proper citations)
   - 5 = Usable with moderate corrections
   - 0 = Not usable, requires complete rewrite
   - **Consider**: Legal professionals need QUALITY over QUANTITY
   - **Prefer**: 1 well-cited event over 5 events without citations
   - **Fatal flaws**: Missing citations, hallucinations, poor accuracy

**Provider Outputs**:

{{provider_outputs}}

**Output Format**: Return ONLY valid JSON with this exact structure:

{
  "providers": [
    {
      "provider": "provider_name",
      "completeness": 8.5,
      "accuracy": 9.0,
      "hallucinations": 10.0,
      "citation_quality": 7.5,
      "overall_quality": 8.5,
      "reasoning": "Brief explanation of scores (2-3 sentences)"
    }
  ],
  "winner": "provider_name"
}

**Important Judging Guidelines**:
- Score ALL providers objectively
- Use decimal scores (e.g., 8.5) for precision
- Winner = highest overall_quality score
- **Citation quality is CRITICAL**: Providers with missing/poor citations cannot score >7/10 overall
- **Quality over quantity**: 1 well-cited event beats 5 events without citations
- **Legal professional context**: Prioritize usability for lawyers (citations, accuracy, no hallucinations)
- Reasoning should explain key strengths/weaknesses (2-3 sentences)
- Return ONLY the JSON, no other text
`)

// buildPrompt renders the shared evaluation prompt for one document.
func buildPrompt(documentName string, outputs events.Outputs) (string, error) {
	p, err := evalPrompt.Bind("document", documentName)
	if err != nil {
		return "", err
	}
	p, err = p.Bind("provider_outputs", renderOutputs(outputs))
	if err != nil {
		return "", err
	}
	return p.Build()
}

// renderOutputs formats every provider's events for the prompt. Providers
// are walked in sorted order so the prompt is deterministic for a given
// input.
func renderOutputs(outputs events.Outputs) string {
	var sb strings.Builder

	for _, provider := range outputs.Providers() {
		records := outputs[provider]
		fmt.Fprintf(&sb, "\n**%s** (%d events):\n", strings.ToUpper(provider), len(records))
		if len(records) == 0 {
			sb.WriteString("  (No events extracted)\n")
			continue
		}
		for i, record := range records {
			fmt.Fprintf(&sb, "  %d. Date: %s\n", i+1, record.PromptDate())
			fmt.Fprintf(&sb, "     Event: %s...\n", record.PromptParticulars())
			fmt.Fprintf(&sb, "     Citation: %s\n\n", record.PromptCitation())
		}
	}

	return sb.String()
}
