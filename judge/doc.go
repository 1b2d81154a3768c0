/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package judge implements the individual judges of the evaluation panel.
//
// A judge wraps one remote reasoning model (GPT, Claude, or Gemini) and
// scores competing legal-event extraction outputs for a single document.
// All variants share the same evaluation prompt and the same response
// contract, so their scores are directly comparable; they differ only in
// how the remote API is invoked and how cost and reasoning-token usage are
// accounted.
//
// The shared response contract is a single JSON object:
//
//	{
//	  "providers": [
//	    {
//	      "provider": "...",
//	      "completeness": 8.5,
//	      "accuracy": 9.0,
//	      "hallucinations": 10.0,
//	      "citation_quality": 7.5,
//	      "overall_quality": 8.5,
//	      "reasoning": "..."
//	    }
//	  ],
//	  "winner": "..."
//	}
//
// Judges enforce this structurally where the API allows (JSON-schema
// response formats) and defensively parse the text otherwise. A malformed
// response, a missing field, or an API failure fails the whole call with a
// *CallError; the panel isolates such failures per judge.
package judge
