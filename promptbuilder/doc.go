/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder provides a small template type for assembling judge
// prompts. Templates carry {{token}} placeholders; binding is immutable and
// Build fails if any placeholder is left unbound, so a prompt can never
// reach a model with holes in it.
package promptbuilder
