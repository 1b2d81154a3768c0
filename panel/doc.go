/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package panel coordinates a panel of reasoning-model judges to evaluate
// legal event extraction quality.
//
// The panel fans out one document's provider outputs to every judge in
// parallel, then aggregates the surviving results into a consensus: median
// scores per criterion, a majority-vote winner, and inter-judge agreement
// metrics (pairwise Pearson correlation, score spread, and a confidence
// level). A judge that fails is dropped from the current evaluation without
// affecting the others; at least one judge must succeed.
package panel
