/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package events defines the legal event records that extraction providers
// produce and that the judge panel evaluates. Records are free-text
// triples of date, particulars, and citation; absent fields render as
// "N/A" rather than failing.
package events
