/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package panel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"chainguard.dev/lexpanel/events"
	"chainguard.dev/lexpanel/judge"
	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"
)

const (
	// defaultMinJudges is the minimum panel size for a meaningful
	// consensus.
	defaultMinJudges = 2

	// defaultJudgeTimeout bounds one judge call. Reasoning models with
	// large thinking budgets routinely take minutes.
	defaultJudgeTimeout = 10 * time.Minute
)

var (
	// ErrInsufficientJudges means too few judges were available to form a
	// panel.
	ErrInsufficientJudges = errors.New("insufficient judges for panel")

	// ErrAllJudgesFailed means every judge call failed for a document.
	ErrAllJudgesFailed = errors.New("all judges failed")
)

// Panel fans one document out to every judge and aggregates the results.
type Panel struct {
	judges    []judge.Interface
	minJudges int
	timeout   time.Duration
}

// Option is a functional option for configuring a Panel.
type Option func(*Panel) error

// WithMinJudges overrides the minimum number of available judges required
// to construct a panel. At least 2 are required for a consensus.
func WithMinJudges(n int) Option {
	return func(p *Panel) error {
		if n < 2 {
			return fmt.Errorf("minimum judges must be at least 2, got %d", n)
		}
		p.minJudges = n
		return nil
	}
}

// WithJudgeTimeout bounds each individual judge call.
func WithJudgeTimeout(d time.Duration) Option {
	return func(p *Panel) error {
		if d <= 0 {
			return fmt.Errorf("judge timeout must be positive, got %v", d)
		}
		p.timeout = d
		return nil
	}
}

// New creates a panel from the given judges. Judges reporting unavailable
// are filtered out; construction fails with ErrInsufficientJudges when
// fewer than the minimum remain.
func New(judges []judge.Interface, opts ...Option) (*Panel, error) {
	p := &Panel{
		minJudges: defaultMinJudges,
		timeout:   defaultJudgeTimeout,
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	for _, j := range judges {
		if j != nil && j.Available() {
			p.judges = append(p.judges, j)
		}
	}
	if len(p.judges) < p.minJudges {
		return nil, fmt.Errorf("%w: %d available, %d required",
			ErrInsufficientJudges, len(p.judges), p.minJudges)
	}

	return p, nil
}

// Judges returns the names of the panel's judges.
func (p *Panel) Judges() []string {
	names := make([]string, 0, len(p.judges))
	for _, j := range p.judges {
		names = append(names, j.Name())
	}
	return names
}

// JudgeDocument evaluates provider outputs with every judge in parallel
// and computes the consensus. A failing judge is logged and dropped from
// this evaluation; ErrAllJudgesFailed is returned only when no judge
// succeeds.
func (p *Panel) JudgeDocument(ctx context.Context, documentName string, outputs events.Outputs) (*Result, error) {
	log := clog.FromContext(ctx)

	log.With("document", documentName).
		With("judges", p.Judges()).
		With("providers", outputs.Providers()).
		Info("Starting panel evaluation")

	results := p.runJudges(ctx, documentName, outputs)
	if len(results) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrAllJudgesFailed, documentName)
	}

	consensus := consensusScores(results, outputs)
	winner, votes := consensusWinner(results)
	agreement := computeAgreement(results, consensus)

	var totalCost float64
	var totalThinking int64
	judgesUsed := make([]string, 0, len(results))
	for _, result := range results {
		totalCost += result.Cost
		totalThinking += result.ThinkingTokens
		judgesUsed = append(judgesUsed, result.JudgeName)
	}

	result := &Result{
		DocumentName:        documentName,
		Timestamp:           time.Now(),
		JudgesUsed:          judgesUsed,
		IndividualResults:   results,
		ConsensusMethod:     ConsensusMethod,
		ConsensusScores:     consensus,
		ConsensusWinner:     winner,
		WinnerVotes:         votes,
		Agreement:           agreement,
		TotalCost:           totalCost,
		TotalThinkingTokens: totalThinking,
	}

	p.logSummary(ctx, result)

	return result, nil
}

// runJudges fans the document out to all judges and collects the surviving
// results in completion order.
func (p *Panel) runJudges(ctx context.Context, documentName string, outputs events.Outputs) []judge.Result {
	log := clog.FromContext(ctx)

	var mu sync.Mutex
	var results []judge.Result

	g := new(errgroup.Group)
	for _, j := range p.judges {
		g.Go(func() error {
			jctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()

			result, err := j.JudgeProviders(jctx, documentName, outputs)
			if err != nil {
				// Judge failures are isolated; the panel proceeds
				// with whoever succeeded.
				log.With("judge", j.Name()).
					With("document", documentName).
					Errorf("Judge failed: %v", err)
				return nil
			}

			mu.Lock()
			results = append(results, *result)
			mu.Unlock()

			log.With("judge", result.JudgeName).
				With("winner", result.Winner).
				Info("Judge completed")
			return nil
		})
	}
	// Errors are handled per judge; the goroutines always return nil.
	_ = g.Wait()

	return results
}

// logSummary logs the headline numbers of a panel evaluation.
func (p *Panel) logSummary(ctx context.Context, result *Result) {
	log := clog.FromContext(ctx)

	log.With("document", result.DocumentName).
		With("winner", result.ConsensusWinner).
		With("winner_votes", result.WinnerVotes).
		With("winner_consensus_pct", result.Agreement.WinnerConsensusPercentage).
		With("avg_correlation", result.Agreement.AverageCorrelation).
		With("confidence", string(result.Agreement.ConfidenceLevel)).
		With("total_cost_usd", result.TotalCost).
		With("total_thinking_tokens", result.TotalThinkingTokens).
		Info("Panel evaluation complete")

	for _, jr := range result.IndividualResults {
		log.With("judge", jr.JudgeName).
			With("cost_usd", jr.Cost).
			With("thinking_tokens", jr.ThinkingTokens).
			Debug("Judge cost")
	}
}
