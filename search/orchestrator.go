package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// Outcome classifies how a query was resolved.
type Outcome int

const (
	// OutcomeFound means confident local results satisfied the query.
	OutcomeFound Outcome = iota + 1
	// OutcomeEscalated means cloud results were merged with local ones.
	OutcomeEscalated
	// OutcomeSuggestUpload means neither stage produced results; the
	// caller should invite the user to upload the sheet.
	OutcomeSuggestUpload
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeEscalated:
		return "escalated"
	case OutcomeSuggestUpload:
		return "suggest-upload"
	default:
		return "unknown"
	}
}

// Decision is the result of resolving a query through both stages.
type Decision struct {
	Outcome Outcome

	// Results holds the ranked candidates. Empty for OutcomeSuggestUpload.
	Results []*core.Candidate

	// Reason identifies the stage that forced an upload suggestion:
	// "no-results", "cloud-unavailable", "cloud-timeout", or "cloud-auth".
	// Empty for the other outcomes.
	Reason string
}

// OrchestratorConfig tunes the resolution thresholds.
type OrchestratorConfig struct {
	// ConfidenceFloor is the minimum relevance score a local candidate
	// needs to count as confident. Default 0.5.
	ConfidenceFloor float32

	// MinResults is how many confident local candidates satisfy a query
	// without escalation. Default 1.
	MinResults int

	// CloudTimeout bounds the cloud stage. Default 10s.
	CloudTimeout time.Duration
}

// DefaultOrchestratorConfig returns the default thresholds.
func DefaultOrchestratorConfig() OrchestratorConfig {
	return OrchestratorConfig{
		ConfidenceFloor: 0.5,
		MinResults:      1,
		CloudTimeout:    10 * time.Second,
	}
}

// Orchestrator resolves queries through the local index first and the cloud
// datastore second. Cloud failures never reach the caller; they downgrade
// the decision to an upload suggestion.
type Orchestrator struct {
	index  *Index
	cloud  ai.CloudSearcher
	config OrchestratorConfig
	logger *slog.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator) error

// WithConfig sets the resolution thresholds.
// Zero-valued fields keep their defaults.
func WithConfig(config OrchestratorConfig) OrchestratorOption {
	return func(o *Orchestrator) error {
		if config.ConfidenceFloor > 0 {
			o.config.ConfidenceFloor = config.ConfidenceFloor
		}
		if config.MinResults > 0 {
			o.config.MinResults = config.MinResults
		}
		if config.CloudTimeout > 0 {
			o.config.CloudTimeout = config.CloudTimeout
		}
		return nil
	}
}

// WithOrchestratorLogger sets a custom logger.
// Default is slog.Default().
func WithOrchestratorLogger(logger *slog.Logger) OrchestratorOption {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new orchestrator over the local index and cloud
// searcher.
func NewOrchestrator(index *Index, cloud ai.CloudSearcher, opts ...OrchestratorOption) (*Orchestrator, error) {
	if index == nil {
		return nil, ErrIndexRequired
	}
	if cloud == nil {
		return nil, ErrCloudSearcherRequired
	}

	o := &Orchestrator{
		index:  index,
		cloud:  cloud,
		config: DefaultOrchestratorConfig(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Resolve runs the two-stage resolution for the query.
// Returns up to limit ranked candidates inside the decision.
func (o *Orchestrator) Resolve(ctx context.Context, query core.SearchQuery, limit int) (*Decision, error) {
	return o.ResolveWithMonitor(ctx, query, limit, nil)
}

// ResolveWithMonitor runs the two-stage resolution with monitoring.
// The monitor receives callbacks at each stage of the process.
func (o *Orchestrator) ResolveWithMonitor(ctx context.Context, query core.SearchQuery, limit int, monitor Monitor) (*Decision, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	// 1. Local stage.
	local, err := o.index.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	monitor.AfterLocalSearch(local)

	if o.satisfied(local) {
		o.logger.Debug("query satisfied locally", "results", len(local))
		decision := &Decision{Outcome: OutcomeFound, Results: local}
		monitor.Finish(decision)
		return decision, nil
	}

	// 2. Cloud stage, bounded by its own deadline.
	monitor.CloudInvoked(query)
	cloudCtx, cancel := context.WithTimeout(ctx, o.config.CloudTimeout)
	defer cancel()

	hits, err := o.cloud.Search(cloudCtx, query, limit)
	if err != nil {
		reason := cloudFailureReason(err)
		o.logger.Warn("cloud search failed", "reason", reason, "err", err)
		monitor.CloudFailed(reason, err)

		decision := &Decision{Outcome: OutcomeSuggestUpload, Reason: reason}
		monitor.Finish(decision)
		return decision, nil
	}
	monitor.AfterCloudSearch(hits)

	if len(hits) == 0 {
		o.logger.Debug("both stages exhausted", "local", len(local))
		decision := &Decision{Outcome: OutcomeSuggestUpload, Reason: "no-results"}
		monitor.Finish(decision)
		return decision, nil
	}

	cloud := make([]*core.Candidate, 0, len(hits))
	for _, hit := range hits {
		cloud = append(cloud, candidateFromCloud(hit))
	}

	decision := &Decision{
		Outcome: OutcomeEscalated,
		Results: Merge(limit, local, cloud),
	}
	o.logger.Debug("query escalated", "local", len(local), "cloud", len(cloud), "merged", len(decision.Results))
	monitor.Finish(decision)
	return decision, nil
}

// satisfied reports whether the local results alone answer the query.
func (o *Orchestrator) satisfied(local []*core.Candidate) bool {
	confident := 0
	for _, c := range local {
		if c.Score >= o.config.ConfidenceFloor {
			confident++
		}
	}
	return confident >= o.config.MinResults
}

// cloudFailureReason maps a cloud boundary error to the stage reason
// reported in the decision.
func cloudFailureReason(err error) string {
	switch {
	case errors.Is(err, ai.ErrTimeout) || errors.Is(err, context.DeadlineExceeded):
		return "cloud-timeout"
	case errors.Is(err, ai.ErrAuth):
		return "cloud-auth"
	default:
		return "cloud-unavailable"
	}
}
