package search

import (
	"github.com/clefworks/scorebase/ai"
	"github.com/clefworks/scorebase/core"
)

// Monitor provides hooks to observe the resolution process.
// Implement this interface to track the stages a query passes through.
type Monitor interface {
	Start(query core.SearchQuery)
	AfterLocalSearch(candidates []*core.Candidate)
	CloudInvoked(query core.SearchQuery)
	AfterCloudSearch(hits []ai.CloudCandidate)
	CloudFailed(reason string, err error)
	Finish(decision *Decision)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ core.SearchQuery)                {}
func (n *noopMonitor) AfterLocalSearch(_ []*core.Candidate)    {}
func (n *noopMonitor) CloudInvoked(_ core.SearchQuery)         {}
func (n *noopMonitor) AfterCloudSearch(_ []ai.CloudCandidate)  {}
func (n *noopMonitor) CloudFailed(_ string, _ error)           {}
func (n *noopMonitor) Finish(_ *Decision)                      {}
