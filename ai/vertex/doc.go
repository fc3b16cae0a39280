// Package vertex implements the cloud search service against a managed
// discovery-engine datastore over its REST API.
//
// The searcher authenticates with a bearer API key and maps transport and
// HTTP failures onto the ai package's error taxonomy so callers can decide
// between escalation and graceful degradation without inspecting HTTP
// details.
package vertex
