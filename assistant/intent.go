package assistant

import (
	"path/filepath"
	"strings"

	"github.com/clefworks/scorebase/core"
)

// Intent is one of the fixed operations a request can resolve to.
type Intent int

const (
	// IntentHelp asks what the assistant can do.
	IntentHelp Intent = iota + 1
	// IntentSearch looks a piece up in the library.
	IntentSearch
	// IntentUpload adds a sheet file to the library.
	IntentUpload
	// IntentList shows the library contents.
	IntentList
)

func (i Intent) String() string {
	switch i {
	case IntentHelp:
		return "help"
	case IntentSearch:
		return "search"
	case IntentUpload:
		return "upload"
	case IntentList:
		return "list"
	default:
		return "unknown"
	}
}

// Request is a classified user input.
type Request struct {
	Intent Intent

	// Query is set for IntentSearch.
	Query core.SearchQuery

	// Path is set for IntentUpload when the input named a file.
	Path string
}

// uploadExtensions are file suffixes that mark a token as an upload target.
var uploadExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// Classify maps a user input line to a request. Unrecognized input
// defaults to a search, since looking a piece up is the dominant ask.
func Classify(input string) Request {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Request{Intent: IntentHelp}
	}

	lower := strings.ToLower(trimmed)
	words := strings.Fields(lower)
	first := words[0]

	switch first {
	case "help", "?", "commands":
		return Request{Intent: IntentHelp}
	case "list", "library", "catalog":
		return Request{Intent: IntentList}
	case "upload", "add", "import":
		return Request{Intent: IntentUpload, Path: uploadTarget(trimmed)}
	case "search", "find", "play":
		rest := strings.TrimSpace(trimmed[len(first):])
		if rest == "" {
			return Request{Intent: IntentHelp}
		}
		return Request{Intent: IntentSearch, Query: core.SearchQuery{Text: rest}}
	}

	// A lone file path is an upload without the verb.
	if len(words) == 1 && uploadExtensions[filepath.Ext(first)] {
		return Request{Intent: IntentUpload, Path: trimmed}
	}

	return Request{Intent: IntentSearch, Query: core.SearchQuery{Text: trimmed}}
}

// uploadTarget extracts the file path from an upload request, preserving
// the original casing of the path.
func uploadTarget(input string) string {
	fields := strings.Fields(input)
	for _, field := range fields[1:] {
		if uploadExtensions[strings.ToLower(filepath.Ext(field))] {
			return field
		}
	}
	return ""
}
