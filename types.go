package main

// MatchRecord holds one matching line located within a searched file.
type MatchRecord struct {
	Path  string // display path, relative to the search root
	Line  int    // 1-based line number
	Text  string // trimmed line content
	Count int    // occurrences of the query on this line
}

// FileOutcome is the result of scanning a single candidate file.
// A non-nil Err means the file could not be read; Records is empty in that case.
type FileOutcome struct {
	Path    string
	Records []MatchRecord
	Err     error
}

// SearchError is a recoverable per-path failure surfaced in the final summary.
type SearchError struct {
	Path   string
	Reason string
}

// SearchSummary holds the aggregated counters, retained match records and
// error list for one run. It is folded incrementally while results arrive
// and finalized once before reporting.
type SearchSummary struct {
	FilesSearched    int
	FilesWithMatches int
	TotalMatches     int
	Records          []MatchRecord
	Errors           []SearchError
}
