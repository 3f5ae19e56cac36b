package main

import "sort"

// addOutcome folds one per-file result into the summary. A successfully
// scanned file always bumps FilesSearched, matched or not; unreadable files
// go to the error list instead.
func (s *SearchSummary) addOutcome(outcome FileOutcome) {
	if outcome.Err != nil {
		s.Errors = append(s.Errors, SearchError{Path: outcome.Path, Reason: outcome.Err.Error()})
		return
	}

	s.FilesSearched++
	if len(outcome.Records) == 0 {
		return
	}

	s.FilesWithMatches++
	for _, record := range outcome.Records {
		s.TotalMatches += record.Count
	}
	s.Records = append(s.Records, outcome.Records...)
}

// addTraversalErrors appends directory-level failures collected by the walker.
func (s *SearchSummary) addTraversalErrors(errs []SearchError) {
	s.Errors = append(s.Errors, errs...)
}

// finalize sorts the retained records and errors so the rendered report is
// stable regardless of worker scheduling. Counters are unaffected: the fold
// is order-independent for them.
func (s *SearchSummary) finalize() {
	sort.Slice(s.Records, func(i, j int) bool {
		if s.Records[i].Path != s.Records[j].Path {
			return s.Records[i].Path < s.Records[j].Path
		}
		return s.Records[i].Line < s.Records[j].Line
	})
	sort.Slice(s.Errors, func(i, j int) bool {
		if s.Errors[i].Path != s.Errors[j].Path {
			return s.Errors[i].Path < s.Errors[j].Path
		}
		return s.Errors[i].Reason < s.Errors[j].Reason
	})
}
