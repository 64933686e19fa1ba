package repair

// Skip records one show or season left untouched, with the reason label
// from the error taxonomy.
type Skip struct {
	Path   string
	Reason string
}

// Summary reports what one run inspected and changed.
type Summary struct {
	Shows     int
	Seasons   int
	Patched   int
	Unchanged int
	Skipped   []Skip
}

// SkipsByReason aggregates skip counts per reason for summary output.
func (s *Summary) SkipsByReason() map[string]int {
	if len(s.Skipped) == 0 {
		return nil
	}
	counts := make(map[string]int, len(s.Skipped))
	for _, skip := range s.Skipped {
		counts[skip.Reason]++
	}
	return counts
}
