package search

// QueryState holds the current search string.
type QueryState struct {
	value string
}

// Set stores q and reports whether it differs from the previous value.
func (s *QueryState) Set(q string) bool {
	if s.value == q {
		return false
	}
	s.value = q
	return true
}

func (s *QueryState) Value() string {
	return s.value
}
