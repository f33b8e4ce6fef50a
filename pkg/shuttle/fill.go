package shuttle

// fillState carries the most recently observed value of each metadata
// attribute during a single forward pass over one file. State never crosses
// file boundaries; start each file with a zero fillState.
type fillState struct {
	current MetaFields
}

// observe folds one line's metadata into the state and returns the metadata
// in effect at that line.
func (s *fillState) observe(kind LineKind, content string) MetaFields {
	s.current = s.current.merge(ExtractMeta(kind, content))
	return s.current
}

// FillForward propagates the most recent non-missing value of each metadata
// attribute down the sequence: the value at position i is the value at i if
// present, else the nearest preceding value for the same attribute, else
// missing. Single O(n) pass, independent per attribute, and idempotent.
// The input slice is not modified.
func FillForward(seq []MetaFields) []MetaFields {
	out := make([]MetaFields, len(seq))
	var last MetaFields
	for i, f := range seq {
		last = last.merge(f)
		out[i] = last
	}
	return out
}
