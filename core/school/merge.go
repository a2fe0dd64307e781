package school

// MergeAssessments reconciles a batch of incoming assessments against the
// existing collection. Each incoming record replaces the record sharing its
// composite key in place (preserving the collection's ordering), or is
// appended if no match exists.
//
// Incoming records are processed sequentially, so duplicate keys within one
// batch resolve to the last occurrence: last write wins, both within the
// batch and against the existing collection. The merged result never holds
// two records with the same key.
func MergeAssessments(existing, incoming []Assessment) []Assessment {
	merged := make([]Assessment, len(existing))
	copy(merged, existing)

	for _, in := range incoming {
		key := in.Key()
		replaced := false
		for i := range merged {
			if merged[i].Key() == key {
				merged[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, in)
		}
	}
	return merged
}
