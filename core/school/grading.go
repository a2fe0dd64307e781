package school

// Classify maps a raw score to its CBC performance band.
//
// Classify is total: callers are expected to clamp scores to [0, 100] but
// out-of-range values still classify (negatives fall to Below Expectations,
// values above 100 to Exceeding), so malformed bulk-import rows never fail
// here.
func Classify(score int) Level {
	switch {
	case score >= 80:
		return LevelExceeding
	case score >= 60:
		return LevelMeeting
	case score >= 40:
		return LevelApproaching
	}
	return LevelBelow
}
