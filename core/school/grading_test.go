package school

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  Level
	}{
		{name: "exceeding lower bound", score: 80, want: LevelExceeding},
		{name: "perfect score", score: 100, want: LevelExceeding},
		{name: "just below exceeding", score: 79, want: LevelMeeting},
		{name: "meeting lower bound", score: 60, want: LevelMeeting},
		{name: "just below meeting", score: 59, want: LevelApproaching},
		{name: "approaching lower bound", score: 40, want: LevelApproaching},
		{name: "just below approaching", score: 39, want: LevelBelow},
		{name: "zero", score: 0, want: LevelBelow},
		{name: "negative score still classifies", score: -5, want: LevelBelow},
		{name: "score above 100 still classifies", score: 150, want: LevelExceeding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.score); got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestLevelAbbrev(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{level: LevelExceeding, want: "EE"},
		{level: LevelMeeting, want: "ME"},
		{level: LevelApproaching, want: "AE"},
		{level: LevelBelow, want: "BE"},
		{level: Level("lol"), want: ""},
	}
	for _, tt := range tests {
		if got := tt.level.Abbrev(); got != tt.want {
			t.Errorf("Abbrev(%v) = %s, want %s", tt.level, got, tt.want)
		}
	}
}
