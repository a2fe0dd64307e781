package school

import "sort"

// RankedStudent decorates a Student with their mean score and 1-based rank
// within their grade cohort. Rank is 0 for students with no assessments;
// they are never ranked, regardless of cohort size.
type RankedStudent struct {
	Student
	MeanScore float64 `json:"mean_score"`
	Rank      int     `json:"rank"`
}

func (rs RankedStudent) Ranked() bool { return rs.Rank > 0 }

// Rank computes per-grade leaderboards: each student's mean score over all
// of their recorded assessments, sorted descending within the grade cohort.
//
// All historical assessments feed the mean, across terms and years; use
// RankForTerm to scope to a single term. Ties keep their pre-sort relative
// order (stable sort), so equal means rank in insertion order.
func Rank(students []Student, assessments []Assessment) []RankedStudent {
	sums := make(map[string]int, len(students))
	counts := make(map[string]int, len(students))
	for _, a := range assessments {
		sums[a.StudentID] += a.Score
		counts[a.StudentID]++
	}

	// partition by grade, preserving insertion order
	cohorts := make(map[string][]RankedStudent)
	gradeOrder := make([]string, 0)
	for _, st := range students {
		rs := RankedStudent{Student: st}
		if n := counts[st.ID]; n > 0 {
			rs.MeanScore = float64(sums[st.ID]) / float64(n)
		}
		if _, seen := cohorts[st.Grade]; !seen {
			gradeOrder = append(gradeOrder, st.Grade)
		}
		cohorts[st.Grade] = append(cohorts[st.Grade], rs)
	}

	ranked := make([]RankedStudent, 0, len(students))
	for _, grade := range gradeOrder {
		cohort := cohorts[grade]
		sort.SliceStable(cohort, func(i, j int) bool { return cohort[i].MeanScore > cohort[j].MeanScore })
		pos := 0
		for i := range cohort {
			if counts[cohort[i].ID] > 0 {
				pos++
				cohort[i].Rank = pos
			}
		}
		ranked = append(ranked, cohort...)
	}
	return ranked
}

// RankForTerm is the explicit opt-in scope: only assessments matching
// (term, year) feed the mean. Students without assessments in that term are
// unranked.
func RankForTerm(students []Student, assessments []Assessment, term, year int) []RankedStudent {
	scoped := make([]Assessment, 0, len(assessments))
	for _, a := range assessments {
		if a.Term == term && a.Year == year {
			scoped = append(scoped, a)
		}
	}
	return Rank(students, scoped)
}
