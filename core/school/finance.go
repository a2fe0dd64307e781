package school

import "sort"

// FindFeeStructure returns the structure applying to (grade, term).
// At most one structure exists per key; see Service.UpsertFeeStructure.
func FindFeeStructure(structures []FeeStructure, grade string, term int) (FeeStructure, bool) {
	for _, fs := range structures {
		if fs.Grade == grade && fs.Term == term {
			return fs, true
		}
	}
	return FeeStructure{}, false
}

// FeeTotal returns the total fees owed for (grade, term), falling back to
// defaultTotal when no structure matches.
func FeeTotal(structures []FeeStructure, grade string, term int, defaultTotal int) int {
	if fs, ok := FindFeeStructure(structures, grade, term); ok {
		return fs.Total()
	}
	return defaultTotal
}

// PaidToDate sums payments made by a student within a term.
func PaidToDate(payments []Payment, studentID string, term int) int {
	var paid int
	for _, p := range payments {
		if p.StudentID == studentID && p.Term == term {
			paid += p.Amount
		}
	}
	return paid
}

// Balance computes a student's outstanding fees for their current term.
// The result is signed: a negative balance means overpayment and must not
// be clamped, since Defaulters relies on the strict balance > 0 filter.
func Balance(st Student, structures []FeeStructure, payments []Payment, defaultTotal int) int {
	total := FeeTotal(structures, st.Grade, st.Term, defaultTotal)
	return total - PaidToDate(payments, st.ID, st.Term)
}

// Defaulter pairs a student with their positive outstanding balance.
type Defaulter struct {
	Student
	Balance int `json:"balance"`
}

// Defaulters derives the fee-defaulter list: every student with a strictly
// positive balance, sorted by balance descending. It is a pure view,
// recomputed on every call.
func Defaulters(students []Student, structures []FeeStructure, payments []Payment, defaultTotal int) []Defaulter {
	defaulters := make([]Defaulter, 0)
	for _, st := range students {
		if balance := Balance(st, structures, payments, defaultTotal); balance > 0 {
			defaulters = append(defaulters, Defaulter{Student: st, Balance: balance})
		}
	}
	sort.SliceStable(defaulters, func(i, j int) bool { return defaulters[i].Balance > defaulters[j].Balance })
	return defaulters
}
