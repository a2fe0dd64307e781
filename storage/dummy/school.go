package dummydb

import (
	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

type schoolRepository struct {
	db *schoolTables
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func (repo *schoolRepository) LoadStudents() ([]school.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]school.Student{}, repo.db.students...), nil
}

func (repo *schoolRepository) SaveStudents(students []school.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.students = append([]school.Student{}, students...)
	return nil
}

func (repo *schoolRepository) LoadSubjects() ([]school.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]school.Subject{}, repo.db.subjects...), nil
}

func (repo *schoolRepository) SaveSubjects(subjects []school.Subject) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.subjects = append([]school.Subject{}, subjects...)
	return nil
}

func (repo *schoolRepository) LoadAssessments() ([]school.Assessment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]school.Assessment{}, repo.db.assessments...), nil
}

func (repo *schoolRepository) SaveAssessments(assessments []school.Assessment) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.assessments = append([]school.Assessment{}, assessments...)
	return nil
}

func (repo *schoolRepository) LoadPayments() ([]school.Payment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]school.Payment{}, repo.db.payments...), nil
}

func (repo *schoolRepository) SavePayments(payments []school.Payment) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.payments = append([]school.Payment{}, payments...)
	return nil
}

func (repo *schoolRepository) LoadFeeStructures() ([]school.FeeStructure, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append([]school.FeeStructure{}, repo.db.feeStructures...), nil
}

func (repo *schoolRepository) SaveFeeStructures(structures []school.FeeStructure) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.feeStructures = append([]school.FeeStructure{}, structures...)
	return nil
}
