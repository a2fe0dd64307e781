// Package jsonstore persists school collections as JSON documents on disk,
// one file per collection. Saves go through a temp file and rename so a
// crash mid-write never leaves a half-written collection behind.
package jsonstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

const (
	studentsFile      = "students.json"
	subjectsFile      = "subjects.json"
	assessmentsFile   = "assessments.json"
	paymentsFile      = "payments.json"
	feeStructuresFile = "fee_structures.json"
)

type Store struct {
	mu  sync.Mutex
	dir string
}

var _ school.Repository = (*Store)(nil) // interface compliance check

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating data directory %s", dir)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) load(name string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // absent collection is an empty collection
		}
		return errors.Wrapf(err, "reading %s", path)
	}
	if err = json.Unmarshal(data, dest); err != nil {
		return errors.Wrapf(err, "decoding %s", path)
	}
	return nil
}

func (s *Store) save(name string, src interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", tmp)
	}
	if err = os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "replacing %s", path)
	}
	return nil
}

func (s *Store) LoadStudents() ([]school.Student, error) {
	students := make([]school.Student, 0)
	err := s.load(studentsFile, &students)
	return students, err
}

func (s *Store) SaveStudents(students []school.Student) error {
	return s.save(studentsFile, students)
}

func (s *Store) LoadSubjects() ([]school.Subject, error) {
	subjects := make([]school.Subject, 0)
	err := s.load(subjectsFile, &subjects)
	return subjects, err
}

func (s *Store) SaveSubjects(subjects []school.Subject) error {
	return s.save(subjectsFile, subjects)
}

func (s *Store) LoadAssessments() ([]school.Assessment, error) {
	assessments := make([]school.Assessment, 0)
	err := s.load(assessmentsFile, &assessments)
	return assessments, err
}

func (s *Store) SaveAssessments(assessments []school.Assessment) error {
	return s.save(assessmentsFile, assessments)
}

func (s *Store) LoadPayments() ([]school.Payment, error) {
	payments := make([]school.Payment, 0)
	err := s.load(paymentsFile, &payments)
	return payments, err
}

func (s *Store) SavePayments(payments []school.Payment) error {
	return s.save(paymentsFile, payments)
}

func (s *Store) LoadFeeStructures() ([]school.FeeStructure, error) {
	structures := make([]school.FeeStructure, 0)
	err := s.load(feeStructuresFile, &structures)
	return structures, err
}

func (s *Store) SaveFeeStructures(structures []school.FeeStructure) error {
	return s.save(feeStructuresFile, structures)
}
