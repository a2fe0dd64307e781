package dummydb

import (
	"sync"

	"github.com/officialmikal/cbc-and-jss-automation/core/school"
)

type (
	DB struct {
		school *schoolTables
	}

	schoolTables struct {
		sync.RWMutex
		students      []school.Student
		subjects      []school.Subject
		assessments   []school.Assessment
		payments      []school.Payment
		feeStructures []school.FeeStructure
	}
)

func Open() (*DB, error) {
	return &DB{school: &schoolTables{}}, nil
}
