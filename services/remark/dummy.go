package remarksvc

import (
	"context"
	"fmt"

	"github.com/officialmikal/cbc-and-jss-automation/core"
)

// dummyService returns deterministic canned remarks; used in development
// and tests where no API key is configured.
type dummyService struct{}

var _ core.RemarkService = (*dummyService)(nil)

func NewDummyService() *dummyService {
	return &dummyService{}
}

func (svc *dummyService) GenerateRemark(_ context.Context, subjectName string, score int, level string) string {
	switch {
	case score >= 80:
		return fmt.Sprintf("Shows outstanding mastery of %s; keep up the excellent work.", subjectName)
	case score >= 60:
		return fmt.Sprintf("Meets expectations in %s with consistent effort shown this term.", subjectName)
	case score >= 40:
		return fmt.Sprintf("Approaching expectations in %s; more practice will lift performance.", subjectName)
	default:
		return fmt.Sprintf("Needs close support in %s to build the required competencies.", subjectName)
	}
}
