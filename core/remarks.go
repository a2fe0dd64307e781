package core

import "context"

// RemarkService produces a free-text teacher remark for a scored learning
// area. Implementations must always return a usable remark: failures of the
// underlying text-generation backend are absorbed and replaced with a canned
// fallback, never propagated to the caller.
type RemarkService interface {
	GenerateRemark(ctx context.Context, subjectName string, score int, level string) string
}
