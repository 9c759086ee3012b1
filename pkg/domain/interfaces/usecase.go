package interfaces

import (
	"context"

	"github.com/resumediff/resumediff/pkg/domain/model"
)

// CompareUseCase defines the resume vs job description comparison
type CompareUseCase interface {
	// Compare evaluates how well a resume matches a job description
	Compare(ctx context.Context, input *model.CompareInput) (*model.CompareResult, error)
}
