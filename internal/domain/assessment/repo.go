package assessment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Assessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Update(ctx context.Context, a *Assessment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Assessment, int, error)
	// LatestPerSystem returns, for each body system assessed on the patient,
	// the most recent assessment.
	LatestPerSystem(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error)
}
