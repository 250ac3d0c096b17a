package sbar

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, n *Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*Note, error)
	Update(ctx context.Context, n *Note) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f Filter, limit, offset int) ([]*Note, int, error)
	// LatestForPatient returns nil when the patient has no notes.
	LatestForPatient(ctx context.Context, patientID uuid.UUID) (*Note, error)
}
