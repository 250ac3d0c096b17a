package sbar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
)

// ExistenceChecker is satisfied by the patient and shift services.
type ExistenceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	patients ExistenceChecker
	shifts   ExistenceChecker
	tx       db.Transactor
}

func NewService(repo Repository, patients, shifts ExistenceChecker, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, shifts: shifts, tx: tx}
}

func (s *Service) Create(ctx context.Context, n *Note) error {
	n.normalize()
	if err := n.Validate(); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, n); err != nil {
		return err
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Note, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Note, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

// Update never changes created_at, which records when the note was written.
func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Note) error) (*Note, error) {
	var out *Note
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		createdAt := n.CreatedAt
		if err := apply(n); err != nil {
			return err
		}
		n.ID, n.CreatedAt = id, createdAt

		n.normalize()
		if err := n.Validate(); err != nil {
			return err
		}
		if err := s.checkReferences(ctx, n); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, n); err != nil {
			return err
		}
		out = n
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// LatestForPatient returns the newest note about the patient, or nil.
func (s *Service) LatestForPatient(ctx context.Context, patientID uuid.UUID) (*Note, error) {
	return s.repo.LatestForPatient(ctx, patientID)
}

func (s *Service) checkReferences(ctx context.Context, n *Note) error {
	ok, err := s.patients.Exists(ctx, n.PatientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return db.MissingReference("patient_id", "patient")
	}
	ok, err = s.shifts.Exists(ctx, n.ShiftID)
	if err != nil {
		return fmt.Errorf("check shift: %w", err)
	}
	if !ok {
		return db.MissingReference("shift_id", "shift")
	}
	return nil
}
