package medication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
)

type PatientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientChecker
	tx       db.Transactor
}

func NewService(repo Repository, patients PatientChecker, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, tx: tx}
}

func (s *Service) Create(ctx context.Context, m *Medication) error {
	m.normalize()
	if err := m.Validate(); err != nil {
		return err
	}
	if err := s.checkPatient(ctx, m.PatientID); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Medication, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Medication) error) (*Medication, error) {
	var out *Medication
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		m, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		createdAt := m.CreatedAt
		if err := apply(m); err != nil {
			return err
		}
		m.ID, m.CreatedAt = id, createdAt

		m.normalize()
		if err := m.Validate(); err != nil {
			return err
		}
		if err := s.checkPatient(ctx, m.PatientID); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, m); err != nil {
			return err
		}
		out = m
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ForPatient lists every medication of the patient in insertion order.
func (s *Service) ForPatient(ctx context.Context, patientID uuid.UUID) ([]*Medication, error) {
	items, _, err := s.repo.List(ctx, Filter{PatientID: &patientID}, 0, 0)
	return items, err
}

func (s *Service) checkPatient(ctx context.Context, id uuid.UUID) error {
	ok, err := s.patients.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return db.MissingReference("patient_id", "patient")
	}
	return nil
}
