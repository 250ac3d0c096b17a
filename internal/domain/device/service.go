package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

// PatientChecker is the part of the patient service devices depend on.
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

func (s *Service) Create(ctx context.Context, d *Device) error {
	d.normalize()
	if err := d.Validate(); err != nil {
		return err
	}
	if err := s.checkPatient(ctx, d.PatientID); err != nil {
		return err
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Device, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Device, int, error) {
	if f.Type != "" && !TypeChoices.Contains(f.Type) {
		return nil, 0, validation.FieldError("type", fmt.Sprintf(validation.MsgInvalidChoice, f.Type))
	}
	return s.repo.List(ctx, f, limit, offset)
}

// Update applies a change to the stored device and revalidates the merged
// record, so a type change alone can still trip the insertion site rule.
func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Device) error) (*Device, error) {
	var out *Device
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		createdAt := d.CreatedAt
		if err := apply(d); err != nil {
			return err
		}
		d.ID, d.CreatedAt = id, createdAt

		d.normalize()
		if err := d.Validate(); err != nil {
			return err
		}
		if err := s.checkPatient(ctx, d.PatientID); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, d); err != nil {
			return err
		}
		out = d
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// InPlaceForPatient returns every device of the patient that has not been
// removed, oldest first.
func (s *Service) InPlaceForPatient(ctx context.Context, patientID uuid.UUID) ([]*Device, error) {
	inPlace := true
	items, _, err := s.repo.List(ctx, Filter{PatientID: &patientID, InPlace: &inPlace}, 0, 0)
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
