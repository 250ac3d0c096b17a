package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

type Service struct {
	repo Repository
	tx   db.Transactor
	now  func() time.Time
}

func NewService(repo Repository, tx db.Transactor) *Service {
	return &Service{repo: repo, tx: tx, now: time.Now}
}

func (s *Service) Create(ctx context.Context, p *Patient) error {
	p.normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	if f.Status != "" && !StatusChoices.Contains(f.Status) {
		return nil, 0, validation.FieldError("status", fmt.Sprintf(validation.MsgInvalidChoice, f.Status))
	}
	return s.repo.List(ctx, f, limit, offset)
}

// Update loads the stored patient, lets apply change it, and saves the result
// after full validation. id and created_at cannot be changed by apply.
func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Patient) error) (*Patient, error) {
	var out *Patient
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		createdAt := p.CreatedAt
		if err := apply(p); err != nil {
			return err
		}
		p.ID, p.CreatedAt = id, createdAt

		p.normalize()
		if err := p.Validate(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Exists reports whether a patient with id is stored.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// Discharge closes the stay: discharge_date is set (now when at is nil) and
// the patient becomes inactive.
func (s *Service) Discharge(ctx context.Context, id uuid.UUID, at *time.Time) (*Patient, error) {
	var out *Patient
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !p.IsActive {
			return validation.FieldError("is_active", "patient has already been discharged.")
		}

		when := s.now().UTC()
		if at != nil {
			when = *at
		}
		if when.Before(p.AdmissionDate) {
			return validation.FieldError("discharge_date", "discharge date cannot be before the admission date.")
		}

		p.DischargeDate = &when
		p.IsActive = false
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}
