package assessment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

type PatientChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type Service struct {
	repo     Repository
	patients PatientChecker
	tx       db.Transactor
	now      func() time.Time
}

func NewService(repo Repository, patients PatientChecker, tx db.Transactor) *Service {
	return &Service{repo: repo, patients: patients, tx: tx, now: time.Now}
}

// Create stamps the assessment with today's UTC date; any date sent by the
// caller is discarded.
func (s *Service) Create(ctx context.Context, a *Assessment) error {
	a.Date = civil.DateOf(s.now().UTC())
	a.normalize()
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.checkPatient(ctx, a.PatientID); err != nil {
		return err
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Assessment, int, error) {
	if f.System != "" && !SystemChoices.Contains(f.System) {
		return nil, 0, validation.FieldError("system", fmt.Sprintf(validation.MsgInvalidChoice, f.System))
	}
	return s.repo.List(ctx, f, limit, offset)
}

// Update keeps id, date and created_at from the stored row.
func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Assessment) error) (*Assessment, error) {
	var out *Assessment
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		date, createdAt := a.Date, a.CreatedAt
		if err := apply(a); err != nil {
			return err
		}
		a.ID, a.Date, a.CreatedAt = id, date, createdAt

		a.normalize()
		if err := a.Validate(); err != nil {
			return err
		}
		if err := s.checkPatient(ctx, a.PatientID); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	return out, err
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// LatestPerSystem returns the newest assessment of each body system the
// patient has, in head-to-toe order.
func (s *Service) LatestPerSystem(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	items, err := s.repo.LatestPerSystem(ctx, patientID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return systemRank(items[i].System) < systemRank(items[j].System)
	})
	return items, nil
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
