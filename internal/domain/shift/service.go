package shift

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

type Service struct {
	repo Repository
	tx   db.Transactor
}

func NewService(repo Repository, tx db.Transactor) *Service {
	return &Service{repo: repo, tx: tx}
}

func (s *Service) Create(ctx context.Context, sh *Shift) error {
	sh.normalize()
	if err := sh.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, sh)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Shift, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, limit, offset int) ([]*Shift, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, apply func(*Shift) error) (*Shift, error) {
	var out *Shift
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		sh, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		createdAt := sh.CreatedAt
		if err := apply(sh); err != nil {
			return err
		}
		sh.ID, sh.CreatedAt = id, createdAt

		sh.normalize()
		if err := sh.Validate(); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, sh); err != nil {
			return err
		}
		out = sh
		return nil
	})
	return out, err
}

// Delete removes the shift together with its SBAR notes.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// RowError carries the field errors of one roster row. Row is the
// spreadsheet row number, header included.
type RowError struct {
	Row    int                 `json:"row"`
	Fields map[string][]string `json:"fields"`
}

// RosterError is returned when at least one roster row is invalid. Nothing
// is stored in that case.
type RosterError struct {
	Rows []RowError
}

func (e *RosterError) Error() string {
	return fmt.Sprintf("roster rejected: %d invalid row(s)", len(e.Rows))
}

// ImportRoster validates every row and, only when all of them pass, creates
// the shifts in one transaction.
func (s *Service) ImportRoster(ctx context.Context, rows []RosterRow) ([]*Shift, error) {
	if len(rows) == 0 {
		return nil, validation.FieldError("file", "the roster has no rows.")
	}

	shifts := make([]*Shift, 0, len(rows))
	var rejected []RowError
	for _, row := range rows {
		sh, err := row.shift()
		if err != nil {
			rejected = append(rejected, RowError{Row: row.Row, Fields: err.Fields})
			continue
		}
		shifts = append(shifts, sh)
	}
	if len(rejected) > 0 {
		return nil, &RosterError{Rows: rejected}
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, sh := range shifts {
			if err := s.repo.Create(ctx, sh); err != nil {
				return fmt.Errorf("create shift: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// shift converts a roster row into a validated Shift.
func (r RosterRow) shift() (*Shift, *validation.Error) {
	sh := New()
	sh.ShiftPeriod = r.ShiftPeriod
	sh.NurseInCharge = r.NurseInCharge

	v := validation.New()
	if r.Date != "" {
		d, err := civil.ParseDate(r.Date)
		if err != nil {
			v.Add("date", "date must be in YYYY-MM-DD format.")
		}
		sh.Date = d
	}
	sh.normalize()
	if err := sh.Validate(); err != nil {
		for field, msgs := range err.(*validation.Error).Fields {
			if !v.Has(field) {
				for _, msg := range msgs {
					v.Add(field, msg)
				}
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err.(*validation.Error)
	}
	return sh, nil
}
