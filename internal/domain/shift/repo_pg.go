package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sbarcore/handoff/internal/platform/db"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) db.Querier {
	return db.Conn(ctx, r.pool)
}

const shiftCols = `id, date, shift_period, nurse_in_charge, created_at`

func scanShift(row pgx.Row) (*Shift, error) {
	var s Shift
	var date pgtype.Date
	if err := row.Scan(&s.ID, &date, &s.ShiftPeriod, &s.NurseInCharge, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("shift")
		}
		return nil, err
	}
	s.Date = db.DateValue(date)
	return &s, nil
}

func (r *repoPG) Create(ctx context.Context, s *Shift) error {
	s.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO shift (id, date, shift_period, nurse_in_charge)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at`,
		s.ID, db.DateParam(s.Date), s.ShiftPeriod, s.NurseInCharge).Scan(&s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert shift: %w", db.Translate(err, nil))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Shift, error) {
	q := `SELECT ` + shiftCols + ` FROM shift WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanShift(r.conn(ctx).QueryRow(ctx, q, id))
}

func (r *repoPG) Update(ctx context.Context, s *Shift) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE shift SET date=$2, shift_period=$3, nurse_in_charge=$4
		WHERE id = $1`,
		s.ID, db.DateParam(s.Date), s.ShiftPeriod, s.NurseInCharge)
	if err != nil {
		return fmt.Errorf("update shift: %w", db.Translate(err, nil))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("shift")
	}
	return nil
}

// Delete removes the shift and, through ON DELETE CASCADE, its SBAR notes.
func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM shift WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("shift")
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shift WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Shift, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.Date != nil {
		where += fmt.Sprintf(` AND date = $%d`, idx)
		args = append(args, db.DateParam(*f.Date))
		idx++
	}
	if f.ShiftPeriod != "" {
		where += fmt.Sprintf(` AND shift_period = $%d`, idx)
		args = append(args, f.ShiftPeriod)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM shift`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count shifts: %w", err)
	}

	query := `SELECT ` + shiftCols + ` FROM shift` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	items := []*Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}
