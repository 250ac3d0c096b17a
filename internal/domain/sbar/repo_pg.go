package sbar

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

var fkFields = map[string]string{
	"sbar_patient_id_fkey": "patient_id",
	"sbar_shift_id_fkey":   "shift_id",
}

const noteCols = `id, patient_id, shift_id, situation, background, assessment, recommendation, created_at`

func scanNote(row pgx.Row) (*Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.PatientID, &n.ShiftID, &n.Situation, &n.Background,
		&n.Assessment, &n.Recommendation, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("sbar")
		}
		return nil, err
	}
	return &n, nil
}

func (r *repoPG) Create(ctx context.Context, n *Note) error {
	n.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO sbar (id, patient_id, shift_id, situation, background, assessment, recommendation)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		n.ID, n.PatientID, n.ShiftID, n.Situation, n.Background, n.Assessment, n.Recommendation).Scan(&n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sbar: %w", db.Translate(err, fkFields))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Note, error) {
	q := `SELECT ` + noteCols + ` FROM sbar WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanNote(r.conn(ctx).QueryRow(ctx, q, id))
}

func (r *repoPG) Update(ctx context.Context, n *Note) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE sbar SET patient_id=$2, shift_id=$3, situation=$4, background=$5,
			assessment=$6, recommendation=$7
		WHERE id = $1`,
		n.ID, n.PatientID, n.ShiftID, n.Situation, n.Background, n.Assessment, n.Recommendation)
	if err != nil {
		return fmt.Errorf("update sbar: %w", db.Translate(err, fkFields))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("sbar")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM sbar WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sbar: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("sbar")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Note, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}
	if f.ShiftID != nil {
		where += fmt.Sprintf(` AND shift_id = $%d`, idx)
		args = append(args, *f.ShiftID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM sbar`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sbars: %w", err)
	}

	query := `SELECT ` + noteCols + ` FROM sbar` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sbars: %w", err)
	}
	defer rows.Close()
	items := []*Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, rows.Err()
}

func (r *repoPG) LatestForPatient(ctx context.Context, patientID uuid.UUID) (*Note, error) {
	n, err := scanNote(r.conn(ctx).QueryRow(ctx, `
		SELECT `+noteCols+` FROM sbar
		WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, patientID))
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	return n, err
}
