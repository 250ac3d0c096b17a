package medication

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

var fkFields = map[string]string{"medication_patient_id_fkey": "patient_id"}

const medCols = `id, patient_id, name, dose, route, time, created_at`

func scanMedication(row pgx.Row) (*Medication, error) {
	var m Medication
	var tm pgtype.Time
	err := row.Scan(&m.ID, &m.PatientID, &m.Name, &m.Dose, &m.Route, &tm, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("medication")
		}
		return nil, err
	}
	t := db.TimeValue(tm)
	m.Time = &t
	return &m, nil
}

func (r *repoPG) Create(ctx context.Context, m *Medication) error {
	m.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO medication (id, patient_id, name, dose, route, time)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		m.ID, m.PatientID, m.Name, m.Dose, m.Route, db.TimeParam(*m.Time)).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert medication: %w", db.Translate(err, fkFields))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Medication, error) {
	q := `SELECT ` + medCols + ` FROM medication WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanMedication(r.conn(ctx).QueryRow(ctx, q, id))
}

func (r *repoPG) Update(ctx context.Context, m *Medication) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication SET patient_id=$2, name=$3, dose=$4, route=$5, time=$6
		WHERE id = $1`,
		m.ID, m.PatientID, m.Name, m.Dose, m.Route, db.TimeParam(*m.Time))
	if err != nil {
		return fmt.Errorf("update medication: %w", db.Translate(err, fkFields))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("medication")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM medication WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("medication")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Medication, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM medication`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count medications: %w", err)
	}

	query := `SELECT ` + medCols + ` FROM medication` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list medications: %w", err)
	}
	defer rows.Close()
	items := []*Medication{}
	for rows.Next() {
		m, err := scanMedication(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}
