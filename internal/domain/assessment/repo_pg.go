package assessment

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

var fkFields = map[string]string{"physical_assessment_patient_id_fkey": "patient_id"}

const assessmentCols = `id, patient_id, system, findings, date, created_at`

func scanAssessment(row pgx.Row) (*Assessment, error) {
	var a Assessment
	var date pgtype.Date
	err := row.Scan(&a.ID, &a.PatientID, &a.System, &a.Findings, &date, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("assessment")
		}
		return nil, err
	}
	a.Date = db.DateValue(date)
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO physical_assessment (id, patient_id, system, findings, date)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING created_at`,
		a.ID, a.PatientID, a.System, a.Findings, db.DateParam(a.Date)).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", db.Translate(err, fkFields))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	q := `SELECT ` + assessmentCols + ` FROM physical_assessment WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanAssessment(r.conn(ctx).QueryRow(ctx, q, id))
}

// Update never writes date.
func (r *repoPG) Update(ctx context.Context, a *Assessment) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE physical_assessment SET patient_id=$2, system=$3, findings=$4
		WHERE id = $1`,
		a.ID, a.PatientID, a.System, a.Findings)
	if err != nil {
		return fmt.Errorf("update assessment: %w", db.Translate(err, fkFields))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("assessment")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM physical_assessment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("assessment")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Assessment, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}
	if f.System != "" {
		where += fmt.Sprintf(` AND system = $%d`, idx)
		args = append(args, f.System)
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM physical_assessment`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count assessments: %w", err)
	}

	query := `SELECT ` + assessmentCols + ` FROM physical_assessment` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}
	return r.query(ctx, query, total, args...)
}

func (r *repoPG) LatestPerSystem(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	items, _, err := r.query(ctx, `
		SELECT DISTINCT ON (system) `+assessmentCols+`
		FROM physical_assessment
		WHERE patient_id = $1
		ORDER BY system, date DESC, created_at DESC, id DESC`, 0, patientID)
	return items, err
}

func (r *repoPG) query(ctx context.Context, query string, total int, args ...interface{}) ([]*Assessment, int, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()
	items := []*Assessment{}
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}
