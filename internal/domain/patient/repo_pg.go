package patient

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

const patientCols = `id, name, birth_date, mother_name, bed_number, admission_date, discharge_date,
	is_active, diagnosis, status, created_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var birth pgtype.Date
	err := row.Scan(&p.ID, &p.Name, &birth, &p.MotherName, &p.BedNumber, &p.AdmissionDate, &p.DischargeDate,
		&p.IsActive, &p.Diagnosis, &p.Status, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("patient")
		}
		return nil, err
	}
	p.BirthDate = db.OptionalDateValue(birth)
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO patient (id, name, birth_date, mother_name, bed_number, admission_date, discharge_date,
			is_active, diagnosis, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at`,
		p.ID, p.Name, db.OptionalDateParam(p.BirthDate), p.MotherName, p.BedNumber, p.AdmissionDate, p.DischargeDate,
		p.IsActive, p.Diagnosis, p.Status).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert patient: %w", db.Translate(err, nil))
	}
	return nil
}

// GetByID locks the row when called inside a transaction.
func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	q := `SELECT ` + patientCols + ` FROM patient WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanPatient(r.conn(ctx).QueryRow(ctx, q, id))
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE patient SET name=$2, birth_date=$3, mother_name=$4, bed_number=$5, admission_date=$6,
			discharge_date=$7, is_active=$8, diagnosis=$9, status=$10
		WHERE id = $1`,
		p.ID, p.Name, db.OptionalDateParam(p.BirthDate), p.MotherName, p.BedNumber, p.AdmissionDate,
		p.DischargeDate, p.IsActive, p.Diagnosis, p.Status)
	if err != nil {
		return fmt.Errorf("update patient: %w", db.Translate(err, nil))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("patient")
	}
	return nil
}

// Delete removes the patient; devices, medications, assessments and SBAR
// notes go with it through ON DELETE CASCADE.
func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM patient WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("patient")
	}
	return nil
}

func (r *repoPG) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patient WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.IsActive != nil {
		where += fmt.Sprintf(` AND is_active = $%d`, idx)
		args = append(args, *f.IsActive)
		idx++
	}
	if f.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, f.Status)
		idx++
	}
	if f.BedNumber != "" {
		where += fmt.Sprintf(` AND bed_number = $%d`, idx)
		args = append(args, f.BedNumber)
		idx++
	}
	if f.Query != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR bed_number ILIKE $%d)`, idx, idx)
		args = append(args, "%"+likeEscaper.Replace(f.Query)+"%")
		idx++
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM patient`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	query := `SELECT ` + patientCols + ` FROM patient` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	items := []*Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}
