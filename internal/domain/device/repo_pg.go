package device

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

var fkFields = map[string]string{"device_patient_id_fkey": "patient_id"}

const deviceCols = `id, patient_id, type, insertion_date, removal_date, insertion_site, notes, created_at`

func scanDevice(row pgx.Row) (*Device, error) {
	var d Device
	err := row.Scan(&d.ID, &d.PatientID, &d.Type, &d.InsertionDate, &d.RemovalDate,
		&d.InsertionSite, &d.Notes, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.NotFound("device")
		}
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *Device) error {
	d.ID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO device (id, patient_id, type, insertion_date, removal_date, insertion_site, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at`,
		d.ID, d.PatientID, d.Type, d.InsertionDate, d.RemovalDate, d.InsertionSite, d.Notes).Scan(&d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert device: %w", db.Translate(err, fkFields))
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Device, error) {
	q := `SELECT ` + deviceCols + ` FROM device WHERE id = $1`
	if db.ConnFromContext(ctx) != nil {
		q += ` FOR UPDATE`
	}
	return scanDevice(r.conn(ctx).QueryRow(ctx, q, id))
}

func (r *repoPG) Update(ctx context.Context, d *Device) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE device SET patient_id=$2, type=$3, insertion_date=$4, removal_date=$5,
			insertion_site=$6, notes=$7
		WHERE id = $1`,
		d.ID, d.PatientID, d.Type, d.InsertionDate, d.RemovalDate, d.InsertionSite, d.Notes)
	if err != nil {
		return fmt.Errorf("update device: %w", db.Translate(err, fkFields))
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("device")
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM device WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete device: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.NotFound("device")
	}
	return nil
}

func (r *repoPG) List(ctx context.Context, f Filter, limit, offset int) ([]*Device, int, error) {
	where := ` WHERE 1=1`
	var args []interface{}
	idx := 1

	if f.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, idx)
		args = append(args, *f.PatientID)
		idx++
	}
	if f.Type != "" {
		where += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, f.Type)
		idx++
	}
	if f.InPlace != nil {
		if *f.InPlace {
			where += ` AND removal_date IS NULL`
		} else {
			where += ` AND removal_date IS NOT NULL`
		}
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM device`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count devices: %w", err)
	}

	query := `SELECT ` + deviceCols + ` FROM device` + where + ` ORDER BY created_at, id`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, idx, idx+1)
		args = append(args, limit, offset)
	}

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()
	items := []*Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}
