package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sbarcore/handoff/pkg/civil"
)

// DateParam converts d to a DATE parameter. The zero date is NULL.
func DateParam(d civil.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.In(time.UTC), Valid: true}
}

// OptionalDateParam converts a nullable date.
func OptionalDateParam(d *civil.Date) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return DateParam(*d)
}

// DateValue converts a scanned DATE column. NULL becomes the zero date.
func DateValue(v pgtype.Date) civil.Date {
	if !v.Valid {
		return civil.Date{}
	}
	return civil.DateOf(v.Time)
}

// OptionalDateValue converts a nullable DATE column.
func OptionalDateValue(v pgtype.Date) *civil.Date {
	if !v.Valid {
		return nil
	}
	d := civil.DateOf(v.Time)
	return &d
}

// TimeParam converts t to a TIME parameter.
func TimeParam(t civil.Time) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}

// TimeValue converts a scanned TIME column.
func TimeValue(v pgtype.Time) civil.Time {
	return civil.TimeFromMicroseconds(v.Microseconds)
}
