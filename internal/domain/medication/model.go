package medication

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

const (
	maxName  = 100
	maxDose  = 50
	maxRoute = 50
)

// Medication maps to the medication table. Time is the scheduled time of
// day.
type Medication struct {
	ID        uuid.UUID   `db:"id" json:"id"`
	PatientID uuid.UUID   `db:"patient_id" json:"patient_id"`
	Name      string      `db:"name" json:"name"`
	Dose      string      `db:"dose" json:"dose"`
	Route     string      `db:"route" json:"route"`
	Time      *civil.Time `db:"time" json:"time"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}

type Filter struct {
	PatientID *uuid.UUID
}

func (m *Medication) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Dose = strings.TrimSpace(m.Dose)
	m.Route = strings.TrimSpace(m.Route)
}

func (m *Medication) Validate() error {
	v := validation.New()
	v.Check(m.PatientID != uuid.Nil, "patient_id", validation.MsgRequired)
	if v.Required("name", m.Name) {
		v.MaxLength("name", m.Name, maxName)
	}
	if v.Required("dose", m.Dose) {
		v.MaxLength("dose", m.Dose, maxDose)
	}
	if v.Required("route", m.Route) {
		v.MaxLength("route", m.Route, maxRoute)
	}
	v.Check(m.Time != nil, "time", validation.MsgRequired)
	return v.Err()
}
