package sbar

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
)

// Note maps to the sbar table: one Situation, Background, Assessment,
// Recommendation handoff note about a patient written during a shift.
type Note struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	ShiftID        uuid.UUID `db:"shift_id" json:"shift_id"`
	Situation      string    `db:"situation" json:"situation"`
	Background     string    `db:"background" json:"background"`
	Assessment     string    `db:"assessment" json:"assessment"`
	Recommendation string    `db:"recommendation" json:"recommendation"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

type Filter struct {
	PatientID *uuid.UUID
	ShiftID   *uuid.UUID
}

func (n *Note) normalize() {
	n.Situation = strings.TrimSpace(n.Situation)
	n.Background = strings.TrimSpace(n.Background)
	n.Assessment = strings.TrimSpace(n.Assessment)
	n.Recommendation = strings.TrimSpace(n.Recommendation)
}

func (n *Note) Validate() error {
	v := validation.New()
	v.Check(n.PatientID != uuid.Nil, "patient_id", validation.MsgRequired)
	v.Check(n.ShiftID != uuid.Nil, "shift_id", validation.MsgRequired)
	v.Required("situation", n.Situation)
	v.Required("background", n.Background)
	v.Required("assessment", n.Assessment)
	v.Required("recommendation", n.Recommendation)
	return v.Err()
}
