package shift

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

const (
	maxShiftPeriod   = 20
	maxNurseInCharge = 100

	// DefaultNurse is stored when no nurse in charge is given.
	DefaultNurse = "Unknown"
)

// Shift maps to the shift table.
type Shift struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	Date          civil.Date `db:"date" json:"date"`
	ShiftPeriod   string     `db:"shift_period" json:"shift_period"`
	NurseInCharge string     `db:"nurse_in_charge" json:"nurse_in_charge"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

func New() *Shift {
	return &Shift{NurseInCharge: DefaultNurse}
}

type Filter struct {
	Date        *civil.Date
	ShiftPeriod string
}

func (s *Shift) normalize() {
	s.ShiftPeriod = strings.TrimSpace(s.ShiftPeriod)
	s.NurseInCharge = strings.TrimSpace(s.NurseInCharge)
	if s.NurseInCharge == "" {
		s.NurseInCharge = DefaultNurse
	}
}

func (s *Shift) Validate() error {
	v := validation.New()
	v.Check(!s.Date.IsZero(), "date", validation.MsgRequired)
	if v.Required("shift_period", s.ShiftPeriod) {
		v.MaxLength("shift_period", s.ShiftPeriod, maxShiftPeriod)
	}
	v.MaxLength("nurse_in_charge", s.NurseInCharge, maxNurseInCharge)
	return v.Err()
}
