package patient

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

const (
	StatusCritical   = "critical"
	StatusStable     = "stable"
	StatusRecovering = "recovering"
)

var StatusChoices = validation.ChoiceSet{
	{Code: StatusCritical, Label: "Critical"},
	{Code: StatusStable, Label: "Stable"},
	{Code: StatusRecovering, Label: "Recovering"},
}

const (
	maxName       = 100
	maxMotherName = 100
	maxBedNumber  = 10
)

// Patient maps to the patient table.
type Patient struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	Name          string      `db:"name" json:"name"`
	BirthDate     *civil.Date `db:"birth_date" json:"birth_date"`
	MotherName    *string     `db:"mother_name" json:"mother_name"`
	BedNumber     string      `db:"bed_number" json:"bed_number"`
	AdmissionDate time.Time   `db:"admission_date" json:"admission_date"`
	DischargeDate *time.Time  `db:"discharge_date" json:"discharge_date"`
	IsActive      bool        `db:"is_active" json:"is_active"`
	Diagnosis     *string     `db:"diagnosis" json:"diagnosis"`
	Status        string      `db:"status" json:"status"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
}

// New returns a Patient carrying the column defaults, ready to be decoded
// into.
func New() *Patient {
	return &Patient{IsActive: true, Status: StatusStable}
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	IsActive  *bool
	Status    string
	BedNumber string
	// Query matches name or bed number, case-insensitively.
	Query string
}

func (p *Patient) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.BedNumber = strings.TrimSpace(p.BedNumber)
	p.MotherName = trimOptional(p.MotherName)
	p.Diagnosis = trimOptional(p.Diagnosis)
}

// Validate checks every writable field.
func (p *Patient) Validate() error {
	v := validation.New()
	if v.Required("name", p.Name) {
		v.MaxLength("name", p.Name, maxName)
	}
	v.OptionalMaxLength("mother_name", p.MotherName, maxMotherName)
	if v.Required("bed_number", p.BedNumber) {
		v.MaxLength("bed_number", p.BedNumber, maxBedNumber)
	}
	v.Check(!p.AdmissionDate.IsZero(), "admission_date", validation.MsgRequired)
	v.Choice("status", p.Status, StatusChoices)
	return v.Err()
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
