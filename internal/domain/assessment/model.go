package assessment

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

const (
	SystemGeneralAppearance = "general_appearance"
	SystemHeadNeck          = "head_neck"
	SystemNeurological      = "neurological"
	SystemRespiratory       = "respiratory"
	SystemCardiovascular    = "cardiovascular"
	SystemGastrointestinal  = "gastrointestinal"
	SystemUrinary           = "urinary"
	SystemMusculoskeletal   = "musculoskeletal"
	SystemIntegumentary     = "integumentary"
)

// SystemChoices lists the body systems in head-to-toe order.
var SystemChoices = validation.ChoiceSet{
	{Code: SystemGeneralAppearance, Label: "General appearance"},
	{Code: SystemHeadNeck, Label: "Head and neck"},
	{Code: SystemNeurological, Label: "Neurological"},
	{Code: SystemRespiratory, Label: "Respiratory"},
	{Code: SystemCardiovascular, Label: "Cardiovascular"},
	{Code: SystemGastrointestinal, Label: "Gastrointestinal"},
	{Code: SystemUrinary, Label: "Urinary"},
	{Code: SystemMusculoskeletal, Label: "Musculoskeletal"},
	{Code: SystemIntegumentary, Label: "Integumentary"},
}

// Assessment maps to the physical_assessment table. Date is the day the
// finding was recorded and is set by the server.
type Assessment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PatientID uuid.UUID  `db:"patient_id" json:"patient_id"`
	System    string     `db:"system" json:"system"`
	Findings  string     `db:"findings" json:"findings"`
	Date      civil.Date `db:"date" json:"date"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type Filter struct {
	PatientID *uuid.UUID
	System    string
}

func (a *Assessment) normalize() {
	a.System = strings.TrimSpace(a.System)
	a.Findings = strings.TrimSpace(a.Findings)
}

func (a *Assessment) Validate() error {
	v := validation.New()
	v.Check(a.PatientID != uuid.Nil, "patient_id", validation.MsgRequired)
	v.Choice("system", a.System, SystemChoices)
	v.Required("findings", a.Findings)
	return v.Err()
}

// systemRank orders assessments by SystemChoices.
func systemRank(code string) int {
	for i, c := range SystemChoices {
		if c.Code == code {
			return i
		}
	}
	return len(SystemChoices)
}
