package device

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/validation"
)

const (
	TypeCVC     = "CVC"
	TypeSNE     = "SNE"
	TypeSOG     = "SOG"
	TypeVM      = "VM"
	TypeDrenos  = "Drenos"
	TypeSVD     = "SVD"
	TypeShilley = "Shilley"
	TypeTOT     = "TOT"
	TypeTQT     = "TQT"
	TypePAI     = "PAI"
)

var TypeChoices = validation.ChoiceSet{
	{Code: TypeCVC, Label: "Central venous catheter"},
	{Code: TypeSNE, Label: "Nasoenteral tube"},
	{Code: TypeSOG, Label: "Orogastric tube"},
	{Code: TypeVM, Label: "Mechanical ventilation"},
	{Code: TypeDrenos, Label: "Drains"},
	{Code: TypeSVD, Label: "Indwelling urinary catheter"},
	{Code: TypeShilley, Label: "Shilley catheter"},
	{Code: TypeTOT, Label: "Orotracheal tube"},
	{Code: TypeTQT, Label: "Tracheostomy"},
	{Code: TypePAI, Label: "Invasive arterial pressure"},
}

// NoSiteTypes are inserted through a natural orifice, so an insertion site
// is meaningless for them.
var NoSiteTypes = []string{TypeSNE, TypeSOG, TypeTOT, TypeTQT, TypeSVD}

// MsgSiteNotAllowed is reported on insertion_site for NoSiteTypes.
const MsgSiteNotAllowed = "this field must not be filled for the selected type."

const maxInsertionSite = 100

// Device maps to the device table.
type Device struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	Type          string     `db:"type" json:"type"`
	InsertionDate time.Time  `db:"insertion_date" json:"insertion_date"`
	RemovalDate   *time.Time `db:"removal_date" json:"removal_date"`
	InsertionSite *string    `db:"insertion_site" json:"insertion_site"`
	Notes         *string    `db:"notes" json:"notes"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// InPlace reports whether the device has not been removed.
func (d *Device) InPlace() bool {
	return d.RemovalDate == nil
}

// Filter narrows List. Zero values do not filter.
type Filter struct {
	PatientID *uuid.UUID
	Type      string
	// InPlace true keeps devices without a removal date, false only removed
	// ones.
	InPlace *bool
}

// SiteAllowed reports whether deviceType may carry an insertion site.
func SiteAllowed(deviceType string) bool {
	for _, t := range NoSiteTypes {
		if t == deviceType {
			return false
		}
	}
	return true
}

func (d *Device) normalize() {
	d.Type = strings.TrimSpace(d.Type)
	d.InsertionSite = trimOptional(d.InsertionSite)
	d.Notes = trimOptional(d.Notes)
}

// Validate checks the fields one by one, then the rule tying insertion_site
// to type. The cross-field rule only runs when the fields themselves are
// valid.
func (d *Device) Validate() error {
	v := validation.New()
	v.Check(d.PatientID != uuid.Nil, "patient_id", validation.MsgRequired)
	v.Choice("type", d.Type, TypeChoices)
	v.Check(!d.InsertionDate.IsZero(), "insertion_date", validation.MsgRequired)
	v.OptionalMaxLength("insertion_site", d.InsertionSite, maxInsertionSite)
	if err := v.Err(); err != nil {
		return err
	}

	if d.InsertionSite != nil && !SiteAllowed(d.Type) {
		return validation.FieldError("insertion_site", MsgSiteNotAllowed)
	}
	return nil
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
