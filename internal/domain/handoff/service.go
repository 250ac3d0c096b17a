// Package handoff assembles the bedside handoff view of one patient from the
// record services.
package handoff

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/domain/assessment"
	"github.com/sbarcore/handoff/internal/domain/device"
	"github.com/sbarcore/handoff/internal/domain/medication"
	"github.com/sbarcore/handoff/internal/domain/patient"
	"github.com/sbarcore/handoff/internal/domain/sbar"
)

type PatientReader interface {
	Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type DeviceReader interface {
	InPlaceForPatient(ctx context.Context, patientID uuid.UUID) ([]*device.Device, error)
}

type MedicationReader interface {
	ForPatient(ctx context.Context, patientID uuid.UUID) ([]*medication.Medication, error)
}

type AssessmentReader interface {
	LatestPerSystem(ctx context.Context, patientID uuid.UUID) ([]*assessment.Assessment, error)
}

type NoteReader interface {
	LatestForPatient(ctx context.Context, patientID uuid.UUID) (*sbar.Note, error)
}

// Summary is what the incoming nurse needs at the bedside.
type Summary struct {
	Patient     *patient.Patient         `json:"patient"`
	Devices     []*device.Device         `json:"devices"`
	Medications []*medication.Medication `json:"medications"`
	Assessments []*assessment.Assessment `json:"assessments"`
	LatestSBAR  *sbar.Note               `json:"latest_sbar"`
}

type Service struct {
	patients    PatientReader
	devices     DeviceReader
	medications MedicationReader
	assessments AssessmentReader
	notes       NoteReader
}

func NewService(p PatientReader, d DeviceReader, m MedicationReader, a AssessmentReader, n NoteReader) *Service {
	return &Service{patients: p, devices: d, medications: m, assessments: a, notes: n}
}

// Summary returns the patient with devices still in place, medications, the
// latest assessment per body system and the latest SBAR note.
func (s *Service) Summary(ctx context.Context, patientID uuid.UUID) (*Summary, error) {
	p, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := &Summary{Patient: p}

	if out.Devices, err = s.devices.InPlaceForPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("load devices: %w", err)
	}
	if out.Medications, err = s.medications.ForPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("load medications: %w", err)
	}
	if out.Assessments, err = s.assessments.LatestPerSystem(ctx, patientID); err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}
	if out.LatestSBAR, err = s.notes.LatestForPatient(ctx, patientID); err != nil {
		return nil, fmt.Errorf("load sbar: %w", err)
	}

	// Render empty sections as [] rather than null.
	if out.Devices == nil {
		out.Devices = []*device.Device{}
	}
	if out.Medications == nil {
		out.Medications = []*medication.Medication{}
	}
	if out.Assessments == nil {
		out.Assessments = []*assessment.Assessment{}
	}
	return out, nil
}
