package medication

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

type mockRepo struct {
	records map[uuid.UUID]*Medication
	order   []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Medication)}
}

func (r *mockRepo) Create(_ context.Context, m *Medication) error {
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	cp := *m
	r.records[m.ID] = &cp
	r.order = append(r.order, m.ID)
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Medication, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, db.NotFound("medication")
	}
	cp := *m
	return &cp, nil
}

func (r *mockRepo) Update(_ context.Context, m *Medication) error {
	if _, ok := r.records[m.ID]; !ok {
		return db.NotFound("medication")
	}
	cp := *m
	r.records[m.ID] = &cp
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return db.NotFound("medication")
	}
	delete(r.records, id)
	return nil
}

func (r *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Medication, int, error) {
	matched := []*Medication{}
	for _, id := range r.order {
		m, ok := r.records[id]
		if !ok || (f.PatientID != nil && m.PatientID != *f.PatientID) {
			continue
		}
		matched = append(matched, m)
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return matched[offset:end], total, nil
}

type stubPatients map[uuid.UUID]bool

func (s stubPatients) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s[id], nil
}

var patientID = uuid.New()

func newTestService() *Service {
	return NewService(newMockRepo(), stubPatients{patientID: true}, db.Passthrough{})
}

func validMedication() *Medication {
	at := civil.Time{Hour: 8}
	return &Medication{PatientID: patientID, Name: "Dipyrone", Dose: "1 g", Route: "IV", Time: &at}
}

func TestCreateMedication_Success(t *testing.T) {
	svc := newTestService()
	m := validMedication()
	if err := svc.Create(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
}

func TestCreateMedication_RequiredFields(t *testing.T) {
	svc := newTestService()
	err := svc.Create(context.Background(), &Medication{Name: "  "})

	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"patient_id", "name", "dose", "route", "time"} {
		if !ve.Has(f) {
			t.Errorf("expected error on %s", f)
		}
	}
}

func TestCreateMedication_MaxLengths(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(m *Medication)
	}{
		{"name", func(m *Medication) { m.Name = strings.Repeat("x", maxName+1) }},
		{"dose", func(m *Medication) { m.Dose = strings.Repeat("x", maxDose+1) }},
		{"route", func(m *Medication) { m.Route = strings.Repeat("x", maxRoute+1) }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			m := validMedication()
			tt.mutate(m)
			err := newTestService().Create(context.Background(), m)
			var ve *validation.Error
			if !errors.As(err, &ve) || !ve.Has(tt.field) {
				t.Errorf("expected error on %s, got %v", tt.field, err)
			}
		})
	}
}

func TestCreateMedication_UnknownPatient(t *testing.T) {
	svc := newTestService()
	m := validMedication()
	m.PatientID = uuid.New()

	var ie *db.IntegrityError
	if err := svc.Create(context.Background(), m); !errors.As(err, &ie) || ie.Field != "patient_id" {
		t.Errorf("expected integrity error on patient_id, got %v", err)
	}
}

func TestUpdateMedication(t *testing.T) {
	svc := newTestService()
	m := validMedication()
	svc.Create(context.Background(), m)

	updated, err := svc.Update(context.Background(), m.ID, func(m *Medication) error {
		m.Dose = "500 mg"
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Dose != "500 mg" || updated.Name != "Dipyrone" {
		t.Errorf("unexpected medication %+v", updated)
	}

	_, err = svc.Update(context.Background(), m.ID, func(m *Medication) error {
		m.Time = nil
		return nil
	})
	var ve *validation.Error
	if !errors.As(err, &ve) || !ve.Has("time") {
		t.Errorf("expected time to be required, got %v", err)
	}
}

func TestForPatient(t *testing.T) {
	svc := newTestService()
	for _, name := range []string{"Dipyrone", "Omeprazole"} {
		m := validMedication()
		m.Name = name
		svc.Create(context.Background(), m)
	}

	items, err := svc.ForPatient(context.Background(), patientID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Name != "Dipyrone" {
		t.Errorf("expected both medications in insertion order, got %v", items)
	}
	items, _ = svc.ForPatient(context.Background(), uuid.New())
	if len(items) != 0 {
		t.Errorf("expected no medications, got %d", len(items))
	}
}

func TestDeleteMedication_NotFound(t *testing.T) {
	svc := newTestService()
	if err := svc.Delete(context.Background(), uuid.New()); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
