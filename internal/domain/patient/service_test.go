package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

// -- Mock Repository --

type mockRepo struct {
	records map[uuid.UUID]*Patient
	order   []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Patient)}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	cp := *p
	m.records[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.records[id]
	if !ok {
		return nil, db.NotFound("patient")
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.records[p.ID]; !ok {
		return db.NotFound("patient")
	}
	cp := *p
	m.records[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return db.NotFound("patient")
	}
	delete(m.records, id)
	return nil
}

func (m *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.records[id]
	return ok, nil
}

func (m *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Patient, int, error) {
	var matched []*Patient
	for _, id := range m.order {
		p, ok := m.records[id]
		if !ok {
			continue
		}
		if f.IsActive != nil && p.IsActive != *f.IsActive {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.BedNumber != "" && p.BedNumber != f.BedNumber {
			continue
		}
		if f.Query != "" {
			q := strings.ToLower(f.Query)
			if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.BedNumber), q) {
				continue
			}
		}
		matched = append(matched, p)
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

func newTestService() *Service {
	return NewService(newMockRepo(), db.Passthrough{})
}

var admitted = time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

func validPatient() *Patient {
	p := New()
	p.Name = "Maria"
	p.BedNumber = "12A"
	p.AdmissionDate = admitted
	return p
}

func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !ve.Has(field) {
		t.Errorf("expected error on %s, got %v", field, ve.Fields)
	}
}

// -- Tests --

func TestCreatePatient_Success(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected ID to be set")
	}
	if !p.IsActive || p.Status != StatusStable {
		t.Errorf("expected defaults is_active=true status=stable, got %v %s", p.IsActive, p.Status)
	}
}

func TestCreatePatient_MissingRequired(t *testing.T) {
	svc := newTestService()
	err := svc.Create(context.Background(), New())

	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"name", "bed_number", "admission_date"} {
		if !ve.Has(f) {
			t.Errorf("expected error on %s", f)
		}
	}
}

func TestCreatePatient_TooLong(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	p.BedNumber = "12345678901"
	requireFieldError(t, svc.Create(context.Background(), p), "bed_number")

	p = validPatient()
	p.Name = strings.Repeat("a", 101)
	requireFieldError(t, svc.Create(context.Background(), p), "name")

	p = validPatient()
	long := strings.Repeat("m", 101)
	p.MotherName = &long
	requireFieldError(t, svc.Create(context.Background(), p), "mother_name")
}

func TestCreatePatient_InvalidStatus(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	p.Status = "dying"
	requireFieldError(t, svc.Create(context.Background(), p), "status")
}

func TestCreatePatient_ValidStatuses(t *testing.T) {
	for _, s := range []string{StatusCritical, StatusStable, StatusRecovering} {
		svc := newTestService()
		p := validPatient()
		p.Status = s
		if err := svc.Create(context.Background(), p); err != nil {
			t.Errorf("status %q: unexpected error: %v", s, err)
		}
	}
}

func TestCreatePatient_TrimsOptionalText(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	blank := "   "
	p.MotherName = &blank
	p.Name = "  Maria  "
	if err := svc.Create(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.MotherName != nil {
		t.Errorf("expected blank mother_name to become nil, got %q", *p.MotherName)
	}
	if p.Name != "Maria" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
}

func TestGetPatient_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Get(context.Background(), uuid.New())
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdatePatient_RevalidatesAndKeepsServerFields(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	svc.Create(context.Background(), p)
	created := p.CreatedAt

	_, err := svc.Update(context.Background(), p.ID, func(p *Patient) error {
		p.Status = "unknown"
		return nil
	})
	requireFieldError(t, err, "status")

	stored, _ := svc.Get(context.Background(), p.ID)
	if stored.Status != StatusStable {
		t.Errorf("failed update must not persist, got status %s", stored.Status)
	}

	updated, err := svc.Update(context.Background(), p.ID, func(p *Patient) error {
		p.ID = uuid.New()
		p.CreatedAt = time.Time{}
		p.Status = StatusCritical
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.ID != p.ID || !updated.CreatedAt.Equal(created) {
		t.Error("expected id and created_at to be preserved")
	}
	if updated.Status != StatusCritical {
		t.Errorf("expected critical, got %s", updated.Status)
	}
}

func TestUpdatePatient_NotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Update(context.Background(), uuid.New(), func(*Patient) error { return nil })
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	svc.Create(context.Background(), p)

	if err := svc.Delete(context.Background(), p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), p.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if ok, _ := svc.Exists(context.Background(), p.ID); ok {
		t.Error("expected patient to be gone")
	}
}

func TestListPatients_FiltersAndOrder(t *testing.T) {
	svc := newTestService()
	names := []string{"Maria", "João", "Mariana"}
	for i, name := range names {
		p := validPatient()
		p.Name = name
		p.BedNumber = string(rune('A' + i))
		if name == "João" {
			p.Status = StatusCritical
		}
		svc.Create(context.Background(), p)
	}

	items, total, err := svc.List(context.Background(), Filter{}, 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 || items[0].Name != "Maria" || items[2].Name != "Mariana" {
		t.Errorf("expected insertion order, got %d items", total)
	}

	items, total, _ = svc.List(context.Background(), Filter{Query: "mari"}, 20, 0)
	if total != 2 {
		t.Errorf("expected 2 matches for q=mari, got %d", total)
	}

	items, _, _ = svc.List(context.Background(), Filter{Status: StatusCritical}, 20, 0)
	if len(items) != 1 || items[0].Name != "João" {
		t.Errorf("unexpected status filter result %v", items)
	}

	_, _, err = svc.List(context.Background(), Filter{Status: "bogus"}, 20, 0)
	requireFieldError(t, err, "status")
}

func TestDischarge(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	svc.Create(context.Background(), p)

	fixed := admitted.Add(72 * time.Hour)
	svc.now = func() time.Time { return fixed }

	got, err := svc.Discharge(context.Background(), p.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsActive {
		t.Error("expected patient to be inactive")
	}
	if got.DischargeDate == nil || !got.DischargeDate.Equal(fixed) {
		t.Errorf("expected discharge date %v, got %v", fixed, got.DischargeDate)
	}

	_, err = svc.Discharge(context.Background(), p.ID, nil)
	requireFieldError(t, err, "is_active")
}

func TestDischarge_BeforeAdmission(t *testing.T) {
	svc := newTestService()
	p := validPatient()
	svc.Create(context.Background(), p)

	early := admitted.Add(-time.Hour)
	_, err := svc.Discharge(context.Background(), p.ID, &early)
	requireFieldError(t, err, "discharge_date")

	stored, _ := svc.Get(context.Background(), p.ID)
	if !stored.IsActive {
		t.Error("rejected discharge must leave the patient active")
	}
}
