package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/validation"
	"github.com/sbarcore/handoff/pkg/civil"
)

type mockRepo struct {
	records map[uuid.UUID]*Shift
	order   []uuid.UUID
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[uuid.UUID]*Shift)}
}

func (r *mockRepo) Create(_ context.Context, s *Shift) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	cp := *s
	r.records[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Shift, error) {
	s, ok := r.records[id]
	if !ok {
		return nil, db.NotFound("shift")
	}
	cp := *s
	return &cp, nil
}

func (r *mockRepo) Update(_ context.Context, s *Shift) error {
	if _, ok := r.records[s.ID]; !ok {
		return db.NotFound("shift")
	}
	cp := *s
	r.records[s.ID] = &cp
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.records[id]; !ok {
		return db.NotFound("shift")
	}
	delete(r.records, id)
	return nil
}

func (r *mockRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.records[id]
	return ok, nil
}

func (r *mockRepo) List(_ context.Context, f Filter, limit, offset int) ([]*Shift, int, error) {
	matched := []*Shift{}
	for _, id := range r.order {
		s, ok := r.records[id]
		if !ok {
			continue
		}
		if f.Date != nil && s.Date != *f.Date {
			continue
		}
		if f.ShiftPeriod != "" && s.ShiftPeriod != f.ShiftPeriod {
			continue
		}
		matched = append(matched, s)
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

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, db.Passthrough{}), repo
}

var jan21 = civil.Date{Year: 2024, Month: time.January, Day: 21}

func TestCreateShift_DefaultNurse(t *testing.T) {
	svc, _ := newTestService()
	s := New()
	s.Date = jan21
	s.ShiftPeriod = "morning"

	require.NoError(t, svc.Create(context.Background(), s))
	assert.Equal(t, DefaultNurse, s.NurseInCharge)
}

func TestCreateShift_BlankNurseBecomesDefault(t *testing.T) {
	svc, _ := newTestService()
	s := &Shift{Date: jan21, ShiftPeriod: "night", NurseInCharge: "   "}

	require.NoError(t, svc.Create(context.Background(), s))
	assert.Equal(t, DefaultNurse, s.NurseInCharge)
}

func TestCreateShift_Validation(t *testing.T) {
	svc, _ := newTestService()
	err := svc.Create(context.Background(), &Shift{ShiftPeriod: "a very long shift period"})

	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("date"))
	assert.True(t, ve.Has("shift_period"))
}

func TestUpdateShift(t *testing.T) {
	svc, _ := newTestService()
	s := &Shift{Date: jan21, ShiftPeriod: "morning", NurseInCharge: "Ana"}
	require.NoError(t, svc.Create(context.Background(), s))

	updated, err := svc.Update(context.Background(), s.ID, func(s *Shift) error {
		s.ShiftPeriod = "afternoon"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "afternoon", updated.ShiftPeriod)
	assert.Equal(t, "Ana", updated.NurseInCharge)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)
}

func TestListShifts_ByDate(t *testing.T) {
	svc, _ := newTestService()
	require.NoError(t, svc.Create(context.Background(), &Shift{Date: jan21, ShiftPeriod: "morning"}))
	require.NoError(t, svc.Create(context.Background(), &Shift{Date: civil.Date{Year: 2024, Month: time.January, Day: 22}, ShiftPeriod: "morning"}))

	items, total, err := svc.List(context.Background(), Filter{Date: &jan21}, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, jan21, items[0].Date)
}

func TestImportRoster_AllValid(t *testing.T) {
	svc, repo := newTestService()
	created, err := svc.ImportRoster(context.Background(), []RosterRow{
		{Row: 2, Date: "2024-01-21", ShiftPeriod: "morning", NurseInCharge: "Ana Costa"},
		{Row: 3, Date: "2024-01-21", ShiftPeriod: "night"},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, DefaultNurse, created[1].NurseInCharge)
	assert.Len(t, repo.records, 2)
	assert.Equal(t, created[0].ID, repo.order[0])
}

func TestImportRoster_OneBadRowCreatesNothing(t *testing.T) {
	svc, repo := newTestService()
	_, err := svc.ImportRoster(context.Background(), []RosterRow{
		{Row: 2, Date: "2024-01-21", ShiftPeriod: "morning"},
		{Row: 3, Date: "21/01/2024", ShiftPeriod: ""},
	})

	var re *RosterError
	require.True(t, errors.As(err, &re), "expected RosterError, got %v", err)
	require.Len(t, re.Rows, 1)
	assert.Equal(t, 3, re.Rows[0].Row)
	assert.Equal(t, []string{"date must be in YYYY-MM-DD format."}, re.Rows[0].Fields["date"])
	assert.Contains(t, re.Rows[0].Fields, "shift_period")
	assert.Empty(t, repo.records)
}

func TestImportRoster_Empty(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ImportRoster(context.Background(), nil)

	var ve *validation.Error
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("file"))
}
