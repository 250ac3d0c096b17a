package db

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sbarcore/handoff/pkg/civil"
)

func TestDateRoundTrip(t *testing.T) {
	d := civil.Date{Year: 2024, Month: time.March, Day: 9}
	p := DateParam(d)
	if !p.Valid {
		t.Fatal("expected valid date param")
	}
	if got := DateValue(p); got != d {
		t.Errorf("expected %v, got %v", d, got)
	}
}

func TestDateParam_ZeroIsNull(t *testing.T) {
	if DateParam(civil.Date{}).Valid {
		t.Error("expected zero date to be NULL")
	}
	if OptionalDateParam(nil).Valid {
		t.Error("expected nil date to be NULL")
	}
	if OptionalDateValue(pgtype.Date{}) != nil {
		t.Error("expected NULL to scan as nil")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	tm := civil.Time{Hour: 21, Minute: 45, Second: 10}
	if got := TimeValue(TimeParam(tm)); got != tm {
		t.Errorf("expected %v, got %v", tm, got)
	}
}
