package device

import (
	"testing"
)

func TestSiteAllowed(t *testing.T) {
	tests := []struct {
		typ  string
		want bool
	}{
		{TypeCVC, true},
		{TypeSNE, false},
		{TypeSOG, false},
		{TypeVM, true},
		{TypeDrenos, true},
		{TypeSVD, false},
		{TypeShilley, true},
		{TypeTOT, false},
		{TypeTQT, false},
		{TypePAI, true},
	}
	for _, tt := range tests {
		if got := SiteAllowed(tt.typ); got != tt.want {
			t.Errorf("SiteAllowed(%s) = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestTypeChoices_Labels(t *testing.T) {
	if len(TypeChoices) != 10 {
		t.Fatalf("expected 10 device types, got %d", len(TypeChoices))
	}
	if TypeChoices.Label(TypeTQT) != "Tracheostomy" {
		t.Errorf("unexpected label %q", TypeChoices.Label(TypeTQT))
	}
}

func TestDescriptor_HidesSiteForNoSiteTypes(t *testing.T) {
	d := Descriptor()
	hidden := d.HiddenFields("type", TypeTOT)
	if len(hidden) != 1 || hidden[0] != "insertion_site" {
		t.Errorf("expected insertion_site hidden for TOT, got %v", hidden)
	}
	if len(d.HiddenFields("type", TypeCVC)) != 0 {
		t.Error("expected nothing hidden for CVC")
	}
}
