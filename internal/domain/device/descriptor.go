package device

import (
	"github.com/sbarcore/handoff/internal/platform/registry"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "device",
		Label: "Device",
		Path:  "/devices",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "patient_id", Kind: registry.KindUUID, Required: true, References: "patient"},
			{Name: "type", Kind: registry.KindChoice, Required: true, Choices: "type"},
			{Name: "insertion_date", Kind: registry.KindDateTime, Required: true},
			{Name: "removal_date", Kind: registry.KindDateTime},
			{Name: "insertion_site", Kind: registry.KindString, MaxLength: maxInsertionSite},
			{Name: "notes", Kind: registry.KindText},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
		Choices: map[string]validation.ChoiceSet{"type": TypeChoices},
		Hidden: []registry.HiddenRule{
			{Field: "insertion_site", When: "type", In: NoSiteTypes},
		},
	}
}
