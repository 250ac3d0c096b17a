package sbar

import "github.com/sbarcore/handoff/internal/platform/registry"

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "sbar",
		Label: "SBAR note",
		Path:  "/sbars",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "patient_id", Kind: registry.KindUUID, Required: true, References: "patient"},
			{Name: "shift_id", Kind: registry.KindUUID, Required: true, References: "shift"},
			{Name: "situation", Kind: registry.KindText, Required: true},
			{Name: "background", Kind: registry.KindText, Required: true},
			{Name: "assessment", Kind: registry.KindText, Required: true},
			{Name: "recommendation", Kind: registry.KindText, Required: true},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
	}
}
