package medication

import "github.com/sbarcore/handoff/internal/platform/registry"

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "medication",
		Label: "Medication",
		Path:  "/medications",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "patient_id", Kind: registry.KindUUID, Required: true, References: "patient"},
			{Name: "name", Kind: registry.KindString, Required: true, MaxLength: maxName},
			{Name: "dose", Kind: registry.KindString, Required: true, MaxLength: maxDose},
			{Name: "route", Kind: registry.KindString, Required: true, MaxLength: maxRoute},
			{Name: "time", Kind: registry.KindTime, Required: true},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
	}
}
