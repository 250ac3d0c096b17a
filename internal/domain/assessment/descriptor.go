package assessment

import (
	"github.com/sbarcore/handoff/internal/platform/registry"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "assessment",
		Label: "Physical assessment",
		Path:  "/assessments",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "patient_id", Kind: registry.KindUUID, Required: true, References: "patient"},
			{Name: "system", Kind: registry.KindChoice, Required: true, Choices: "system"},
			{Name: "findings", Kind: registry.KindText, Required: true},
			{Name: "date", Kind: registry.KindDate, ReadOnly: true},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
		Choices: map[string]validation.ChoiceSet{"system": SystemChoices},
	}
}
