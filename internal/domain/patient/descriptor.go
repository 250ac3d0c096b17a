package patient

import (
	"github.com/sbarcore/handoff/internal/platform/registry"
	"github.com/sbarcore/handoff/internal/platform/validation"
)

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "patient",
		Label: "Patient",
		Path:  "/patients",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "name", Kind: registry.KindString, Required: true, MaxLength: maxName},
			{Name: "birth_date", Kind: registry.KindDate},
			{Name: "mother_name", Kind: registry.KindString, MaxLength: maxMotherName},
			{Name: "bed_number", Kind: registry.KindString, Required: true, MaxLength: maxBedNumber},
			{Name: "admission_date", Kind: registry.KindDateTime, Required: true},
			{Name: "discharge_date", Kind: registry.KindDateTime},
			{Name: "is_active", Kind: registry.KindBool, Default: true},
			{Name: "diagnosis", Kind: registry.KindText},
			{Name: "status", Kind: registry.KindChoice, Choices: "status", Default: StatusStable},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
		Choices: map[string]validation.ChoiceSet{"status": StatusChoices},
	}
}
