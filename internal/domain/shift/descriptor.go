package shift

import "github.com/sbarcore/handoff/internal/platform/registry"

func Descriptor() registry.Descriptor {
	return registry.Descriptor{
		Name:  "shift",
		Label: "Shift",
		Path:  "/shifts",
		Fields: []registry.Field{
			{Name: "id", Kind: registry.KindUUID, ReadOnly: true},
			{Name: "date", Kind: registry.KindDate, Required: true},
			{Name: "shift_period", Kind: registry.KindString, Required: true, MaxLength: maxShiftPeriod},
			{Name: "nurse_in_charge", Kind: registry.KindString, MaxLength: maxNurseInCharge, Default: DefaultNurse},
			{Name: "created_at", Kind: registry.KindDateTime, ReadOnly: true},
		},
	}
}
