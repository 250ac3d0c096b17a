package validation

// Choice is one allowed value of an enum field with its display label.
type Choice struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// ChoiceSet is a closed, ordered list of choices.
type ChoiceSet []Choice

func (s ChoiceSet) Contains(code string) bool {
	for _, c := range s {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Label returns the display label for code, or code itself when unknown.
func (s ChoiceSet) Label(code string) string {
	for _, c := range s {
		if c.Code == code {
			return c.Label
		}
	}
	return code
}

func (s ChoiceSet) Codes() []string {
	out := make([]string, len(s))
	for i, c := range s {
		out[i] = c.Code
	}
	return out
}
