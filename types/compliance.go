package types

import (
	"fmt"
	"strings"
)

type Verdict uint8

const (
	VerdictFail Verdict = iota
	VerdictPass
)

func (v Verdict) String() string {
	if v == VerdictPass {
		return "PASS"
	}
	return "FAIL"
}

func NewVerdict(pass bool) Verdict {
	if pass {
		return VerdictPass
	}
	return VerdictFail
}

func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Verdict) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "PASS":
		*v = VerdictPass
	case "FAIL":
		*v = VerdictFail
	default:
		return fmt.Errorf("unknown verdict %q: %w", string(b), ErrConfiguration)
	}
	return nil
}

// RequirementKind selects which side(s) of a threshold a computed value must satisfy.
type RequirementKind uint8

const (
	RequirementMinimum RequirementKind = iota
	RequirementMaximum
	RequirementBand
)

func (rk RequirementKind) String() string {
	names := []string{
		"minimum",
		"maximum",
		"range",
	}
	if int(rk) >= len(names) {
		return fmt.Sprintf("RequirementKind(%d)", uint8(rk))
	}
	return names[int(rk)]
}

var RequirementKindNameMap = map[string]RequirementKind{
	"minimum": RequirementMinimum,
	"min":     RequirementMinimum,
	"maximum": RequirementMaximum,
	"max":     RequirementMaximum,
	"range":   RequirementBand,
	"band":    RequirementBand,
}

func NewRequirementKind(label string) (rk RequirementKind, err error) {
	var ok bool
	if rk, ok = RequirementKindNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown requirement type %q: %w", label, ErrConfiguration)
	}
	return
}

func (rk RequirementKind) MarshalText() ([]byte, error) {
	return []byte(rk.String()), nil
}

func (rk *RequirementKind) UnmarshalText(b []byte) (err error) {
	*rk, err = NewRequirementKind(string(b))
	return
}
