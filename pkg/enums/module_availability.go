package enums

import "fmt"

// ModuleAvailability controls whether a premium module is offered to every
// organization or toggled per organization by an admin.
type ModuleAvailability string

const (
	ModuleAvailabilityGlobal ModuleAvailability = "global"
	ModuleAvailabilityPerOrg ModuleAvailability = "per_org"
)

var validModuleAvailabilities = []ModuleAvailability{
	ModuleAvailabilityGlobal,
	ModuleAvailabilityPerOrg,
}

// String implements fmt.Stringer.
func (m ModuleAvailability) String() string {
	return string(m)
}

// IsValid reports whether the value is a known ModuleAvailability.
func (m ModuleAvailability) IsValid() bool {
	for _, candidate := range validModuleAvailabilities {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseModuleAvailability converts raw input into a ModuleAvailability.
func ParseModuleAvailability(value string) (ModuleAvailability, error) {
	for _, candidate := range validModuleAvailabilities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid module availability %q", value)
}
