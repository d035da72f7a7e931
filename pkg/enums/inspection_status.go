package enums

import "fmt"

// InspectionStatus tracks a property inspection from booking to report.
type InspectionStatus string

const (
	InspectionStatusScheduled  InspectionStatus = "scheduled"
	InspectionStatusInProgress InspectionStatus = "in_progress"
	InspectionStatusCompleted  InspectionStatus = "completed"
	InspectionStatusCancelled  InspectionStatus = "cancelled"
)

var validInspectionStatuses = []InspectionStatus{
	InspectionStatusScheduled,
	InspectionStatusInProgress,
	InspectionStatusCompleted,
	InspectionStatusCancelled,
}

// String implements fmt.Stringer.
func (i InspectionStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InspectionStatus.
func (i InspectionStatus) IsValid() bool {
	for _, candidate := range validInspectionStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInspectionStatus converts raw input into an InspectionStatus.
func ParseInspectionStatus(value string) (InspectionStatus, error) {
	for _, candidate := range validInspectionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inspection status %q", value)
}
