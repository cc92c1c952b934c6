package parts

import "github.com/cheesy-parts/cheesyparts/internal/types"

// ValidStatus reports whether s is one of the fixed part statuses.
// Any valid status may follow any other; the workflow ordering in the
// UI is a suggestion, not a state machine.
func ValidStatus(s string) bool {
	_, ok := types.PartStatuses[s]
	return ok
}

// ValidPriority reports whether p is a known priority level.
func ValidPriority(p int) bool {
	_, ok := types.PartPriorities[p]
	return ok
}
