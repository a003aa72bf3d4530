package utils

import "github.com/google/uuid"

// NewActionID mints a stable identifier for a generated action. Assigned once
// at plan creation and stored with the action, so completion markers survive
// a reworded title on regeneration.
func NewActionID() string {
	return "action_" + uuid.NewString()[:8]
}
