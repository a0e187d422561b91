package domain

import (
	"fmt"
	"strings"
)

// Action is the request a caller hands to a host container to trigger a mutation.
// Type is "[<path>] <operation>"; Payload depends on the operation.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Standard operation names registered by every entity store.
const (
	OpAdd          = "add"
	OpAddAll       = "addAll"
	OpUpdate       = "update"
	OpUpdateAll    = "updateAll"
	OpUpdateActive = "updateActive"
	OpRemove       = "remove"
	OpRemoveAll    = "removeAll"
	OpClear        = "clear"
	OpReset        = "reset"
	OpSetLoading   = "setLoading"
	OpSetActive    = "setActive"
	OpClearActive  = "clearActive"
	OpSetError     = "setError"
)

// Operations lists every standard operation in registration order.
var Operations = []string{
	OpAdd, OpAddAll,
	OpUpdate, OpUpdateAll, OpUpdateActive,
	OpRemove, OpRemoveAll, OpClear, OpReset,
	OpSetLoading, OpSetError,
	OpSetActive, OpClearActive,
}

// ActionType builds the routed name of an operation on the collection at path.
func ActionType(path, op string) string {
	return "[" + path + "] " + op
}

// ParseActionType splits an action type back into its path and operation.
func ParseActionType(actionType string) (path, op string, err error) {
	if !strings.HasPrefix(actionType, "[") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidActionType, actionType)
	}
	end := strings.Index(actionType, "] ")
	if end < 0 {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidActionType, actionType)
	}
	path = actionType[1:end]
	op = actionType[end+2:]
	if path == "" || op == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidActionType, actionType)
	}
	return path, op, nil
}
