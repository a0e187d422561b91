package domain

import (
	"reflect"
)

// CollectionDiff represents the changes between two views of the same collection.
// It is designed to be serialized to JSON for partial updates on the client.
type CollectionDiff struct {
	// Path is always present to identify the target collection.
	Path string `json:"path"`

	// Upserted contains entities that were added or whose value changed.
	Upserted map[string]any `json:"upserted,omitempty"`

	// Removed lists ids that are no longer present, in ascending order.
	Removed []string `json:"removed,omitempty"`

	Loading *bool   `json:"loading,omitempty"`
	Error   *string `json:"error,omitempty"`
	Active  *string `json:"active,omitempty"`
}

// Diff calculates the difference between oldView and newView.
// If oldView is nil, it returns a diff representing the entire newView (initial load).
// Returns nil when nothing changed.
func Diff(path string, oldView, newView *View) *CollectionDiff {
	if newView == nil {
		return nil
	}

	diff := &CollectionDiff{Path: path}

	if oldView == nil {
		if newView.Loading {
			diff.Loading = &newView.Loading
		}
		if newView.Error != "" {
			diff.Error = &newView.Error
		}
		if newView.Active != "" {
			diff.Active = &newView.Active
		}
	} else {
		if oldView.Loading != newView.Loading {
			diff.Loading = &newView.Loading
		}
		if oldView.Error != newView.Error {
			diff.Error = &newView.Error
		}
		if oldView.Active != newView.Active {
			diff.Active = &newView.Active
		}
	}

	diff.Upserted, diff.Removed = diffEntities(oldView, newView)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

func diffEntities(old, new *View) (map[string]any, []string) {
	upserted := make(map[string]any)

	if old == nil {
		for k, v := range new.Entities {
			upserted[k] = v
		}
		if len(upserted) == 0 {
			return nil, nil
		}
		return upserted, nil
	}

	for k, newVal := range new.Entities {
		oldVal, exists := old.Entities[k]
		if !exists || !reflect.DeepEqual(oldVal, newVal) {
			upserted[k] = newVal
		}
	}

	var removed []string
	for _, k := range old.Keys() {
		if _, exists := new.Entities[k]; !exists {
			removed = append(removed, k)
		}
	}

	if len(upserted) == 0 {
		upserted = nil
	}
	return upserted, removed
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *CollectionDiff) IsEmpty() bool {
	return d.Loading == nil &&
		d.Error == nil &&
		d.Active == nil &&
		len(d.Upserted) == 0 &&
		len(d.Removed) == 0
}
