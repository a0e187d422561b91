package entity_test

import (
	"errors"
	"testing"

	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestBuilders(t *testing.T) {
	h := entity.Path("app.todo")
	boom := errors.New("boom")

	tests := []struct {
		name    string
		action  domain.Action
		typ     string
		payload any
	}{
		{"add", entity.AddOrReplace(h, note{Title: "a"}), "[app.todo] add", note{Title: "a"}},
		{"addAll", entity.AddOrReplaceAll(h, []note{{Title: "a"}}), "[app.todo] addAll", []note{{Title: "a"}}},
		{"update", entity.Update(h, entity.Partial{"title": "a"}), "[app.todo] update", entity.Partial{"title": "a"}},
		{"updateAll", entity.UpdateAll(h, []entity.Partial{{"title": "a"}}), "[app.todo] updateAll", []entity.Partial{{"title": "a"}}},
		{"updateActive", entity.UpdateActive(h, entity.Partial{"done": true}), "[app.todo] updateActive", entity.Partial{"done": true}},
		{"remove", entity.Remove(h, "a"), "[app.todo] remove", "a"},
		{"removeAll", entity.RemoveAll(h, []string{"a"}), "[app.todo] removeAll", []string{"a"}},
		{"clear", entity.Clear(h), "[app.todo] clear", nil},
		{"reset", entity.Reset(h), "[app.todo] reset", nil},
		{"setLoading", entity.SetLoading(h, true), "[app.todo] setLoading", true},
		{"setActive", entity.SetActive(h, "a"), "[app.todo] setActive", "a"},
		{"clearActive", entity.ClearActive(h), "[app.todo] clearActive", nil},
		{"setError", entity.SetError(h, boom), "[app.todo] setError", boom},
		{"setError nil", entity.SetError(h, nil), "[app.todo] setError", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.typ, tt.action.Type)
			assert.Equal(t, tt.payload, tt.action.Payload)
		})
	}
}

func TestBuilders_StoreHandle(t *testing.T) {
	s, _ := setup(t, nil)
	assert.Equal(t, "[notes] clear", entity.Clear(s).Type)
}
