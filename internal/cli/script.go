package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/entitystore/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Script is a YAML list of actions applied in order.
//
//	actions:
//	  - type: "[todo] add"
//	    payload: {title: Buy milk}
type Script struct {
	Actions []ScriptAction `yaml:"actions"`
}

// ScriptAction is one entry of a Script.
type ScriptAction struct {
	Type    string `yaml:"type"`
	Payload any    `yaml:"payload"`
}

// Action converts the entry to a dispatchable action.
func (a ScriptAction) Action() domain.Action {
	return domain.Action{Type: a.Type, Payload: a.Payload}
}

// ParseScript decodes and validates a script.
func ParseScript(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return Script{}, fmt.Errorf("parse script: %w", err)
	}
	for i, a := range s.Actions {
		if _, _, err := domain.ParseActionType(a.Type); err != nil {
			return Script{}, fmt.Errorf("actions[%d]: %w", i, err)
		}
	}
	return s, nil
}

// LoadScript reads the script at path. "-" reads stdin.
func LoadScript(path string) (Script, error) {
	if path == "-" {
		return ParseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return Script{}, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}
