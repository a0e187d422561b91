package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/entitystore/pkg/domain"
)

// CollectionMarkdown renders a collection view as a markdown section with one
// table row per entity. The active entity is marked with "*".
func CollectionMarkdown(path string, v domain.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", path)

	var flags []string
	if v.Loading {
		flags = append(flags, "**loading**")
	}
	if v.Error != "" {
		flags = append(flags, fmt.Sprintf("**error:** %s", escape(v.Error)))
	}
	if v.Active != "" {
		flags = append(flags, fmt.Sprintf("**active:** %s", escape(v.Active)))
	}
	if len(flags) > 0 {
		b.WriteString(strings.Join(flags, " | "))
		b.WriteString("\n\n")
	}

	if v.Size() == 0 {
		b.WriteString("_empty_\n")
		return b.String()
	}

	keys := v.Keys()
	rows := make([]map[string]any, len(keys))
	columnSet := make(map[string]bool)
	for i, k := range keys {
		rows[i] = fields(v.Entities[k])
		for c := range rows[i] {
			columnSet[c] = true
		}
	}
	columns := make([]string, 0, len(columnSet))
	for c := range columnSet {
		columns = append(columns, c)
	}
	sort.Strings(columns)

	b.WriteString("|   | id |")
	for _, c := range columns {
		fmt.Fprintf(&b, " %s |", escape(c))
	}
	b.WriteString("\n|---|---|")
	b.WriteString(strings.Repeat("---|", len(columns)))
	b.WriteString("\n")

	for i, k := range keys {
		mark := " "
		if k == v.Active {
			mark = "*"
		}
		fmt.Fprintf(&b, "| %s | %s |", mark, escape(k))
		for _, c := range columns {
			cell := ""
			if val, ok := rows[i][c]; ok && val != nil {
				cell = cellText(val)
			}
			fmt.Fprintf(&b, " %s |", escape(cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// fields flattens an entity into its JSON object form.
func fields(e any) map[string]any {
	data, err := json.Marshal(e)
	if err != nil {
		return map[string]any{"value": fmt.Sprint(e)}
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return map[string]any{"value": string(data)}
	}
	return out
}

func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any, []any:
		data, _ := json.Marshal(x)
		return string(data)
	default:
		return fmt.Sprint(x)
	}
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
