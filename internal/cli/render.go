package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/aretw0/entitystore/internal/presentation/tui"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
)

// WriteCollections prints the collections at paths, as indented JSON or as markdown tables.
func WriteCollections(w io.Writer, tree domain.Tree, paths []string, jsonMode bool) error {
	if jsonMode {
		out := make(map[string]domain.View, len(paths))
		for _, p := range paths {
			if v, ok := entity.ViewAt(tree, p); ok {
				out[p] = v
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	var b strings.Builder
	for _, p := range paths {
		if v, ok := entity.ViewAt(tree, p); ok {
			b.WriteString(tui.CollectionMarkdown(p, v))
			b.WriteString("\n")
		}
	}
	return tui.Render(w, b.String())
}
