package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the entitystore ASCII banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"            _   _ _                 _                ", "#818cf8"},
		{"   ___ _ __ | |_(_) |_ _   _ ___| |_ ___  _ __ ___ ", "#a78bfa"},
		{"  / _ \\ '_ \\| __| | __| | | / __| __/ _ \\| '__/ _ \\", "#c084fc"},
		{" |  __/ | | | |_| | |_| |_| \\__ \\ || (_) | | |  __/", "#e879f9"},
		{"  \\___|_| |_|\\__|_|\\__|\\__, |___/\\__\\___/|_|  \\___|", "#f472b6"},
		{"                       |___/                        ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Status renders a short status word, green when ok and red otherwise.
func Status(ok bool, text string) string {
	p := termenv.EnvColorProfile()
	color := "#22c55e"
	if !ok {
		color = "#ef4444"
	}
	return termenv.String(text).Foreground(p.Color(color)).Bold().String()
}
