package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the conduit banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                    _       _ _   ", "#22d3ee"},
		{"  ___ ___  _ __   __| |_   _(_) |_ ", "#38bdf8"},
		{" / __/ _ \\| '_ \\ / _` | | | | | __|", "#60a5fa"},
		{"| (_| (_) | | | | (_| | |_| | | |_ ", "#818cf8"},
		{" \\___\\___/|_| |_|\\__,_|\\__,_|_|\\__|", "#a78bfa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
