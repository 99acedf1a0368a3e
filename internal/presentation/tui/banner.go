package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the webflow ASCII banner, colored when the terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"                 _      __ _", "#34d399"},
		{" __      __ ___ | |__  / _| | _____      __", "#2dd4bf"},
		{" \\ \\ /\\ / // _ \\| '_ \\| |_| |/ _ \\ \\ /\\ / /", "#22d3ee"},
		{"  \\ V  V /|  __/| |_) |  _| | (_) \\ V  V /", "#38bdf8"},
		{"   \\_/\\_/  \\___||_.__/|_| |_|\\___/ \\_/\\_/", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
