package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// printer writes "Label: value" lines, styling the label on a terminal only.
type printer struct {
	out    io.Writer
	styled bool
	label  lipgloss.Style
}

func newPrinter(out io.Writer) *printer {
	p := &printer{out: out}
	if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		p.styled = true
		p.label = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	}
	return p
}

func (p *printer) line(label, value string) {
	label += ":"
	if p.styled {
		label = p.label.Render(label)
	}
	fmt.Fprintf(p.out, "%s %s\n", label, value)
}

// quotedList renders ws as ["a", "b"].
func quotedList(ws []string) string {
	q := make([]string, len(ws))
	for i, w := range ws {
		q[i] = strconv.Quote(w)
	}
	return "[" + strings.Join(q, ", ") + "]"
}
