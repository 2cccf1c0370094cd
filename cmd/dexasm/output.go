package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	"github.com/wippyai/dexasm/disasm"
	"github.com/wippyai/dexasm/format"
)

var (
	unitsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	insnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	payloadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))
)

// colorEnabled reports whether w is a terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) printLines(lines []disasm.Line) {
	color := colorEnabled(a.out)
	for _, l := range lines {
		s := l.String()
		if color {
			head, tail, _ := strings.Cut(s, " | ")
			style := insnStyle
			if l.Instruction == nil {
				style = payloadStyle
			}
			s = unitsStyle.Render(head+" |") + " " + style.Render(tail)
		}
		fmt.Fprintln(a.out, s)
	}
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	aligns := make([]int, len(header))
	for i := range aligns {
		aligns[i] = tablewriter.ALIGN_LEFT
	}
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnAlignment(aligns)
	table.SetAutoWrapText(false)
	return table
}

func regWidths(s format.Shape) string {
	if s.MaxRegs > 0 {
		return fmt.Sprintf("0-%d x %d bits", s.MaxRegs, s.Regs[0])
	}
	if len(s.Regs) == 0 {
		return "-"
	}
	parts := make([]string, len(s.Regs))
	for i, w := range s.Regs {
		parts[i] = fmt.Sprint(w)
	}
	return strings.Join(parts, ", ")
}

func slotString(s format.Slot) string {
	if s.Kind == format.SlotNone {
		return "-"
	}
	sign := "unsigned"
	if s.Signed {
		sign = "signed"
	}
	return fmt.Sprintf("%s, %s %d", s.Kind, sign, s.Bits)
}

// printMetrics renders every gathered counter sample.
func (a *app) printMetrics() error {
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}

	var rows [][]string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			rows = append(rows, []string{
				mf.GetName(),
				strings.Join(labels, ","),
				fmt.Sprint(m.GetCounter().GetValue()),
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i][0] != rows[j][0] {
			return rows[i][0] < rows[j][0]
		}
		return rows[i][1] < rows[j][1]
	})

	fmt.Fprintln(a.out)
	table := newTable(a.out, "Metric", "Labels", "Value")
	table.AppendBulk(rows)
	table.Render()
	return nil
}
