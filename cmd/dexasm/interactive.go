package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/dexasm/asm"
	"github.com/wippyai/dexasm/disasm"
	"github.com/wippyai/dexasm/encoder"
	"github.com/wippyai/dexasm/format"
	"github.com/wippyai/dexasm/insn"
	"github.com/wippyai/dexasm/opcode"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historySize = 10

type interactiveModel struct {
	err        error
	enc        *encoder.Encoder
	result     *disasm.Line
	candidates []candidate
	history    []string
	input      textinput.Model
}

// candidate is one format of the instruction's family and how it fared.
type candidate struct {
	op         opcode.Op
	regs       []bool
	compatible bool
	chosen     bool
}

func newInteractiveModel(opts encoder.Options) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "add-int/lit16 v3, v5, #100"
	ti.Prompt = "> "
	ti.Width = 60
	ti.Focus()

	return &interactiveModel{
		enc:   encoder.New(opts),
		input: ti,
	}
}

// encoded is the outcome of one submitted line.
type encoded struct {
	err        error
	line       *disasm.Line
	candidates []candidate
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "enter":
			src := strings.TrimSpace(m.input.Value())
			if src == "" {
				return m, nil
			}
			m.apply(m.encode(src))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) apply(r encoded) {
	m.err = r.err
	m.result = r.line
	m.candidates = r.candidates
	if r.err != nil {
		return
	}
	m.history = append(m.history, r.line.String())
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
	m.input.SetValue("")
}

func (m *interactiveModel) encode(src string) encoded {
	ins, err := asm.ParseLine(src)
	if err != nil {
		return encoded{err: err}
	}
	if ins == nil {
		return encoded{err: fmt.Errorf("nothing to encode")}
	}

	cands := candidates(ins)
	offset := m.enc.Len()
	sel, err := m.enc.Encode(ins)
	if err != nil {
		return encoded{err: err, candidates: cands}
	}
	for i := range cands {
		cands[i].chosen = cands[i].op.Code == sel.Op.Code
	}

	us := m.enc.Units()[offset:]
	return encoded{
		line: &disasm.Line{
			Instruction: ins,
			Op:          sel.Op,
			Units:       us,
			Offset:      offset,
		},
		candidates: cands,
	}
}

// candidates checks every format of the instruction's family.
func candidates(ins *insn.Instruction) []candidate {
	fam, ok := opcode.Lookup(ins.Family())
	if !ok {
		return nil
	}
	out := make([]candidate, len(fam.Ops))
	for i, op := range fam.Ops {
		_, compatible := format.Check(op.Format, op.Code, op.Wide, ins)
		out[i] = candidate{
			op:         op,
			regs:       op.Format.CompatibleRegs(ins),
			compatible: compatible,
		}
	}
	return out
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("dex encoder"))
	b.WriteString(fmt.Sprintf(" %d code units written\n\n", m.enc.Len()))

	for _, h := range m.history {
		b.WriteString(rejectStyle.Render(h))
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.result != nil {
		b.WriteString(resultStyle.Render(m.result.String()))
		b.WriteString("\n")
	}

	if len(m.candidates) > 0 {
		b.WriteString("\nCandidates:\n")
		for _, c := range m.candidates {
			line := fmt.Sprintf("  %-24s %s  %d units  regs %s",
				c.op.Name, c.op.Format.Name(), c.op.Format.CodeSize(), fitString(c.regs))
			switch {
			case c.chosen:
				b.WriteString(selectedStyle.Render(line))
			case c.compatible:
				b.WriteString(line)
			default:
				b.WriteString(rejectStyle.Render(line + "  rejected"))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter encode • esc quit"))
	return b.String()
}

func fitString(regs []bool) string {
	if len(regs) == 0 {
		return "-"
	}
	parts := make([]string, len(regs))
	for i, ok := range regs {
		parts[i] = "ok"
		if !ok {
			parts[i] = "too wide"
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func runInteractive(opts encoder.Options) error {
	p := tea.NewProgram(newInteractiveModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
