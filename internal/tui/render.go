package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
	"qcircuitgrid/internal/measure"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given visible width.
func padCenter(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return ansi.Truncate(s, width, "")
	}
	total := width - w
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// angleTag is the compact angle shown under a rotation box, at most
// gateNameW columns wide.
func angleTag(a float64) string {
	s := strings.NewReplacer("*", "", "pi", "π").Replace(gate.FormatAngle(a))
	if ansi.StringWidth(s) > gateNameW {
		s = fmt.Sprintf("%.2f", a)
	}
	return ansi.Truncate(s, gateNameW, "")
}

// targetSymbol returns the wire glyph of a controlled gate, or "" when the
// gate is drawn as a box.
func targetSymbol(g gate.Gate) string {
	switch g.Kind {
	case gate.PauliX:
		return "⊕"
	case gate.PauliZ:
		return "●"
	default:
		return ""
	}
}

// ──────────────────────────── Cell layout ────────────────────────────

// cellInfo is everything renderCell needs about one grid position.
type cellInfo struct {
	cell        grid.Cell
	passThrough bool // an unrelated wire crossed by a control connector
	vertAbove   bool
	vertBelow   bool
}

// columnInfo lays out the control connectors of one column.
func columnInfo(cells grid.Snapshot, column int) []cellInfo {
	infos := make([]cellInfo, len(cells))
	for r := range cells {
		infos[r].cell = cells[r][column]
	}
	for r := range cells {
		c := cells[r][column]
		if !c.Controlled() {
			continue
		}
		lo := min(r, c.Controls[0])
		hi := max(r, c.Controls[len(c.Controls)-1])
		for i := lo; i <= hi; i++ {
			if i > lo {
				infos[i].vertAbove = true
			}
			if i < hi {
				infos[i].vertBelow = true
			}
			if !infos[i].cell.Occupied() {
				infos[i].passThrough = true
			}
		}
	}
	return infos
}

// ──────────────────────────── Cell rendering ────────────────────────────

// renderCell returns 3 lines (top, mid, bot) for a single cell.
// Each line is exactly cellW visual characters wide.
func renderCell(info cellInfo, cursor bool) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	c := info.cell

	if cursor {
		bdr := cursorBoxStyle
		innerW := cellW - 2
		dashL := (innerW - 1) / 2
		dashR := innerW - dashL - 1
		wire := func(sym string) string {
			return bdr.Render("║") + strings.Repeat("─", dashL) + sym + strings.Repeat("─", dashR) + bdr.Render("║")
		}

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case c.IsControl():
			mid = wire(gateStyle.Render("●"))
		case c.HasGate() && c.Controlled() && targetSymbol(c.Gate) != "":
			mid = wire(gateStyle.Render(targetSymbol(c.Gate)))
		case c.HasGate():
			mid = bdr.Render("║") + "─┤" + gateStyle.Render(padCenter(c.Gate.Symbol(), gateNameW)) + "├─" + bdr.Render("║")
			if c.Gate.Kind == gate.Rotation {
				edgeL := (innerW - gateNameW) / 2
				edgeR := innerW - gateNameW - edgeL
				bot = bdr.Render("╚"+strings.Repeat("═", edgeL)) +
					gateStyle.Render(padCenter(angleTag(c.Gate.Angle), gateNameW)) +
					bdr.Render(strings.Repeat("═", edgeR)+"╝")
			}
		case info.passThrough:
			mid = wire("┼")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1
	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch {
	case c.IsControl():
		mid = strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR)

	case c.HasGate() && c.Controlled() && targetSymbol(c.Gate) != "":
		mid = strings.Repeat("─", dashL) + gateStyle.Render(targetSymbol(c.Gate)) + strings.Repeat("─", dashR)

	case c.HasGate():
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(c.Gate.Symbol(), gateNameW)

		topBorder := strings.Repeat("─", gateNameW)
		if info.vertAbove {
			topBorder = strings.Repeat("─", gateNameW/2) + "┴" + strings.Repeat("─", gateNameW-gateNameW/2-1)
		}
		botBorder := strings.Repeat("─", gateNameW)
		if c.Gate.Kind == gate.Rotation {
			botBorder = padCenter(angleTag(c.Gate.Angle), gateNameW)
		} else if info.vertBelow {
			botBorder = strings.Repeat("─", gateNameW/2) + "┬" + strings.Repeat("─", gateNameW-gateNameW/2-1)
		}

		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+topBorder+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+botBorder+"┘") + strings.Repeat(" ", rightMargin)

	case info.passThrough:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)

	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder
	v := m.session.View()

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Quantum Circuit  level %d", m.level)))
	sb.WriteString("\n\n")

	// How many steps fit
	availWidth := width - labelVisualW - 4
	maxSteps := min(max(availWidth/cellW, 1), v.Depth)

	startStep := 0
	if v.CursorColumn >= maxSteps {
		startStep = v.CursorColumn - maxSteps + 1
	}
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+maxSteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	columns := make([][]cellInfo, maxSteps)
	for i := range columns {
		columns[i] = columnInfo(v.Cells, startStep+i)
	}

	for qubit := range v.Qubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for i := range columns {
			step := startStep + i
			cursor := step == v.CursorColumn && qubit == v.CursorRow
			top, mid, bot := renderCell(columns[i][qubit], cursor)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	fmt.Fprintf(&sb, "\n  Position: Step %d, Qubit %d", v.CursorColumn, v.CursorRow)
	if v.Initial != 0 {
		fmt.Fprintf(&sb, "  │  start %s", ket(v.Initial, v.Qubits))
	}
	if m.statusMsg != "" {
		style := activeGateStyle
		if !v.LastOK {
			style = rejectStyle
		}
		fmt.Fprintf(&sb, "  │  %s", style.Render(m.statusMsg))
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// ket renders a basis index as |b...b⟩.
func ket(index, qubits int) string {
	return "|" + measure.Bitstring(index, qubits) + "⟩"
}

// renderBar draws a probability as a bar of barW cells whose colour fades
// with the outcome's translucency.
func renderBar(p float64) string {
	filled := int(math.Round(math.Max(0, math.Min(1, p)) * barW))
	bar := strings.Repeat("█", filled)
	if filled > 0 {
		bar = lipgloss.NewStyle().Foreground(barColor(p)).Render(bar)
	}
	return bar + dimStyle.Render(strings.Repeat("░", barW-filled))
}

// probWidth is the width of the probability panel for a register.
func probWidth(qubits int) int {
	// border + padding + ket + space + bar + percentage + marker
	return 4 + (qubits + 3) + 1 + barW + 8 + 2
}

// renderProbabilityPanel lists every basis state with its probability.
func (m Model) renderProbabilityPanel(width, height int) string {
	var sb strings.Builder
	v := m.session.View()

	sb.WriteString(titleStyle.Render("Outcomes"))
	sb.WriteString("\n\n")

	last, measured := m.session.LastOutcome()
	// Large registers list only the outcomes that fit.
	rows := max(height-6, 1)
	for i, p := range v.Probabilities {
		if i >= rows {
			fmt.Fprintf(&sb, "%s\n", dimStyle.Render(fmt.Sprintf("  … %d more", len(v.Probabilities)-rows)))
			break
		}
		label := qubitLabelStyle.Render(ket(i, v.Qubits))
		fmt.Fprintf(&sb, "%s %s %6.1f%%", label, renderBar(p), p*100)
		if measured && i == last {
			sb.WriteString(activeGateStyle.Render(" ◀"))
		}
		sb.WriteString("\n")
	}

	return probStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help bar.
func (m Model) renderControlsPanel(width, height int) string {
	return controlsStyle.Width(width).Height(height).Render(m.help.View(m.keys))
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at position (x, y).
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at x in bgLine with overlay,
// keeping the escape sequences of both intact.
func spliceLineAt(bgLine, overlay string, x int) string {
	prefix := ansi.Truncate(bgLine, x, "")
	if pad := x - ansi.StringWidth(prefix); pad > 0 {
		prefix += strings.Repeat(" ", pad)
	}
	suffix := ansi.TruncateLeft(bgLine, x+ansi.StringWidth(overlay), "")
	return prefix + overlay + suffix
}
