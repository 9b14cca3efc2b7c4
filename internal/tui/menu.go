package tui

import (
	"fmt"
	"strings"

	"qcircuitgrid/internal/gate"
)

// menuItem represents a single gate choice in the menu.
type menuItem struct {
	name string
	gate gate.Gate
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gate: gate.H},
			{name: "Pauli-X (NOT)", gate: gate.X},
			{name: "Pauli-Y", gate: gate.Y},
			{name: "Pauli-Z", gate: gate.Z},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gate: gate.RX(0)},
			{name: "Rotate Y", gate: gate.RY(0)},
			{name: "Rotate Z", gate: gate.RZ(0)},
		},
	},
}

// selectedGate returns the gate under the menu selection.
func (m Model) selectedGate() gate.Gate {
	return gateMenu[m.menuCat].items[m.menuItem].gate
}

// moveMenu steps the selection; dc switches category, di moves within it.
func (m *Model) moveMenu(dc, di int) {
	if dc != 0 {
		m.menuCat = (m.menuCat + dc + len(gateMenu)) % len(gateMenu)
		m.menuItem = 0
		return
	}
	n := len(gateMenu[m.menuCat].items)
	m.menuItem = (m.menuItem + di + n) % n
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Place Gate"))
	sb.WriteString("\n")

	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 28)))
	sb.WriteString("\n")

	for i, item := range gateMenu[m.menuCat].items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(gateStyle.Render(item.gate.Symbol()))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.gate.Symbol()))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
