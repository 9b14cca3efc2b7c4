package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding of the circuit view.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	CtrlUp      key.Binding
	CtrlDown    key.Binding
	PlaceH      key.Binding
	PlaceX      key.Binding
	PlaceY      key.Binding
	PlaceZ      key.Binding
	PlaceR      key.Binding
	Delete      key.Binding
	Control     key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Measure     key.Binding
	Reset       key.Binding
	Menu        key.Binding
	NextLevel   key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:        key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:       key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		CtrlUp:      key.NewBinding(key.WithKeys("shift+up", "W"), key.WithHelp("⇧↑", "control up")),
		CtrlDown:    key.NewBinding(key.WithKeys("shift+down", "S"), key.WithHelp("⇧↓", "control down")),
		PlaceH:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hadamard")),
		PlaceX:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "pauli-x")),
		PlaceY:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "pauli-y")),
		PlaceZ:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "pauli-z")),
		PlaceR:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rotation")),
		Delete:      key.NewBinding(key.WithKeys(" ", "backspace", "delete"), key.WithHelp("space", "delete")),
		Control:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "control")),
		RotateLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "rotate -")),
		RotateRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "rotate +")),
		Measure:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "measure")),
		Reset:       key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
		Menu:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "gate menu")),
		NextLevel:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlaceH, k.PlaceX, k.Control, k.RotateRight, k.Measure, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.PlaceH, k.PlaceX, k.PlaceY, k.PlaceZ, k.PlaceR, k.Menu},
		{k.Delete, k.Control, k.CtrlUp, k.CtrlDown},
		{k.RotateLeft, k.RotateRight, k.Measure, k.Reset, k.NextLevel, k.Quit},
	}
}
