package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"qcircuitgrid/internal/gate"
	"qcircuitgrid/internal/grid"
)

// ErrEmptyCommand is returned by Parse for blank input.
var ErrEmptyCommand = errors.New("empty command")

var directions = map[string]grid.Direction{
	"up":    grid.Up,
	"down":  grid.Down,
	"left":  grid.Left,
	"right": grid.Right,
}

// Parse reads one textual command:
//
//	move up|down|left|right
//	place h|x|y|z|r|rx(a)|ry(a)|rz(a)
//	delete
//	ctrl
//	ctrl up|down
//	rotate +|-
//	reset
//	measure
//	collapse N
func Parse(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil, ErrEmptyCommand
	}
	verb, args := fields[0], fields[1:]

	switch verb {
	case "move":
		if len(args) != 1 {
			return nil, fmt.Errorf("move takes one direction")
		}
		d, ok := directions[args[0]]
		if !ok {
			return nil, fmt.Errorf("unknown direction %q", args[0])
		}
		return MoveCursor{Dir: d}, nil

	case "place":
		if len(args) == 0 {
			return nil, fmt.Errorf("place takes a gate name")
		}
		// Angles may contain spaces: "ry(3 * pi/4)".
		g, err := gate.Parse(strings.Join(args, ""))
		if err != nil {
			return nil, err
		}
		return PlaceGate{Gate: g}, nil

	case "delete", "del":
		if len(args) != 0 {
			return nil, fmt.Errorf("delete takes no arguments")
		}
		return DeleteGate{}, nil

	case "ctrl", "control":
		switch len(args) {
		case 0:
			return ToggleControl{}, nil
		case 1:
			d, ok := directions[args[0]]
			if !ok || !d.Vertical() {
				return nil, fmt.Errorf("controls move up or down, got %q", args[0])
			}
			return MoveControl{Dir: d}, nil
		}
		return nil, fmt.Errorf("ctrl takes at most one direction")

	case "rotate", "rot":
		if len(args) != 1 {
			return nil, fmt.Errorf("rotate takes + or -")
		}
		switch args[0] {
		case "+":
			return RotateGate{Sign: 1}, nil
		case "-":
			return RotateGate{Sign: -1}, nil
		}
		return nil, fmt.Errorf("rotate takes + or -, got %q", args[0])

	case "reset":
		return ResetCircuit{}, nil

	case "measure":
		return Measure{}, nil

	case "collapse":
		if len(args) != 1 {
			return nil, fmt.Errorf("collapse takes a basis index")
		}
		n, err := parseBasis(args[0])
		if err != nil {
			return nil, err
		}
		return Collapse{Index: n}, nil
	}
	return nil, fmt.Errorf("unknown command %q", verb)
}

// parseBasis accepts a decimal index or a ket such as |10>.
func parseBasis(s string) (int, error) {
	if strings.HasPrefix(s, "|") && strings.HasSuffix(s, ">") {
		n, err := strconv.ParseUint(s[1:len(s)-1], 2, 31)
		if err != nil {
			return 0, fmt.Errorf("invalid basis state %q", s)
		}
		return int(n), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid basis index %q", s)
	}
	return n, nil
}

// ParseScript reads one command per line. Blank lines and lines starting
// with '#' are skipped.
func ParseScript(r io.Reader) ([]Command, error) {
	var cmds []Command
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cmds = append(cmds, cmd)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return cmds, nil
}
