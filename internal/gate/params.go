package gate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A gate expression is a name with an optional angle argument:
//
//	gate  := "i" | "x" | "y" | "z" | "h" | "r" | "r" axis [ "(" angle ")" ]
//	axis  := "x" | "y" | "z"
//	angle := term [ "/" number ]
//	term  := [ "-" ] number | [ "-" ] [ number ] [ "*" ] "pi"
//
// Whitespace is ignored and names are case-insensitive.

// normalize lowercases s and drops all whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// ParseAngle parses an angle such as "1.5", "pi", "-3*pi/4" or "2pi/3".
func ParseAngle(s string) (float64, bool) {
	return parseAngle(normalize(s))
}

func parseAngle(s string) (float64, bool) {
	num, den, hasDen := strings.Cut(s, "/")
	v, ok := parseTerm(num)
	if !ok {
		return 0, false
	}
	if hasDen {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 || math.IsInf(d, 0) || math.IsNaN(d) {
			return 0, false
		}
		v /= d
	}
	return v, true
}

// parseTerm reads the numerator of an angle.
func parseTerm(s string) (float64, bool) {
	sign := 1.0
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		sign, s = -1, rest
	}

	coeff, isPi := strings.CutSuffix(s, "pi")
	if isPi {
		if coeff == "" {
			return sign * math.Pi, true
		}
		coeff = strings.TrimSuffix(coeff, "*")
	}
	if coeff == "" {
		return 0, false
	}
	c, err := strconv.ParseFloat(coeff, 64)
	if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, false
	}
	if isPi {
		c *= math.Pi
	}
	return sign * c, true
}

// FormatAngle renders an angle using pi notation when it is a multiple of π/8,
// falling back to %g.
func FormatAngle(val float64) string {
	if math.Abs(val) < 1e-10 {
		return "0"
	}
	eighths := val / (math.Pi / 8)
	n := math.Round(eighths)
	if math.Abs(eighths-n) > 1e-9 {
		return fmt.Sprintf("%g", val)
	}

	sign := ""
	k := int(n)
	if k < 0 {
		sign = "-"
		k = -k
	}
	num, den := k, 8
	for den > 1 && num%2 == 0 {
		num /= 2
		den /= 2
	}

	var s string
	switch {
	case num == 1 && den == 1:
		s = "pi"
	case den == 1:
		s = fmt.Sprintf("%d*pi", num)
	case num == 1:
		s = fmt.Sprintf("pi/%d", den)
	default:
		s = fmt.Sprintf("%d*pi/%d", num, den)
	}
	return sign + s
}

// Parse resolves a gate expression such as "h", "X", "ry" or "rz( -pi/2 )".
// A rotation without an angle starts at zero; a bare "r" is RY(0).
func Parse(name string) (Gate, error) {
	s := normalize(name)
	switch s {
	case "i", "id", "identity":
		return I, nil
	case "x":
		return X, nil
	case "y":
		return Y, nil
	case "z":
		return Z, nil
	case "h":
		return H, nil
	case "r":
		return RY(0), nil
	}

	rest, ok := strings.CutPrefix(s, "r")
	if !ok || rest == "" {
		return I, fmt.Errorf("unknown gate %q", name)
	}
	axis, arg := rest[:1], rest[1:]

	angle := 0.0
	if arg != "" {
		inner, ok := strings.CutPrefix(arg, "(")
		if ok {
			inner, ok = strings.CutSuffix(inner, ")")
		}
		if !ok {
			return I, fmt.Errorf("unknown gate %q", name)
		}
		if angle, ok = parseAngle(inner); !ok {
			return I, fmt.Errorf("invalid angle %q in gate %q", inner, name)
		}
	}

	switch axis {
	case "x":
		return RX(angle), nil
	case "y":
		return RY(angle), nil
	case "z":
		return RZ(angle), nil
	}
	return I, fmt.Errorf("unknown gate %q", name)
}
