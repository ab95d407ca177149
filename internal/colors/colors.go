// Package colors implements the lighten/darken/transparentize transforms the
// theme builders derive secondary colors with.
package colors

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Transparent is the CSS keyword passed through untouched by every transform.
const Transparent = "transparent"

// ErrUnparseable is returned by Parse for values that are not colors.
var ErrUnparseable = errors.New("unparseable color")

// RGBA is an 8-bit color with a fractional alpha channel.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// Parse reads #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba() and the
// transparent keyword.
// Both comma and space separated functional notation are accepted.
func Parse(value string) (RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return RGBA{}, fmt.Errorf("%w: empty", ErrUnparseable)
	}
	if s == Transparent {
		return RGBA{}, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(value, s)
	}

	var body string
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		body = s[len("rgba(") : len(s)-1]
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		body = s[len("rgb(") : len(s)-1]
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
	}
	return parseFunctional(value, body)
}

// parseHex handles #rgb, #rgba, #rrggbb and #rrggbbaa. Alpha digits are
// rounded to two decimals.
func parseHex(raw, s string) (RGBA, error) {
	alpha := 1.0
	switch len(s) {
	case 5, 9:
		digits := s[len(s)-(len(s)-1)/4:]
		if len(digits) == 1 {
			digits += digits
		}
		n, err := strconv.ParseUint(digits, 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		alpha = math.Round(float64(n)/255*100) / 100
		s = s[:len(s)-(len(s)-1)/4]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}
	r, g, b := c.Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseFunctional(raw, body string) (RGBA, error) {
	alphaPart := ""
	if idx := strings.Index(body, "/"); idx >= 0 {
		alphaPart = strings.TrimSpace(body[idx+1:])
		body = body[:idx]
	}
	fields := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' })
	if alphaPart == "" && len(fields) == 4 {
		alphaPart = fields[3]
		fields = fields[:3]
	}
	if len(fields) != 3 {
		return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
	}

	var channels [3]uint8
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 || n > 255 {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		channels[i] = uint8(n)
	}

	alpha := 1.0
	if alphaPart != "" {
		a, err := parseAlpha(alphaPart)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrUnparseable, raw)
		}
		alpha = a
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clamp(v/100, 0, 1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp(v, 0, 1), nil
}

// String formats opaque colors as lowercase hex, shortened to #rgb when
// possible, and translucent colors as rgba(r,g,b,a).
func (c RGBA) String() string {
	if c.A >= 1 {
		return reduceHex(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Hex formats the color as #rrggbb, ignoring alpha.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGBA) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Darken lowers the HSL lightness of color by amount (0..1).
func Darken(amount float64, color string) string {
	return shiftLightness(color, -amount)
}

// Lighten raises the HSL lightness of color by amount (0..1).
func Lighten(amount float64, color string) string {
	return shiftLightness(color, amount)
}

// Transparentize lowers the alpha channel of color by amount (0..1).
func Transparentize(amount float64, color string) string {
	if isTransparent(color) {
		return color
	}
	c, err := Parse(color)
	if err != nil {
		return color
	}
	// Rounded to four decimals so 1 - 0.9 yields 0.1 rather than 0.09999...
	c.A = clamp(math.Round(c.A*10000-amount*10000)/10000, 0, 1)
	return c.String()
}

// ToHex converts any parseable color to #rrggbb for renderers that cannot
// express alpha. The second return is false when color is not parseable or is
// fully transparent.
func ToHex(color string) (string, bool) {
	if isTransparent(color) {
		return "", false
	}
	c, err := Parse(color)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// Flatten composites a translucent color over an opaque backdrop and returns
// #rrggbb. Opaque colors are returned as hex directly.
func Flatten(color, backdrop string) (string, bool) {
	c, err := Parse(color)
	if err != nil || isTransparent(color) {
		return "", false
	}
	if c.A >= 1 {
		return c.Hex(), true
	}
	bg, err := Parse(backdrop)
	if err != nil || isTransparent(backdrop) {
		return c.Hex(), true
	}
	r, g, b := bg.colorful().BlendRgb(c.colorful(), c.A).Clamped().RGB255()
	return RGBA{R: r, G: g, B: b, A: 1}.Hex(), true
}

func shiftLightness(color string, delta float64) string {
	if isTransparent(color) {
		return color
	}
	c, err := Parse(color)
	if err != nil {
		return color
	}
	h, s, l := c.colorful().Hsl()
	out := colorful.Hsl(h, s, clamp(l+delta, 0, 1)).Clamped()
	r, g, b := out.RGB255()
	return RGBA{R: r, G: g, B: b, A: c.A}.String()
}

func reduceHex(hex string) string {
	if len(hex) == 7 && hex[1] == hex[2] && hex[3] == hex[4] && hex[5] == hex[6] {
		return "#" + string(hex[1]) + string(hex[3]) + string(hex[5])
	}
	return hex
}

func isTransparent(color string) bool {
	return strings.EqualFold(strings.TrimSpace(color), Transparent)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
