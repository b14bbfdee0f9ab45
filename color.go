package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/colorprofile"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMode tags which representation a Color carries.
type ColorMode uint8

const (
	ColorNone ColorMode = iota
	ColorNamed
	ColorIndexed
	ColorRGB
)

// NamedColor is one of the 8 ANSI colors or its bright variant.
type NamedColor uint8

const (
	Black NamedColor = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

// Color is a tagged union over the three color models spec.md §3 allows:
// named (8 ANSI + bright), 256-indexed, and 24-bit RGB.
type Color struct {
	Mode  ColorMode
	Named NamedColor
	Index uint8
	R, G, B uint8
}

// NamedColorValue returns a Color in the Named representation.
func NamedColorValue(n NamedColor) Color { return Color{Mode: ColorNamed, Named: n} }

// Indexed256 returns a Color addressing the 256-color palette directly.
func Indexed256(n uint8) Color { return Color{Mode: ColorIndexed, Index: n} }

// RGBColor returns a 24-bit truecolor Color.
func RGBColor(r, g, b uint8) Color { return Color{Mode: ColorRGB, R: r, G: g, B: b} }

// IsSet reports whether a color has been assigned (as opposed to "inherit/transparent").
func (c Color) IsSet() bool { return c.Mode != ColorNone }

// sgrBase maps a NamedColor to its base foreground SGR parameter (add 10 for background,
// and the bright variants use the 90/100 range instead of 30/40).
func (n NamedColor) sgrBase() (code int, bright bool) {
	if n >= BrightBlack {
		return int(n-BrightBlack) + 90, true
	}
	return int(n) + 30, false
}

// Profile describes the color capability of the output terminal, mirroring
// colorprofile.Profile's levels but kept as our own type so callers don't need
// the colorprofile import to call Style/Color APIs.
type Profile uint8

const (
	ProfileTrueColor Profile = iota
	ProfileANSI256
	ProfileANSI
	ProfileAscii
	ProfileNoTTY
)

// DetectProfile probes the output stream (and environment) for color capability.
// Grounded on github.com/charmbracelet/colorprofile, the teacher's transitive
// (via bubbletea) dependency promoted here to direct, concrete use.
func DetectProfile(f *os.File) Profile {
	p := colorprofile.Detect(f, os.Environ())
	switch p {
	case colorprofile.TrueColor:
		return ProfileTrueColor
	case colorprofile.ANSI256:
		return ProfileANSI256
	case colorprofile.ANSI:
		return ProfileANSI
	case colorprofile.Ascii:
		return ProfileAscii
	default:
		return ProfileNoTTY
	}
}

// sgr renders the color as an SGR parameter string ("38;2;r;g;b", "38;5;n", "32", ...)
// for the given profile, downgrading truecolor/256 requests the terminal can't show.
func (c Color) sgr(fg bool, profile Profile) string {
	if !c.IsSet() {
		return ""
	}
	switch c.Mode {
	case ColorNamed:
		code, _ := c.Named.sgrBase()
		if !fg {
			// background codes sit 10 above foreground in both the 30-37/90-97 ranges
			code += 10
		}
		return fmt.Sprintf("%d", code)

	case ColorIndexed:
		if profile == ProfileAscii || profile == ProfileNoTTY {
			return ""
		}
		if profile == ProfileANSI {
			return NamedColorValue(nearestNamed(palette256[c.Index])).sgr(fg, profile)
		}
		if fg {
			return fmt.Sprintf("38;5;%d", c.Index)
		}
		return fmt.Sprintf("48;5;%d", c.Index)

	case ColorRGB:
		switch profile {
		case ProfileTrueColor:
			if fg {
				return fmt.Sprintf("38;2;%d;%d;%d", c.R, c.G, c.B)
			}
			return fmt.Sprintf("48;2;%d;%d;%d", c.R, c.G, c.B)
		case ProfileANSI256:
			idx := nearest256(c.R, c.G, c.B)
			if fg {
				return fmt.Sprintf("38;5;%d", idx)
			}
			return fmt.Sprintf("48;5;%d", idx)
		case ProfileANSI:
			named := nearestNamed([3]uint8{c.R, c.G, c.B})
			return NamedColorValue(named).sgr(fg, profile)
		default:
			return ""
		}
	}
	return ""
}

// nearest256 finds the closest entry in the standard 256-color palette to an
// RGB triple using CIE76 perceptual distance, grounded on github.com/lucasb-eyer/go-colorful.
func nearest256(r, g, b uint8) uint8 {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := 0
	bestDist := -1.0
	for i, p := range palette256 {
		c := colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}
		d := target.DistanceCIE76(c)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// nearestNamed downgrades an RGB triple to one of the 16 base ANSI colors.
func nearestNamed(rgb [3]uint8) NamedColor {
	target := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}
	best := Black
	bestDist := -1.0
	for n := Black; n <= BrightWhite; n++ {
		p := ansi16[n]
		c := colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}
		d := target.DistanceCIE76(c)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = n
		}
	}
	return best
}

// ansi16 gives reference RGB values for the 16 base ANSI colors, used only to
// compute nearest-color downgrades; these are not the literal codes emitted.
var ansi16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// palette256 is the standard xterm 256-color palette as RGB triples, built
// procedurally: 0-15 reuse ansi16, 16-231 are the 6x6x6 color cube, 232-255
// are the grayscale ramp.
var palette256 = buildPalette256()

func buildPalette256() [256][3]uint8 {
	var p [256][3]uint8
	copy(p[0:16], ansi16[:])
	steps := [6]uint8{0, 95, 135, 175, 215, 255}
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = [3]uint8{steps[r], steps[g], steps[b]}
				i++
			}
		}
	}
	for gray := 0; gray < 24; gray++ {
		v := uint8(8 + gray*10)
		p[232+gray] = [3]uint8{v, v, v}
	}
	return p
}
