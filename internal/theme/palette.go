package theme

import "github.com/lucasb-eyer/go-colorful"

// Palette is the set of colors a renderer draws a theme with.
type Palette struct {
	Background colorful.Color
	Foreground colorful.Color
	Accent     colorful.Color
	Muted      colorful.Color
	Error      colorful.Color
	Info       colorful.Color
	Success    colorful.Color
	Warning    colorful.Color
}

type paletteHex struct {
	background, foreground, accent     string
	errorColor, info, success, warning string
}

var palettes = map[Type]paletteHex{
	Dark: {
		background: "#1a1d23",
		foreground: "#e6e8eb",
		accent:     "#3f8cff",
		errorColor: "#ff5a5a",
		info:       "#54a9ff",
		success:    "#59c93d",
		warning:    "#ffc53d",
	},
	Light: {
		background: "#ffffff",
		foreground: "#282a35",
		accent:     "#1f6fe5",
		errorColor: "#d93636",
		info:       "#1f86e5",
		success:    "#3b9c24",
		warning:    "#c98b00",
	},
}

// PaletteFor returns the palette of t. Unknown themes get the Default
// palette.
func PaletteFor(t Type) Palette {
	hex, ok := palettes[t]
	if !ok {
		hex = palettes[Default]
	}

	p := Palette{
		Background: mustHex(hex.background),
		Foreground: mustHex(hex.foreground),
		Accent:     mustHex(hex.accent),
		Error:      mustHex(hex.errorColor),
		Info:       mustHex(hex.info),
		Success:    mustHex(hex.success),
		Warning:    mustHex(hex.warning),
	}
	p.Muted = p.Foreground.BlendLab(p.Background, 0.45).Clamped()
	return p
}

// Severity returns the color for a notification severity name. Unknown
// names get the foreground color.
func (p Palette) Severity(name string) colorful.Color {
	switch name {
	case "error":
		return p.Error
	case "info":
		return p.Info
	case "success":
		return p.Success
	case "warning":
		return p.Warning
	}
	return p.Foreground
}

// Contrast is the CIE76 distance between foreground and background on
// the conventional 0-100 lightness scale. go-colorful works with L in 0-1.
func (p Palette) Contrast() float64 {
	return p.Foreground.DistanceCIE76(p.Background) * 100
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("theme: bad palette color " + s)
	}
	return c
}
