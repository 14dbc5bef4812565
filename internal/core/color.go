package core

// Color represents a foreground color for a screen cell.
// Front-ends map it to ANSI 256-color codes or RGBA values.
type Color uint8

// Palette used by the game renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB returns the 8-bit red, green and blue components of the color.
// Used by front-ends that draw pixels rather than terminal cells.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 0xcd, 0x00, 0x00
	case ColorGreen:
		return 0x00, 0xcd, 0x00
	case ColorYellow:
		return 0xcd, 0xcd, 0x00
	case ColorWhite:
		return 0xe5, 0xe5, 0xe5
	case ColorBrightRed:
		return 0xff, 0x40, 0x40
	case ColorBrightGreen:
		return 0x40, 0xff, 0x40
	case ColorBrightYellow:
		return 0xff, 0xff, 0x40
	case ColorBrightMagenta:
		return 0xff, 0x40, 0xff
	case ColorBrightCyan:
		return 0x40, 0xff, 0xff
	case ColorBrightWhite:
		return 0xff, 0xff, 0xff
	case ColorOrange:
		return 0xff, 0x87, 0x00
	case ColorGray:
		return 0x8a, 0x8a, 0x8a
	default:
		return 0xd0, 0xd0, 0xd0
	}
}

// ANSI returns the terminal 256-color code for the color as a string,
// or "" for the terminal default.
func (c Color) ANSI() string {
	switch c {
	case ColorRed:
		return "1"
	case ColorGreen:
		return "2"
	case ColorYellow:
		return "3"
	case ColorWhite:
		return "7"
	case ColorBrightRed:
		return "9"
	case ColorBrightGreen:
		return "10"
	case ColorBrightYellow:
		return "11"
	case ColorBrightMagenta:
		return "13"
	case ColorBrightCyan:
		return "14"
	case ColorBrightWhite:
		return "15"
	case ColorOrange:
		return "208"
	case ColorGray:
		return "245"
	default:
		return ""
	}
}
