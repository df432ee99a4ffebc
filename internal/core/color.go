package core

// Color is an ANSI 256-color palette index used for a screen cell's
// foreground or background. ColorDefault leaves the terminal color unchanged.
type Color int16

// ColorDefault means "no explicit color".
const ColorDefault Color = -1

// Named colors for common game elements.
const (
	ColorBlack         Color = 0
	ColorRed           Color = 1
	ColorGreen         Color = 2
	ColorYellow        Color = 3
	ColorBlue          Color = 4
	ColorMagenta       Color = 5
	ColorCyan          Color = 6
	ColorWhite         Color = 7
	ColorBrightRed     Color = 9
	ColorBrightGreen   Color = 10
	ColorBrightYellow  Color = 11
	ColorBrightBlue    Color = 12
	ColorBrightMagenta Color = 13
	ColorBrightCyan    Color = 14
	ColorBrightWhite   Color = 15
	ColorOrange        Color = 208
	ColorGray          Color = 245
)

// IsDefault reports whether c leaves the terminal color unchanged.
func (c Color) IsDefault() bool {
	return c < 0 || c > 255
}
