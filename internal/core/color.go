package core

// Color represents a color for a screen cell.
// The TUI maps these to ANSI 256-color codes.
type Color uint8

// Predefined colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorWhite
	ColorOrange
	ColorGray
	ColorSlate // carved passage
	ColorWall  // background and walls
	ColorCyan
)
