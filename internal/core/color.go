package core

// Color represents a foreground color class for a screen cell.
// The platform layer maps these to actual terminal styles.
type Color uint8

// Cell classes used by the renderer. Semantic rather than literal so the
// platform can restyle without touching game code.
const (
	ColorDefault Color = iota
	ColorWall
	ColorPlayer
	ColorSpy
	ColorExit
	ColorFlash // wall-hit error highlight
	ColorDim
	ColorAccent
	ColorTitle
	ColorDanger
	ColorSuccess
)
