// Package ui provides the HUD, overlay toggles and debug panels drawn over
// the arena.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	WarnColor     rl.Color
	BarBg         rl.Color
	BarFill       rl.Color
	BarFillHigh   rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	ButtonHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.White,
		WarnColor:     rl.Orange,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:       rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillHigh:   rl.Color{R: 200, G: 100, B: 100, A: 255},

		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		BarHeight:      12,
		ButtonHeight:   24,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
