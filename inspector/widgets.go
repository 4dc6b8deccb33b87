package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, f Field) int32 {
	rl.DrawText(fmt.Sprintf("%s: %s", f.Name, FormatField(f)), x, y, 14, ColorText)
	return 18
}

// DrawAngle renders a compass-style angle indicator.
func DrawAngle(x, y int32, f Field) int32 {
	radians, _ := f.Value.(float64)
	radius := float32(12)
	cx := float32(x) + radius
	cy := float32(y) + radius

	rl.DrawCircle(int32(cx), int32(cy), radius, ColorAngleBg)
	rl.DrawLineEx(
		rl.Vector2{X: cx, Y: cy},
		rl.Vector2{X: cx + float32(math.Cos(radians))*radius, Y: cy + float32(math.Sin(radians))*radius},
		2, ColorAngleNeedle,
	)
	rl.DrawText(fmt.Sprintf("%s: %s", f.Name, FormatField(f)), x+int32(radius*2)+8, y+6, 14, ColorTextDim)
	return int32(radius*2) + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, f Field) int32 {
	on, _ := f.Value.(bool)
	color := ColorBoolOff
	if on {
		color = ColorBoolOn
	}
	rl.DrawRectangle(x, y+3, 10, 10, color)
	rl.DrawText(f.Name, x+16, y, 14, ColorText)
	return 18
}

// DrawField renders a field with its widget and returns the height used.
func DrawField(x, y int32, f Field) int32 {
	switch f.Widget {
	case WidgetAngle:
		return DrawAngle(x, y, f)
	case WidgetBool:
		return DrawBool(x, y, f)
	default:
		return DrawLabel(x, y, f)
	}
}
