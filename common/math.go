package common

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// SmoothDamp moves current toward target with critically damped smoothing.
// velocity carries state between calls and must belong to the caller.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	if velocity == nil || dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// never overshoot
	if (target-current > 0) == (output > target) {
		output = target
		*velocity = 0
	}
	return output
}

// SmoothDampVec3 is SmoothDamp for positions. The overshoot check is done on
// the whole vector so the output stops exactly at target.
func SmoothDampVec3(current, target mgl64.Vec3, velocity *mgl64.Vec3, smoothTime, dt float64) mgl64.Vec3 {
	if velocity == nil || dt <= 0 {
		return current
	}
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current.Sub(target)
	temp := velocity.Add(change.Mul(omega)).Mul(dt)
	*velocity = velocity.Sub(temp.Mul(omega)).Mul(decay)
	output := target.Add(change.Add(temp).Mul(decay))

	if target.Sub(current).Dot(output.Sub(target)) > 0 {
		output = target
		*velocity = mgl64.Vec3{}
	}
	return output
}

// RGBA is a float colour. Values may leave [0,1] while interpolating; they
// are clamped only when converted for drawing.
type RGBA struct {
	R, G, B, A float64
}

func LerpRGBA(a, b RGBA, t float64) RGBA {
	return RGBA{
		R: Lerp(a.R, b.R, t),
		G: Lerp(a.G, b.G, t),
		B: Lerp(a.B, b.B, t),
		A: Lerp(a.A, b.A, t),
	}
}

func FromColor(c color.Color) RGBA {
	if c == nil {
		return RGBA{}
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: clampByte(c.R),
		G: clampByte(c.G),
		B: clampByte(c.B),
		A: clampByte(c.A),
	}
}

// Hex returns the colour as RRGGBB, the form used in message markup.
func (c RGBA) Hex() string {
	n := c.NRGBA()
	const digits = "0123456789ABCDEF"
	out := make([]byte, 0, 6)
	for _, v := range []uint8{n.R, n.G, n.B} {
		out = append(out, digits[v>>4], digits[v&0x0f])
	}
	return string(out)
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
