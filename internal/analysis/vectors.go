package analysis

import "hc08re/internal/image"

// vectorTable is the MC68HC908GZ60 interrupt vector table, lowest priority
// first. Each slot holds a big-endian handler address.
var vectorTable = []struct {
	addr uint32
	name string
}{
	{0xFFDC, "TIMEBASE"},
	{0xFFDE, "ADC"},
	{0xFFE0, "KEYBOARD"},
	{0xFFE2, "SCITX"},
	{0xFFE4, "SCIRX"},
	{0xFFE6, "SCIERR"},
	{0xFFE8, "SPITX"},
	{0xFFEA, "SPIRX"},
	{0xFFEC, "TIM2OVF"},
	{0xFFEE, "TIM2CH1"},
	{0xFFF0, "TIM2CH0"},
	{0xFFF2, "TIM1OVF"},
	{0xFFF4, "TIM1CH1"},
	{0xFFF6, "TIM1CH0"},
	{0xFFF8, "PLL"},
	{0xFFFA, "IRQ"},
	{0xFFFC, "SWI"},
	{0xFFFE, "RESET"},
}

// ResetVector is the address of the reset slot.
const ResetVector = 0xFFFE

// Vectors reads every vector slot the image fully covers.
func Vectors(img *image.Image) []Vector {
	var out []Vector
	for _, v := range vectorTable {
		handler, ok := img.Word(v.addr)
		if !ok {
			continue
		}
		out = append(out, Vector{Address: v.addr, Name: v.name, Handler: handler})
	}
	return out
}

// Erased reports whether the slot was never programmed.
func (v Vector) Erased() bool { return v.Handler == 0xFFFF }
