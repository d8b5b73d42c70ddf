package propulsion

import (
	"fmt"
	"math"
)

const gravity = 9.81 // m/s^2

// Karpov shallow-water speed correction. The factor alpha reduces with the
// depth Froude number and with shrinking depth-to-draught ratio; the
// wave-making components are evaluated at the corrected speed v/alpha.
// Grid digitized from the Karpov diagrams; bilinear interpolation, clamped
// at the edges.
var (
	karpovHT  = []float64{1.1, 1.5, 2.0, 3.0, 5.0, 10.0}
	karpovFnh = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9}
	karpovA   = [][]float64{
		{1.00, 0.99, 0.97, 0.93, 0.87, 0.80, 0.72, 0.65, 0.58, 0.52},
		{1.00, 0.99, 0.98, 0.95, 0.91, 0.86, 0.80, 0.73, 0.66, 0.60},
		{1.00, 1.00, 0.99, 0.97, 0.94, 0.90, 0.85, 0.79, 0.73, 0.67},
		{1.00, 1.00, 0.99, 0.98, 0.97, 0.95, 0.91, 0.87, 0.82, 0.76},
		{1.00, 1.00, 1.00, 0.99, 0.99, 0.98, 0.96, 0.94, 0.90, 0.86},
		{1.00, 1.00, 1.00, 1.00, 1.00, 0.99, 0.99, 0.98, 0.97, 0.95},
	}
)

// karpovAlpha interpolates the speed-correction factor for a depth-to-
// draught ratio and depth Froude number.
func karpovAlpha(hOverT, fnh float64) float64 {
	hi, hf := bracket(karpovHT, hOverT)
	fi, ff := bracket(karpovFnh, fnh)
	a0 := lerp(karpovA[hi][fi], karpovA[hi][fi+1], ff)
	a1 := lerp(karpovA[hi+1][fi], karpovA[hi+1][fi+1], ff)
	return lerp(a0, a1, hf)
}

// bracket returns the lower index and the fractional position of x within
// the sorted axis, clamped to the table range.
func bracket(axis []float64, x float64) (int, float64) {
	if x <= axis[0] {
		return 0, 0
	}
	last := len(axis) - 1
	if x >= axis[last] {
		return last - 1, 1
	}
	for i := 1; i <= last; i++ {
		if x < axis[i] {
			return i - 1, (x - axis[i-1]) / (axis[i] - axis[i-1])
		}
	}
	return last - 1, 1
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }

// TotalResistance returns the total hull resistance (kN) at speed v (m/s)
// in water of effective depth hEff (m, squat already deducted).
//
// Viscous components (friction, appendages, correlation allowance) use the
// through-water speed; wave-making components (wave, bulb, transom) use
// the Karpov-corrected speed.
func (e *Engine) TotalResistance(v, hEff float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("propulsion: speed must be positive, got %g", v)
	}
	if hEff <= e.st.Tm {
		return 0, fmt.Errorf("propulsion: effective depth %.3f m at or below draught %.3f m", hEff, e.st.Tm)
	}

	fnh := v / math.Sqrt(gravity*hEff)
	vw := v / karpovAlpha(hEff/e.st.Tm, fnh)

	rf := e.frictional(v)
	rapp := e.appendage(v)
	rw := e.wave(vw)
	rb := e.bulb(vw)
	rtr := e.transom(vw)
	ra := e.correlation(v)

	oneK1 := e.formFactor()
	total := rf*oneK1 + rapp + rw + rb + rtr + ra
	return total / 1000, nil
}

// frictional returns the ITTC-57 flat-plate friction resistance (N).
func (e *Engine) frictional(v float64) float64 {
	re := v * e.st.Vessel.L / e.p.Nu
	cf := 0.075 / math.Pow(math.Log10(re)-2, 2)
	return 0.5 * e.rhoW * v * v * e.s * cf
}

// formFactor returns the Holtrop hull form factor 1+k1.
func (e *Engine) formFactor() float64 {
	vs := e.st.Vessel
	c14 := 1 + 0.011*e.p.CStern
	return 0.93 + 0.487118*c14*
		math.Pow(vs.B/vs.L, 1.06806)*
		math.Pow(e.st.Tm/vs.L, 0.46106)*
		math.Pow(vs.L/e.lr, 0.121563)*
		math.Pow(vs.L*vs.L*vs.L/e.vol, 0.36486)*
		math.Pow(1-e.cp, -0.604247)
}

// appendage returns the appendage resistance (N) using the flat-plate
// coefficient scaled by the appendage factor 1+k2.
func (e *Engine) appendage(v float64) float64 {
	re := v * e.st.Vessel.L / e.p.Nu
	cf := 0.075 / math.Pow(math.Log10(re)-2, 2)
	return 0.5 * e.rhoW * v * v * e.sApp * e.p.OneK2 * cf
}

// wave returns the Holtrop-Mennen wave-making resistance (N).
func (e *Engine) wave(v float64) float64 {
	vs := e.st.Vessel
	tm := e.st.Tm
	fr := v / math.Sqrt(gravity*vs.L)
	if fr <= 0 {
		return 0
	}

	bl := vs.B / vs.L
	var c7 float64
	switch {
	case bl < 0.11:
		c7 = 0.229577 * math.Pow(bl, 1.0/3.0)
	case bl > 0.25:
		c7 = 0.5 - 0.0625*vs.L/vs.B
	default:
		c7 = bl
	}

	// Half angle of entrance (deg), Holtrop regression.
	ie := 1 + 89*math.Exp(
		-math.Pow(vs.L/vs.B, 0.80856)*
			math.Pow(1-vs.CWP, 0.30484)*
			math.Pow(1-e.cp, 0.6367)*
			math.Pow(e.lr/vs.B, 0.34574)*
			math.Pow(100*e.vol/(vs.L*vs.L*vs.L), 0.16302))

	c1 := 2223105 * math.Pow(c7, 3.78613) * math.Pow(tm/vs.B, 1.07961) * math.Pow(90-ie, -1.37565)

	c2 := 1.0
	if e.abt > 0 {
		c3 := 0.56 * math.Pow(e.abt, 1.5) / (vs.B * tm * (0.31*math.Sqrt(e.abt) + e.tf - e.hb))
		c2 = math.Exp(-1.89 * math.Sqrt(c3))
	}

	c5 := 1 - 0.8*e.at/(vs.B*tm*vs.CM)

	var lambda float64
	if vs.L/vs.B < 12 {
		lambda = 1.446*e.cp - 0.03*vs.L/vs.B
	} else {
		lambda = 1.446*e.cp - 0.36
	}

	var c16 float64
	if e.cp < 0.8 {
		c16 = 8.07981*e.cp - 13.8673*e.cp*e.cp + 6.984388*e.cp*e.cp*e.cp
	} else {
		c16 = 1.73014 - 0.7067*e.cp
	}

	m1 := 0.0140407*vs.L/tm - 1.75254*math.Cbrt(e.vol)/vs.L - 4.79323*vs.B/vs.L - c16

	lv := vs.L * vs.L * vs.L / e.vol
	var c15 float64
	switch {
	case lv < 512:
		c15 = -1.69385
	case lv > 1726.91:
		c15 = 0
	default:
		c15 = -1.69385 + (vs.L/math.Cbrt(e.vol)-8)/2.36
	}
	m4 := c15 * 0.4 * math.Exp(-0.034*math.Pow(fr, -3.29))

	const d = -0.9
	return c1 * c2 * c5 * e.vol * e.rhoW * gravity *
		math.Exp(m1*math.Pow(fr, d)+m4*math.Cos(lambda/(fr*fr)))
}

// bulb returns the bulbous-bow pressure resistance (N); zero without a bulb.
func (e *Engine) bulb(v float64) float64 {
	if e.abt <= 0 {
		return 0
	}
	pb := 0.56 * math.Sqrt(e.abt) / (e.tf - 1.5*e.hb)
	fni := v / math.Sqrt(gravity*(e.tf-e.hb-0.25*math.Sqrt(e.abt))+0.15*v*v)
	return 0.11 * math.Exp(-3/(pb*pb)) * fni * fni * fni *
		math.Pow(e.abt, 1.5) * e.rhoW * gravity / (1 + fni*fni)
}

// transom returns the immersed-transom resistance (N); zero without one.
func (e *Engine) transom(v float64) float64 {
	if e.at <= 0 {
		return 0
	}
	vs := e.st.Vessel
	fnt := v / math.Sqrt(2*gravity*e.at/(vs.B+vs.B*vs.CWP))
	c6 := 0.0
	if fnt < 5 {
		c6 = 0.2 * (1 - 0.2*fnt)
	}
	return 0.5 * e.rhoW * v * v * e.at * c6
}

// correlation returns the model-ship correlation allowance (N).
func (e *Engine) correlation(v float64) float64 {
	vs := e.st.Vessel
	c4 := e.tf / vs.L
	if c4 > 0.04 {
		c4 = 0.04
	}
	c2 := 1.0
	if e.abt > 0 {
		c3 := 0.56 * math.Pow(e.abt, 1.5) / (vs.B * e.st.Tm * (0.31*math.Sqrt(e.abt) + e.tf - e.hb))
		c2 = math.Exp(-1.89 * math.Sqrt(c3))
	}
	ca := 0.006*math.Pow(vs.L+100, -0.16) - 0.00205 +
		0.003*math.Sqrt(vs.L/7.5)*math.Pow(e.st.CB, 4)*c2*(0.04-c4)
	return 0.5 * e.rhoW * v * v * e.s * ca
}
