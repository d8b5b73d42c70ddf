// Package squat evaluates empirical ship-squat formulas against a derived
// channel state and selects the governing value per channel type.
//
// Three formulations are carried side by side: Hooft (1974) for
// unrestricted channels, Roemisch (1989) for unrestricted channels and
// canals, and Ankudinov (2000) for restricted channels and canals. Each
// produces bow/stern candidates; the governing squat is the maximum of the
// candidates applicable to the channel type.
package squat

import (
	"math"

	"github.com/rpipeau3d/fairgo/internal/hydro"
)

const (
	gravity  = 9.81            // m/s^2
	mPerKnot = 1852.0 / 3600.0 // m/s per knot
)

// Estimator evaluates squat for one initialized scenario. It only reads the
// derived state, so a single Estimator may serve concurrent evaluations as
// long as nobody re-initializes the state underneath it.
type Estimator struct {
	st *hydro.State
}

// New creates an Estimator over an initialized channel state.
func New(st *hydro.State) *Estimator {
	return &Estimator{st: st}
}

// Result is the per-speed squat breakdown. All components are in meters.
type Result struct {
	Speed float64 `json:"speed"` // m/s
	Fnh   float64 `json:"fnh"`   // depth Froude number

	HooftBow       float64 `json:"hooft_bow"`
	RomischBow     float64 `json:"romisch_bow"`
	RomischStern   float64 `json:"romisch_stern"`
	AnkudinovBow   float64 `json:"ankudinov_bow"`
	AnkudinovStern float64 `json:"ankudinov_stern"`
	Trim           float64 `json:"trim"` // Ankudinov trim correction (m)

	Governing float64 `json:"governing"` // max of the type-applicable candidates
}

// Squat returns the governing squat value (m) at speed v (m/s).
func (e *Estimator) Squat(v float64) (float64, error) {
	r, err := e.Evaluate(v)
	if err != nil {
		return 0, err
	}
	return r.Governing, nil
}

// Evaluate computes all squat candidates at speed v (m/s) and selects the
// governing value for the channel type. The type is re-derived from the
// trench height on every call so that the selection can never drift from
// the geometry.
func (e *Estimator) Evaluate(v float64) (Result, error) {
	if v <= 0 {
		return Result{}, &hydro.DomainError{Op: "squat", Value: v, Reason: "speed must be positive"}
	}

	st := e.st
	r := Result{
		Speed: v,
		Fnh:   v / math.Sqrt(gravity*st.Channel.Depth()),
	}

	if err := e.hooft(v, &r); err != nil {
		return Result{}, err
	}
	e.romisch(v, &r)
	e.ankudinov(v, &r)

	switch st.Type() {
	case hydro.Unrestricted:
		r.Governing = max3(r.HooftBow, r.RomischBow, r.RomischStern)
	case hydro.Restricted:
		r.Governing = math.Max(r.AnkudinovBow, r.AnkudinovStern)
	case hydro.Canal:
		r.Governing = math.Max(
			math.Max(r.AnkudinovBow, r.AnkudinovStern),
			math.Max(r.RomischBow, r.RomischStern),
		)
	}
	return r, nil
}

// hooft fills the Hooft (1974) bow squat, applicable to unrestricted
// channels only. The formula divides by sqrt(1-Fnh^2), so a depth Froude
// number at or above 1 is outside its domain.
func (e *Estimator) hooft(v float64, r *Result) error {
	st := e.st
	if st.Channel.HT != 0 {
		r.HooftBow = 0
		return nil
	}
	if r.Fnh >= 1 {
		return &hydro.DomainError{Op: "hooft squat", Value: r.Fnh,
			Reason: "depth Froude number must be below 1"}
	}
	shb := 2 * st.CB * st.Vessel.B * st.Tm * r.Fnh * r.Fnh /
		(st.Vessel.L * math.Sqrt(1-r.Fnh*r.Fnh))
	if st.Ukc < 1.2 && st.CB >= 0.8 {
		shb = 0
	}
	r.HooftBow = shb
	return nil
}

// romisch fills the Roemisch (1989) bow and stern squat, applicable to
// unrestricted channels and canals. Zeroing rules for shallow clearance
// follow the published branch conditions; the stern value shares the bow
// zeroing because it is derived from it.
func (e *Estimator) romisch(v float64, r *Result) {
	st := e.st
	d := st.Channel.Depth()

	kdt := 0.155 * math.Sqrt(d/st.Tm)
	cf := math.Pow(10*st.Vessel.B*st.CB/st.Vessel.L, 2)
	vr := v / st.Vcr
	cv := 8 * vr * vr * (0.0625 + math.Pow(vr-0.5, 4))

	switch {
	case st.Channel.HT == 0:
		srb := cv * cf * kdt * st.Tm
		if st.Ukc < 1.2 && st.CB < 0.8 {
			srb = 0
		}
		r.RomischBow = srb
		r.RomischStern = srb / cf
	case st.Channel.HT < d:
		r.RomischBow = 0
		r.RomischStern = 0
	default:
		srb := cv * cf * kdt * st.Tm
		if st.Ukc < 1.2 && st.CB > 0.8 && v/mPerKnot < 7 {
			srb = 0
		}
		r.RomischBow = srb
		r.RomischStern = srb / cf
	}
}

// ankudinov fills the Ankudinov (2000) bow and stern squat with trim
// correction, applicable to restricted channels and canals. Propeller,
// bulbous-bow and transom-stern coefficients enter the hull parameter Ktr.
func (e *Estimator) ankudinov(v float64, r *Result) {
	st := e.st
	d := st.Channel.Depth()

	kps := 0.15 // single screw
	if st.Vessel.Npro != 1 {
		kps = 0.13
	}
	phu := 1.7*st.CB*(st.Vessel.B*st.Tm/(st.Vessel.L*st.Vessel.L)) + 0.004*st.CB*st.CB
	pfnh := math.Pow(r.Fnh, 1.8+0.4*r.Fnh)
	pht := 1 + 0.35/(st.Ukc*st.Ukc)
	sh := st.CB * st.Tm * st.Channel.HT * st.As / st.Ach / (d * d)
	pch1 := 1.0
	if st.Channel.HT != 0 {
		pch1 = 1 + 10*sh - 1.5*(1+sh)*math.Sqrt(sh)
	}
	sab := st.Vessel.L * (1 + kps) * phu * pfnh * pht * pch1

	kpt := 0.15
	if st.Vessel.Npro != 1 {
		kpt = 0.20
	}
	kbt := 0.0
	if st.Vessel.BulbousBow {
		kbt = 0.1
	}
	ktrt := 0.0
	if st.Vessel.TransomStern {
		ktrt = 0.04
	}
	kt1t := (st.Vessel.Ts - st.Vessel.Tb) / (st.Vessel.Ts + st.Vessel.Tb)
	ktr := math.Pow(st.CB, 2+0.8*pch1/st.CB) - (0.15*kps + kpt) - (kbt + ktrt + kt1t)
	phtm := 1 - math.Exp(2.5*(1-st.Ukc)/r.Fnh)
	pch2 := 1.0
	if st.Channel.HT != 0 {
		pch2 = 1 - 5*sh
	}
	trim := -1.7 * st.Vessel.L * phu * pfnh * phtm * ktr * pch2
	r.Trim = trim

	switch {
	case st.Channel.HT == 0:
		r.AnkudinovBow = 0
		r.AnkudinovStern = 0
	case st.Channel.HT < d:
		r.AnkudinovBow = sab - 0.5*trim
		r.AnkudinovStern = sab + 0.5*trim
	default:
		bow := sab - 0.5*trim
		stern := sab + 0.5*trim
		if st.Ukc < 1.2 && st.CB > 0.8 && v/mPerKnot > 7 {
			bow = 0
			stern = 0
		}
		r.AnkudinovBow = bow
		r.AnkudinovStern = stern
	}
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
