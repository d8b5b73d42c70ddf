// Package grounding finds the highest speed at which a vessel's underkeel
// clearance survives its own squat plus a safety margin.
package grounding

import (
	"errors"

	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/squat"
)

// Params tunes the speed scan. The defaults match the reference scenarios;
// a finer resolution trades cost for granularity, nothing else.
type Params struct {
	Vmax    float64 // upper bound of the sampled range (m/s)
	Samples int     // number of samples over (0, Vmax]
}

const (
	defaultVmax    = 20.0
	defaultSamples = 1000
	vFirst         = 0.01 // lowest sampled speed (m/s); zero is outside the squat domain
)

// BoundReason states which condition ended the scan.
type BoundReason int

const (
	// ClearanceExhausted: the remaining clearance went negative, a genuine
	// grounding bound.
	ClearanceExhausted BoundReason = iota
	// LimitSpeed: the scan passed the channel limit speed first; the limit
	// speed is the effective ceiling, not the reported sample.
	LimitSpeed
	// FroudeLimited: the squat formulas left their domain (depth Froude
	// number reached 1) before either bound; the scan cannot see past it.
	FroudeLimited
	// RangeExhausted: the sampled range ended with clearance to spare.
	RangeExhausted
)

func (r BoundReason) String() string {
	switch r {
	case ClearanceExhausted:
		return "clearance-exhausted"
	case LimitSpeed:
		return "limit-speed"
	case FroudeLimited:
		return "froude-limited"
	case RangeExhausted:
		return "range-exhausted"
	}
	return "unknown"
}

// Result holds the outcome of a grounding-speed scan.
type Result struct {
	GroundingSpeed   float64     // first violating sample (m/s)
	SquatAtGrounding float64     // governing squat at that sample (m)
	Reason           BoundReason
	Steps            int // samples evaluated
}

// Bounded reports whether the scan ended on a ceiling other than clearance.
func (r Result) Bounded() bool { return r.Reason != ClearanceExhausted }

// Search scans increasing speeds until the available clearance is exhausted
// or the limit speed is passed, and reports the first violating sample.
//
// The scan is a deterministic linear walk, not a bisection: squat couples
// back into the stopping rule each step, and the branch conditions of the
// squat formulas do not guarantee a monotonic clearance curve, so the
// first violation is the defined answer. Resolution is bounded by the
// sample spacing.
//
// A first sample that already violates clearance is a valid, degenerate
// result. A DomainError from the squat formulas ends the scan at that
// sample (FroudeLimited); any other error aborts.
func Search(est *squat.Estimator, st *hydro.State, p Params) (Result, error) {
	if p.Vmax <= 0 {
		p.Vmax = defaultVmax
	}
	if p.Samples < 2 {
		p.Samples = defaultSamples
	}

	zGiven := st.StaticClearance()
	margin := st.Channel.SafetyMargin
	speedAt := func(i int) float64 {
		return vFirst + float64(i)*(p.Vmax-vFirst)/float64(p.Samples-1)
	}

	i := 0
	v := speedAt(0)
	sq, err := est.Squat(v)
	if err != nil {
		return froudeOrFail(Result{GroundingSpeed: v, Steps: 1}, err)
	}
	diff := zGiven - sq - margin
	lastSquat := sq

	for diff >= 0 && v <= st.Vlim {
		i++
		if i >= p.Samples {
			return Result{
				GroundingSpeed:   v,
				SquatAtGrounding: lastSquat,
				Reason:           RangeExhausted,
				Steps:            i,
			}, nil
		}
		v = speedAt(i)
		sq, err = est.Squat(v)
		if err != nil {
			return froudeOrFail(Result{
				GroundingSpeed:   v,
				SquatAtGrounding: lastSquat,
				Steps:            i + 1,
			}, err)
		}
		diff = zGiven - sq - margin
		lastSquat = sq
	}

	res := Result{
		GroundingSpeed:   v,
		SquatAtGrounding: sq,
		Reason:           ClearanceExhausted,
		Steps:            i + 1,
	}
	if v > st.Vlim {
		res.Reason = LimitSpeed
	}
	return res, nil
}

// froudeOrFail turns a squat DomainError into a FroudeLimited result and
// propagates everything else.
func froudeOrFail(res Result, err error) (Result, error) {
	var de *hydro.DomainError
	if errors.As(err, &de) {
		res.Reason = FroudeLimited
		return res, nil
	}
	return Result{}, err
}
