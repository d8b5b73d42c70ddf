package grounding

import (
	"math"
	"testing"

	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/squat"
)

func setup(t *testing.T, v hydro.Vessel, c hydro.Channel) (*squat.Estimator, *hydro.State) {
	t.Helper()
	st, err := hydro.Initialize(v, c)
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	return squat.New(st), st
}

func within(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %.12g, want %.12g", name, got, want)
	}
}

func TestSearchLimitSpeedBound(t *testing.T) {
	tests := []struct {
		name    string
		vessel  hydro.Vessel
		channel hydro.Channel
		speed   float64
		squat   float64
		steps   int
	}{
		{
			name: "cargo deep channel",
			vessel: hydro.Vessel{L: 205, B: 32, Tb: 10, Ts: 10, Displ: 37500,
				CWP: 0.75, CM: 0.98, Npro: 1, BulbousBow: true, TransomStern: true},
			channel: hydro.Channel{Rho: 1.0, H0: 30, W: 400, SafetyMargin: 0.2},
			speed:   14.4172072072, squat: 2.70677033229, steps: 721,
		},
		{
			name:    "motorvessel shallow channel",
			vessel:  hydro.Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
			channel: hydro.Channel{Rho: 1.0, H0: 3, W: 150, SafetyMargin: 0.2},
			speed:   4.37218218218, squat: 0.417013393249, steps: 219,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, st := setup(t, tt.vessel, tt.channel)
			res, err := Search(est, st, Params{})
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if res.Reason != LimitSpeed {
				t.Fatalf("Reason = %v, want %v", res.Reason, LimitSpeed)
			}
			if !res.Bounded() {
				t.Error("LimitSpeed result must report Bounded")
			}
			within(t, "GroundingSpeed", res.GroundingSpeed, tt.speed)
			within(t, "SquatAtGrounding", res.SquatAtGrounding, tt.squat)
			if res.Steps != tt.steps {
				t.Errorf("Steps = %d, want %d", res.Steps, tt.steps)
			}
			// First violating sample sits just past the limit speed.
			if res.GroundingSpeed <= st.Vlim {
				t.Errorf("GroundingSpeed %.6g does not exceed Vlim %.6g", res.GroundingSpeed, st.Vlim)
			}
		})
	}
}

func TestSearchClearanceExhausted(t *testing.T) {
	// Tight water: 0.3 m of static clearance against a 0.2 m margin, so the
	// squat curve crosses the budget well below the limit speed.
	est, st := setup(t,
		hydro.Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
		hydro.Channel{Rho: 1.0, H0: 2.3, W: 150, SafetyMargin: 0.2})

	res, err := Search(est, st, Params{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Reason != ClearanceExhausted {
		t.Fatalf("Reason = %v, want %v", res.Reason, ClearanceExhausted)
	}
	if res.Bounded() {
		t.Error("clearance-exhausted result must not report Bounded")
	}
	within(t, "GroundingSpeed", res.GroundingSpeed, 2.79139139139)
	within(t, "SquatAtGrounding", res.SquatAtGrounding, 0.101932172959)
	if res.Steps != 140 {
		t.Errorf("Steps = %d, want 140", res.Steps)
	}
	if res.GroundingSpeed > st.Vlim {
		t.Errorf("GroundingSpeed %.6g exceeds Vlim %.6g", res.GroundingSpeed, st.Vlim)
	}
	// The reported sample has genuinely spent the clearance.
	if st.StaticClearance()-res.SquatAtGrounding-st.Channel.SafetyMargin >= 0 {
		t.Error("reported sample still has clearance to spare")
	}
}

// TestSearchFroudeLimited: a slender hull in deep water has a limit speed
// above the critical depth Froude speed, so the squat formulas leave their
// domain before either bound is hit.
func TestSearchFroudeLimited(t *testing.T) {
	est, st := setup(t,
		hydro.Vessel{L: 205, B: 10, Tb: 5, Ts: 5, Displ: 6000, Npro: 1},
		hydro.Channel{Rho: 1.0, H0: 30, W: 200, SafetyMargin: 0.2})

	if st.Vlim <= math.Sqrt(9.81*30) {
		t.Fatalf("configuration no longer crosses the critical Froude speed: Vlim=%.6g", st.Vlim)
	}

	res, err := Search(est, st, Params{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Reason != FroudeLimited {
		t.Fatalf("Reason = %v, want %v", res.Reason, FroudeLimited)
	}
	within(t, "GroundingSpeed", res.GroundingSpeed, 17.1585785786)
	// Squat is carried over from the last sample inside the domain.
	within(t, "SquatAtGrounding", res.SquatAtGrounding, 6.47877718511)
	if res.Steps != 858 {
		t.Errorf("Steps = %d, want 858", res.Steps)
	}
}

func TestSearchRangeExhausted(t *testing.T) {
	est, st := setup(t,
		hydro.Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
		hydro.Channel{Rho: 1.0, H0: 3, W: 150, SafetyMargin: 0.2})

	// Cap the range below both the limit speed and the clearance bound.
	res, err := Search(est, st, Params{Vmax: 3, Samples: 50})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Reason != RangeExhausted {
		t.Fatalf("Reason = %v, want %v", res.Reason, RangeExhausted)
	}
	within(t, "GroundingSpeed", res.GroundingSpeed, 3.0)
	within(t, "SquatAtGrounding", res.SquatAtGrounding, 0.139500536081)
	if res.Steps != 50 {
		t.Errorf("Steps = %d, want 50", res.Steps)
	}
}

// TestSearchFirstSampleViolation: a margin larger than the static clearance
// fails on the very first sample. That degenerate result is still reported.
func TestSearchFirstSampleViolation(t *testing.T) {
	est, st := setup(t,
		hydro.Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
		hydro.Channel{Rho: 1.0, H0: 3, W: 150, SafetyMargin: 1.1})

	res, err := Search(est, st, Params{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Reason != ClearanceExhausted {
		t.Fatalf("Reason = %v, want %v", res.Reason, ClearanceExhausted)
	}
	within(t, "GroundingSpeed", res.GroundingSpeed, 0.01)
	if res.Steps != 1 {
		t.Errorf("Steps = %d, want 1", res.Steps)
	}
}

func TestSearchDefaults(t *testing.T) {
	est, st := setup(t,
		hydro.Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
		hydro.Channel{Rho: 1.0, H0: 3, W: 150, SafetyMargin: 0.2})

	// Zero params fall back to the 20 m/s, 1000-sample scan.
	a, err := Search(est, st, Params{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	b, err := Search(est, st, Params{Vmax: 20, Samples: 1000})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if a != b {
		t.Errorf("default scan diverged from explicit parameters: %+v vs %+v", a, b)
	}
}

func TestBoundReasonString(t *testing.T) {
	tests := []struct {
		r    BoundReason
		want string
	}{
		{ClearanceExhausted, "clearance-exhausted"},
		{LimitSpeed, "limit-speed"},
		{FroudeLimited, "froude-limited"},
		{RangeExhausted, "range-exhausted"},
		{BoundReason(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("BoundReason(%d).String() = %q, want %q", tt.r, got, tt.want)
		}
	}
}
