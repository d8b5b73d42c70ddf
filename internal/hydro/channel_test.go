package hydro

import (
	"errors"
	"math"
	"testing"
)

// Reference vessels used across the hydro tests. Derived values are traced
// from the published reference scenarios.
func cargoVessel() Vessel {
	return Vessel{L: 205, B: 32, Tb: 10, Ts: 10, Displ: 37500, CWP: 0.75, CM: 0.98,
		Npro: 1, BulbousBow: true, TransomStern: true}
}

func cargoChannel() Channel {
	return Channel{Rho: 1.0, Dwl: 0, H0: 30, HT: 0, W: 400, Nb: 0, SafetyMargin: 0.2}
}

func motorVessel() Vessel {
	return Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2}
}

func within(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.IsNaN(got) {
		t.Fatalf("%s = NaN, want %.12g", name, want)
	}
	if math.Abs(got-want) > tol*math.Max(1, math.Abs(want)) {
		t.Errorf("%s = %.12g, want %.12g", name, got, want)
	}
}

// TestInitializeReference checks the full derived state for the cargo
// reference case (unrestricted channel, W=400 m, h0=30 m).
func TestInitializeReference(t *testing.T) {
	st, err := Initialize(cargoVessel(), cargoChannel())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	within(t, "Tm", st.Tm, 10, 1e-12)
	within(t, "Ukc", st.Ukc, 3, 1e-12)
	within(t, "CB", st.CB, 0.571646341463, 1e-9)
	within(t, "Weff", st.Weff, 362.380085699, 1e-9)
	within(t, "As", st.As, 313.6, 1e-9)
	within(t, "Ach", st.Ach, 10871.40257, 1e-8)
	within(t, "Kch", st.Kch, 0.839254417241, 1e-9)
	within(t, "Kc", st.Kc, 0.79463852142, 1e-9)
	within(t, "Hm", st.Hm, 30, 1e-9)
	within(t, "HmT", st.HmT, 30, 1e-9)
	within(t, "Vcr", st.Vcr, 14.3975556811, 1e-9)

	if st.Vlim != st.Vcr {
		t.Errorf("Vlim = %g, want Vcr %g (reduction factor not applied)", st.Vlim, st.Vcr)
	}
	if st.Type() != Unrestricted {
		t.Errorf("Type = %v, want Unrestricted", st.Type())
	}
	if st.Weff >= st.Channel.W {
		t.Errorf("Weff %g should be below channel width %g for this scenario", st.Weff, st.Channel.W)
	}
	if st.Weff <= 0 || st.Vlim <= 0 {
		t.Errorf("Weff and Vlim must be positive, got %g and %g", st.Weff, st.Vlim)
	}
}

// TestInitializeDerivedCoefficients checks that absent waterplane/midship
// coefficients are filled from the block coefficient regressions and stored
// back on the state.
func TestInitializeDerivedCoefficients(t *testing.T) {
	st, err := Initialize(motorVessel(), Channel{Rho: 1.0, H0: 3, W: 150, SafetyMargin: 0.2})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	within(t, "CB", st.CB, 0.850154798762, 1e-9)
	within(t, "CWP", st.Vessel.CWP, 0.900103199174, 1e-9)
	within(t, "CM", st.Vessel.CM, 0.996018975782, 1e-9)
	within(t, "Weff", st.Weff, 76.7755533851, 1e-9)
	within(t, "As", st.As, 18.92436054, 1e-8)
	within(t, "Vcr", st.Vcr, 4.35307797973, 1e-9)
}

// TestInitializeSections checks the restricted and canal branches: section
// area, blockage coefficient and the blended critical speed.
func TestInitializeSections(t *testing.T) {
	tests := []struct {
		name     string
		channel  Channel
		chanType ChannelType
		ach      float64
		kc       float64
		hm       float64
		hmT      float64
		vcr      float64
	}{
		{
			name:     "restricted trench",
			channel:  Channel{Rho: 1.0, H0: 3, HT: 1.5, W: 60, Nb: 1, SafetyMargin: 0.2},
			chanType: Restricted,
			ach:      189, kc: 0.622579386608,
			hm: 2.863636364, hmT: 2.931818182, vcr: 3.82109170633,
		},
		{
			name:     "canal",
			channel:  Channel{Rho: 1.0, H0: 3, HT: 3, W: 50, Nb: 2, SafetyMargin: 0.2},
			chanType: Canal,
			ach:      168, kc: 0.60049041944,
			hm: 2.709677419, hmT: 2.709677419, vcr: 3.09598881215,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Initialize(motorVessel(), tt.channel)
			if err != nil {
				t.Fatalf("Initialize failed: %v", err)
			}
			if st.Type() != tt.chanType {
				t.Errorf("Type = %v, want %v", st.Type(), tt.chanType)
			}
			within(t, "Ach", st.Ach, tt.ach, 1e-9)
			within(t, "Kc", st.Kc, tt.kc, 1e-9)
			within(t, "Hm", st.Hm, tt.hm, 1e-8)
			within(t, "HmT", st.HmT, tt.hmT, 1e-8)
			within(t, "Vcr", st.Vcr, tt.vcr, 1e-9)
		})
	}
}

// TestChannelTypePartition verifies that exactly one classification holds
// for each trench height.
func TestChannelTypePartition(t *testing.T) {
	tests := []struct {
		ht   float64
		w    float64
		nb   float64
		want ChannelType
	}{
		{ht: 0, w: 150, nb: 0, want: Unrestricted},
		{ht: 1.5, w: 60, nb: 1, want: Restricted},
		{ht: 3, w: 50, nb: 2, want: Canal},
	}
	for _, tt := range tests {
		st, err := Initialize(motorVessel(), Channel{Rho: 1.0, H0: 3, HT: tt.ht, W: tt.w, Nb: tt.nb})
		if err != nil {
			t.Fatalf("Initialize(ht=%g) failed: %v", tt.ht, err)
		}
		if st.Type() != tt.want {
			t.Errorf("ht=%g: Type = %v, want %v", tt.ht, st.Type(), tt.want)
		}
	}
}

// TestTrenchClamp: a trench height above the water column is clamped down
// to it, turning the section into a canal rather than failing.
func TestTrenchClamp(t *testing.T) {
	st, err := Initialize(motorVessel(), Channel{Rho: 1.0, H0: 3, HT: 5, W: 50, Nb: 2})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if st.Channel.HT != 3 {
		t.Errorf("HT = %g, want clamped to 3", st.Channel.HT)
	}
	if st.Type() != Canal {
		t.Errorf("Type = %v, want Canal after clamp", st.Type())
	}
}

// TestInitializeConfigErrors exercises the geometry cross-checks. Each
// contradiction must surface as a ConfigError, never a silent default.
func TestInitializeConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		vessel  Vessel
		channel Channel
	}{
		{
			name:    "wide channel with trench",
			vessel:  cargoVessel(),
			channel: Channel{Rho: 1.0, H0: 30, HT: 1, W: 400},
		},
		{
			name:    "wide channel with bank slope",
			vessel:  cargoVessel(),
			channel: Channel{Rho: 1.0, H0: 30, HT: 0, W: 400, Nb: 1},
		},
		{
			name:    "narrow channel without trench",
			vessel:  motorVessel(),
			channel: Channel{Rho: 1.0, H0: 3, HT: 0, W: 50},
		},
		{
			name:    "negative bank slope",
			vessel:  motorVessel(),
			channel: Channel{Rho: 1.0, H0: 3, HT: 1.5, W: 50, Nb: -1},
		},
		{
			name:    "no propellers",
			vessel:  Vessel{L: 85, B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 0},
			channel: Channel{Rho: 1.0, H0: 3, W: 150},
		},
		{
			name:    "zero length",
			vessel:  Vessel{B: 9.5, Tb: 2, Ts: 2, Displ: 1373, Npro: 2},
			channel: Channel{Rho: 1.0, H0: 3, W: 150},
		},
		{
			name:    "zero draught",
			vessel:  Vessel{L: 85, B: 9.5, Displ: 1373, Npro: 2},
			channel: Channel{Rho: 1.0, H0: 3, W: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Initialize(tt.vessel, tt.channel)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			t.Logf("got expected error: %v", err)
		})
	}
}

// TestInitializeBlockageDomain: a midship section larger than twice the
// channel section pushes the arccos argument below -1, which is not a
// sailable geometry and must fail loudly instead of propagating NaN.
func TestInitializeBlockageDomain(t *testing.T) {
	_, err := Initialize(motorVessel(), Channel{Rho: 1.0, H0: 3, HT: 3, W: 2})
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
}

// TestInitializeIdempotent: re-running Initialize with unchanged inputs
// must reproduce bit-identical derived state.
func TestInitializeIdempotent(t *testing.T) {
	a, err := Initialize(cargoVessel(), cargoChannel())
	if err != nil {
		t.Fatalf("first Initialize failed: %v", err)
	}
	b, err := Initialize(cargoVessel(), cargoChannel())
	if err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	if *a != *b {
		t.Errorf("derived state differs between identical initializations:\n%+v\n%+v", a, b)
	}
}

func TestStaticClearance(t *testing.T) {
	st, err := Initialize(cargoVessel(), cargoChannel())
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if got := st.StaticClearance(); got != 20 {
		t.Errorf("StaticClearance = %g, want 20", got)
	}
}
