package hydro

// Vessel holds the hull geometry for one scenario. Immutable once built;
// optional coefficients left at zero are derived during Initialize.
type Vessel struct {
	L            float64 `json:"l"`             // length between perpendiculars (m)
	B            float64 `json:"b"`             // beam (m)
	Tb           float64 `json:"tb"`            // bow draught (m)
	Ts           float64 `json:"ts"`            // stern draught (m)
	Displ        float64 `json:"displ"`         // load displacement (t)
	CWP          float64 `json:"c_wp"`          // waterplane coefficient; derived from block coefficient when 0
	CM           float64 `json:"c_m"`           // midship section coefficient; derived from block coefficient when 0
	Npro         int     `json:"npro"`          // number of propellers
	BulbousBow   bool    `json:"bulbous_bow"`   // inland ships generally sail without one
	TransomStern bool    `json:"transom_stern"`
}

// Tm returns the mean draught (m).
func (v Vessel) Tm() float64 { return (v.Tb + v.Ts) / 2 }

// Channel holds the waterway cross-section for one scenario. Immutable once
// built; HT above the water column is clamped down during Initialize.
//
// The channel type is never chosen directly, it follows from HT:
// HT = 0 is an unrestricted channel, 0 < HT < H0+Dwl a restricted channel
// (trench), HT = H0+Dwl a canal.
type Channel struct {
	Rho          float64 `json:"rho"`           // water density (t/m^3)
	Dwl          float64 `json:"dwl"`           // design water level above reference (m)
	H0           float64 `json:"h0"`            // water depth (m)
	HT           float64 `json:"ht"`            // trench height (m), 0 <= HT <= H0+Dwl
	W            float64 `json:"w"`             // channel width (m)
	Nb           float64 `json:"nb"`            // inverse bank slope (m/m)
	SafetyMargin float64 `json:"safety_margin"` // clearance reserved above the bed (m)
}

// Depth returns the total water column H0+Dwl (m).
func (c Channel) Depth() float64 { return c.H0 + c.Dwl }

// ChannelType classifies a waterway cross-section by its trench height.
type ChannelType int

const (
	Unrestricted ChannelType = iota // open water, bank influence negligible
	Restricted                      // dredged trench inside a wider section
	Canal                           // banks reach the waterline
)

func (t ChannelType) String() string {
	switch t {
	case Unrestricted:
		return "unrestricted"
	case Restricted:
		return "restricted"
	case Canal:
		return "canal"
	}
	return "unknown"
}

// State is the derived channel state produced by Initialize. It is immutable;
// callers must re-run Initialize after changing any vessel or channel field.
// Safe for concurrent reads across goroutines.
type State struct {
	Vessel  Vessel  // normalized copy: CWP/CM filled in when they were 0
	Channel Channel // normalized copy: HT clamped to the water column

	Tm   float64 // mean draught (m)
	Ukc  float64 // underkeel clearance ratio (H0+Dwl)/Tm
	CB   float64 // block coefficient
	Disp float64 // displaced volume (m^3)
	As   float64 // midship section area (m^2)
	Weff float64 // effective channel width (m)
	Ach  float64 // channel section area (m^2)
	Kch  float64 // critical-speed coefficient, unrestricted section
	Kc   float64 // critical-speed coefficient, restricted section
	Hm   float64 // mean water depth, rectangular section (m)
	HmT  float64 // mean water depth over the trench (m)
	Vcr  float64 // critical speed (m/s)
	Vlim float64 // limit speed (m/s)
}

// Type derives the channel classification from the clamped trench height.
func (s *State) Type() ChannelType {
	switch {
	case s.Channel.HT == 0:
		return Unrestricted
	case s.Channel.HT < s.Channel.Depth():
		return Restricted
	default:
		return Canal
	}
}

// StaticClearance returns the underkeel clearance at rest, (H0+Dwl)-Tm (m).
func (s *State) StaticClearance() float64 { return s.Channel.Depth() - s.Tm }
