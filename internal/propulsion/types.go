// Package propulsion estimates total hull resistance, required propulsion
// power and the fuel/emission profile of an inland or maritime vessel.
//
// The resistance model follows Holtrop & Mennen (1982) with a Karpov-style
// shallow-water speed correction; the emission model applies engine-load
// dependent factors with construction-year stage and weight-class
// corrections. The squat/grounding core consumes this package only through
// TotalResistance and TotalPowerRequired.
package propulsion

import (
	"fmt"
	"math"

	"github.com/rpipeau3d/fairgo/internal/hydro"
)

// VesselType selects the wake fraction and thrust deduction estimates used
// for the propulsive efficiency.
type VesselType string

const (
	Inland    VesselType = "Inland"    // riverboat
	Tanker    VesselType = "Tanker"    // tankers and bulk carriers
	Container VesselType = "Container"
	RoRo      VesselType = "RoRo"
)

// Params holds the engine and hull-form inputs. Zero-valued optional fields
// take the documented defaults during New.
type Params struct {
	PInstalled float64    `json:"p_installed"`  // installed engine power (kW)
	LW         int        `json:"l_w"`          // weight class 1..3
	CYear      int        `json:"c_year"`       // engine construction year
	PHotel     float64    `json:"p_hotel"`      // hotel load (kW); derived from PHotelPerc when 0
	PHotelPerc float64    `json:"p_hotel_perc"` // hotel load as fraction of PInstalled (default 0.05)
	Nu         float64    `json:"nu"`           // kinematic viscosity (m^2/s, default 1e-6)
	EtaO       float64    `json:"eta_o"`        // open-water propeller efficiency (default 0.4)
	EtaR       float64    `json:"eta_r"`        // relative rotative efficiency (default 1.0)
	EtaT       float64    `json:"eta_t"`        // transmission efficiency (default 0.98)
	EtaG       float64    `json:"eta_g"`        // gearing efficiency (default 0.96)
	CStern     float64    `json:"c_stern"`      // afterbody shape coefficient (default 0)
	CBB        float64    `json:"c_bb"`         // bulbous bow breadth coefficient (default 0.2, Kracht 1970)
	OneK2      float64    `json:"one_k2"`       // appendage resistance factor 1+k2 (default 2.5)
	VesselType VesselType `json:"vessel_type"`  // default Inland
	SAPP1      float64    `json:"s_app1"`       // appendage wetted area, fraction of hull area (default 0.05)
	HB1        float64    `json:"h_b1"`         // bulb centre height, fraction of mean draught (default 0.2)
	AT1        float64    `json:"a_t1"`         // transom area, fraction of B*T (default 0.2)
	DS         float64    `json:"d_s"`          // propeller diameter (m); estimated from draught when 0
}

// PowerDemand decomposes the power requirement at one operating point (kW).
type PowerDemand struct {
	Propulsion float64 `json:"propulsion"` // delivered to the shafts
	Total      float64 `json:"total"`      // propulsion plus hotel load
	Installed  float64 `json:"installed"`  // nameplate power
}

// EmissionRates holds instantaneous emission rates (g/s).
type EmissionRates struct {
	CO2  float64 `json:"co2"`
	PM10 float64 `json:"pm10"`
	NOx  float64 `json:"nox"`
}

// FuelUse holds diesel consumption rates (g/s): against the reference
// specific fuel consumption and corrected for the engine's construction
// year.
type FuelUse struct {
	Reference     float64 `json:"reference"`
	YearCorrected float64 `json:"year_corrected"`
}

// Engine is a pure resistance/power/emission evaluator for one scenario.
// All hull-form constants are derived once in New; every method is a pure
// function of (speed, effective depth), safe for concurrent use.
type Engine struct {
	p  Params
	st *hydro.State

	rhoW float64 // water density (kg/m^3)
	vol  float64 // displaced volume (m^3)
	cp   float64 // prismatic coefficient
	lr   float64 // run length (m)
	s    float64 // hull wetted surface (m^2)
	sApp float64 // appendage wetted surface (m^2)
	abt  float64 // bulb transverse area (m^2), 0 without bulbous bow
	at   float64 // transom transverse area (m^2), 0 without transom stern
	hb   float64 // bulb centre height above keel (m)
	tf   float64 // forward draught (m)
}

// New derives the hull-form constants for resistance estimation. The
// vessel/channel state must already be initialized.
func New(st *hydro.State, p Params) (*Engine, error) {
	if p.PInstalled <= 0 {
		return nil, fmt.Errorf("propulsion: installed power must be positive, got %g", p.PInstalled)
	}
	if p.LW == 0 {
		p.LW = 3
	}
	if p.LW < 1 || p.LW > 3 {
		return nil, fmt.Errorf("propulsion: weight class must be 1..3, got %d", p.LW)
	}
	if p.CYear == 0 {
		p.CYear = 1990
	}
	if p.PHotelPerc == 0 {
		p.PHotelPerc = 0.05
	}
	if p.PHotel == 0 {
		p.PHotel = p.PHotelPerc * p.PInstalled
	}
	if p.Nu == 0 {
		p.Nu = 1e-6
	}
	if p.EtaO == 0 {
		p.EtaO = 0.4
	}
	if p.EtaR == 0 {
		p.EtaR = 1.0
	}
	if p.EtaT == 0 {
		p.EtaT = 0.98
	}
	if p.EtaG == 0 {
		p.EtaG = 0.96
	}
	if p.CBB == 0 {
		p.CBB = 0.2
	}
	if p.OneK2 == 0 {
		p.OneK2 = 2.5
	}
	if p.VesselType == "" {
		p.VesselType = Inland
	}
	if p.SAPP1 == 0 {
		p.SAPP1 = 0.05
	}
	if p.HB1 == 0 {
		p.HB1 = 0.2
	}
	if p.AT1 == 0 {
		p.AT1 = 0.2
	}
	if p.DS == 0 {
		p.DS = 0.7 * st.Tm
	}

	e := &Engine{
		p:    p,
		st:   st,
		rhoW: st.Channel.Rho * 1000,
		vol:  st.Disp,
		cp:   st.CB / st.Vessel.CM,
		tf:   st.Vessel.Tb,
	}
	v := st.Vessel

	// Run length with the centre of buoyancy taken amidships.
	e.lr = v.L * (1 - e.cp)

	if v.BulbousBow {
		e.abt = p.CBB * v.B * st.Tm * v.CM
		e.hb = p.HB1 * st.Tm
	}
	if v.TransomStern {
		e.at = p.AT1 * v.B * st.Tm
	}

	// Holtrop wetted-surface estimate.
	e.s = v.L*(2*st.Tm+v.B)*math.Sqrt(v.CM)*
		(0.453+0.4425*st.CB-0.2862*v.CM-0.003467*v.B/st.Tm+0.3696*v.CWP) +
		2.38*e.abt/st.CB
	e.sApp = p.SAPP1 * e.s

	return e, nil
}

// Installed returns the nameplate engine power (kW).
func (e *Engine) Installed() float64 { return e.p.PInstalled }
