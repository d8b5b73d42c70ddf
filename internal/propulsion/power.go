package propulsion

// wakeAndThrust estimates the wake fraction w and thrust deduction t for
// the configured vessel type. Single-screw regressions for seagoing hulls,
// a twin-screw estimate for RoRo, and a conservative inland estimate.
func (e *Engine) wakeAndThrust() (w, t float64) {
	cb := e.st.CB
	switch e.p.VesselType {
	case Tanker:
		w = 0.5*cb - 0.05
		t = 0.6 * w * (1 + 0.67*w)
	case Container:
		w = 0.45*cb - 0.05
		t = 0.5 * w
	case RoRo:
		w = 0.55*cb - 0.2
		t = 0.8 * w * (1 + 0.25*w)
	default: // Inland
		w = 0.4*cb - 0.1
		t = 0.6 * w
	}
	if w < 0 {
		w = 0
	}
	if t < 0 {
		t = 0
	}
	return w, t
}

// TotalPowerRequired returns the power decomposition at speed v (m/s) and
// effective depth hEff (m): power delivered to the propellers, total power
// including the hotel load, and the installed power for reference.
func (e *Engine) TotalPowerRequired(v, hEff float64) (PowerDemand, error) {
	rTot, err := e.TotalResistance(v, hEff)
	if err != nil {
		return PowerDemand{}, err
	}

	w, t := e.wakeAndThrust()
	etaH := (1 - t) / (1 - w)

	// Effective power in kW: resistance (kN) times speed (m/s).
	pe := rTot * v
	pd := pe / (e.p.EtaO * e.p.EtaR * etaH)
	pProp := pd / (e.p.EtaT * e.p.EtaG)

	return PowerDemand{
		Propulsion: pProp,
		Total:      pProp + e.p.PHotel,
		Installed:  e.p.PInstalled,
	}, nil
}
