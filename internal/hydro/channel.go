package hydro

import "math"

// Gravitational acceleration (m/s^2).
const g = 9.81

// Initialize derives the channel state for a vessel/channel pair: block and
// section coefficients, effective width, channel section area, critical
// speed and limit speed.
//
// The computation follows the empirical waterway formulation used for
// inland shipping studies: the effective width Weff = 7.04*B/C_B^0.85 marks
// the point beyond which bank proximity stops mattering, and the critical
// speed blends the unrestricted-section coefficient Kch with the
// restricted-section coefficient Kc in proportion to the trench height.
//
// Initialize is deterministic and has no side effects; calling it twice
// with the same inputs yields bit-identical state.
func Initialize(v Vessel, c Channel) (*State, error) {
	if err := checkPositive("vessel.l", v.L); err != nil {
		return nil, err
	}
	if err := checkPositive("vessel.b", v.B); err != nil {
		return nil, err
	}
	if err := checkPositive("vessel.displ", v.Displ); err != nil {
		return nil, err
	}
	if err := checkPositive("channel.rho", c.Rho); err != nil {
		return nil, err
	}
	if err := checkPositive("channel.w", c.W); err != nil {
		return nil, err
	}
	tm := v.Tm()
	if err := checkPositive("vessel.tb+ts", tm); err != nil {
		return nil, err
	}
	if err := checkPositive("channel.h0+dwl", c.Depth()); err != nil {
		return nil, err
	}
	if v.Npro <= 0 {
		return nil, &ConfigError{Field: "vessel.npro", Value: float64(v.Npro), Reason: "must be greater than 0"}
	}

	d := c.Depth()
	cb := v.Displ / (v.L * v.B * tm * c.Rho)
	if v.CWP == 0 {
		v.CWP = (1 + 2*cb) / 3
	}
	if v.CM == 0 {
		v.CM = 1.006 - 0.0056*math.Pow(cb, -3.56)
	}

	st := &State{
		Tm:   tm,
		Ukc:  d / tm,
		CB:   cb,
		Disp: v.Displ / c.Rho,
		As:   v.CM * v.B * tm,
		Weff: 7.04 * v.B / math.Pow(cb, 0.85),
	}

	// The trench can never rise above the water column.
	if c.HT > d {
		c.HT = d
	}

	if c.W <= st.Weff {
		// Restricted channel or canal: bank proximity matters, the trench
		// geometry and bank slope define the section.
		if c.HT <= 0 {
			return nil, &ConfigError{Field: "channel.ht", Value: c.HT,
				Reason: "width at or below effective width requires a positive trench height"}
		}
		if c.Nb < 0 {
			return nil, &ConfigError{Field: "channel.nb", Value: c.Nb,
				Reason: "bank slope must be zero or positive"}
		}
		st.Ach = (c.W + c.Nb*d) * d
	} else {
		// Unrestricted channel: only the effective width participates.
		if c.HT != 0 {
			return nil, &ConfigError{Field: "channel.ht", Value: c.HT,
				Reason: "width above effective width requires a zero trench height"}
		}
		if c.Nb != 0 {
			return nil, &ConfigError{Field: "channel.nb", Value: c.Nb,
				Reason: "width above effective width requires a zero bank slope"}
		}
		st.Ach = st.Weff * d
	}

	st.Kch = 0.58 * math.Pow(d*v.L/v.B/tm, 0.125)

	// Restricted-section coefficient via the Schijf/blockage relation.
	// The arccos argument leaves [-1,1] only when the midship section
	// exceeds the channel section, which is not a sailable geometry.
	arg := 1 - st.As/st.Ach
	if arg < -1 || arg > 1 {
		return nil, &DomainError{Op: "channel coefficient Kc", Value: arg,
			Reason: "midship section exceeds channel section"}
	}
	st.Kc = math.Pow(2*math.Cos((math.Pi+math.Acos(arg))/3), 1.5)

	if c.W <= st.Weff {
		st.Hm = st.Ach / (c.W + 2*c.Nb*d)
	} else {
		st.Hm = st.Ach / (st.Weff + 2*c.Nb*d)
	}
	st.HmT = d - c.HT*(1-st.Hm/d)

	switch {
	case c.HT == 0:
		st.Vcr = st.Kch * math.Sqrt(g*d)
	case c.HT < d:
		st.Vcr = (st.Kch*(1-c.HT/d) + st.Kc*c.HT/d) * math.Sqrt(g*st.HmT)
	default:
		st.Vcr = st.Kc * math.Sqrt(g*st.HmT)
	}

	// The limit speed is kept equal to the critical speed. The literature
	// suggests Vlim = 0.9*Vcr; commissioning has not confirmed the factor.
	st.Vlim = st.Vcr

	st.Vessel = v
	st.Channel = c
	return st, nil
}

func checkPositive(field string, value float64) error {
	if value <= 0 {
		return &ConfigError{Field: field, Value: value, Reason: "must be greater than 0"}
	}
	return nil
}
