// Package profile sweeps a speed range and produces the squat, resistance,
// power, fuel and emission profile of one vessel/channel scenario.
package profile

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/propulsion"
	"github.com/rpipeau3d/fairgo/internal/squat"
)

// Propulsor is the propulsion collaborator the sweep consumes. The squat
// core only ever sees the first two calls; the emission call feeds the
// profile rows. propulsion.Engine satisfies it.
type Propulsor interface {
	TotalResistance(v, hEff float64) (float64, error)
	TotalPowerRequired(v, hEff float64) (propulsion.PowerDemand, error)
	EmissionRates(v, hEff float64) (propulsion.EmissionRates, propulsion.FuelUse, error)
}

// Record is one row of the speed profile.
type Record struct {
	Speed          float64                  `json:"speed"`           // m/s
	Squat          float64                  `json:"squat"`           // m
	EffectiveDepth float64                  `json:"effective_depth"` // m, water column minus squat
	Resistance     float64                  `json:"resistance"`      // kN
	Power          propulsion.PowerDemand   `json:"power"`           // kW
	Emissions      propulsion.EmissionRates `json:"emissions"`       // g/s
	Fuel           propulsion.FuelUse       `json:"fuel"`            // g/s
}

// Request bounds one profile sweep.
type Request struct {
	Vmax    float64 // top sampled speed (m/s), normally min(limit, grounding speed)
	Samples int
}

const vFirst = 0.01 // m/s, matches the grounding scan's lowest sample

// Generate evaluates the profile over linspace(0.01, req.Vmax, req.Samples).
// Samples are independent once the channel state is initialized, so they
// are evaluated in parallel goroutines bounded by a semaphore. The result
// stays ordered by speed. The first per-sample failure aborts the sweep.
func Generate(ctx context.Context, est *squat.Estimator, st *hydro.State, prop Propulsor, req Request, logger *slog.Logger) ([]Record, error) {
	if req.Vmax <= vFirst {
		return nil, fmt.Errorf("profile: top speed %g must exceed %g m/s", req.Vmax, vFirst)
	}
	if req.Samples < 2 {
		req.Samples = 1000
	}

	records := make([]Record, req.Samples)
	errs := make([]error, req.Samples)
	sem := make(chan struct{}, runtime.NumCPU())
	var wg sync.WaitGroup

	for i := 0; i < req.Samples; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			v := vFirst + float64(idx)*(req.Vmax-vFirst)/float64(req.Samples-1)
			rec, err := evaluate(est, st, prop, v)
			if err != nil {
				errs[idx] = fmt.Errorf("sample %d at %.4f m/s: %w", idx, v, err)
				return
			}
			records[idx] = rec
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("profile generated",
		"samples", req.Samples,
		"v_max", req.Vmax,
		"channel_type", st.Type().String(),
	)
	return records, nil
}

// evaluate computes one profile row: squat first, then resistance, power
// and emissions against the squat-reduced effective depth.
func evaluate(est *squat.Estimator, st *hydro.State, prop Propulsor, v float64) (Record, error) {
	sq, err := est.Squat(v)
	if err != nil {
		return Record{}, err
	}
	hEff := st.Channel.Depth() - sq

	rTot, err := prop.TotalResistance(v, hEff)
	if err != nil {
		return Record{}, err
	}
	demand, err := prop.TotalPowerRequired(v, hEff)
	if err != nil {
		return Record{}, err
	}
	em, fuel, err := prop.EmissionRates(v, hEff)
	if err != nil {
		return Record{}, err
	}

	return Record{
		Speed:          v,
		Squat:          sq,
		EffectiveDepth: hEff,
		Resistance:     rTot,
		Power:          demand,
		Emissions:      em,
		Fuel:           fuel,
	}, nil
}
