// Package scenario defines and loads vessel/channel/engine scenarios.
package scenario

import (
	"fmt"
	"log/slog"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/propulsion"
)

// Run bounds the speed scans of one evaluation.
type Run struct {
	Vmax    float64 `json:"vmax"`    // top of the sampled speed range (m/s)
	Samples int     `json:"samples"` // scan resolution
}

// Scenario is one complete evaluation input: a vessel in a waterway
// cross-section with an engine. Geometry consistency is not checked here;
// hydro.Initialize is the single authority for that.
type Scenario struct {
	Name    string            `json:"name"`
	Vessel  hydro.Vessel      `json:"vessel"`
	Channel hydro.Channel     `json:"channel"`
	Engine  propulsion.Params `json:"engine"`
	Run     Run               `json:"run"`
}

// Load reads a scenario file (JSON, YAML or TOML by extension). Missing
// fields fall back to the documented defaults.
func Load(path string, logger *slog.Logger) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("channel.rho", 1.0)
	v.SetDefault("channel.dwl", 0.0)
	v.SetDefault("run.vmax", 20.0)
	v.SetDefault("run.samples", 1000)

	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	var s Scenario
	if err := v.Unmarshal(&s, func(dc *mapstructure.DecoderConfig) { dc.TagName = "json" }); err != nil {
		return Scenario{}, fmt.Errorf("decoding scenario %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}

	logger.Info("scenario loaded",
		"name", s.Name,
		"l", s.Vessel.L,
		"b", s.Vessel.B,
		"h0", s.Channel.H0,
		"w", s.Channel.W,
	)
	return s, nil
}

// Reference returns the built-in cargo/unrestricted-channel reference
// scenario (L=205 m tanker hull in a 400 m wide, 30 m deep waterway).
func Reference() Scenario {
	return Scenario{
		Name: "cargo-unrestricted-w400-h30",
		Vessel: hydro.Vessel{
			L: 205, B: 32, Tb: 10, Ts: 10,
			Displ: 37500, CWP: 0.75, CM: 0.98,
			Npro: 1, BulbousBow: true, TransomStern: true,
		},
		Channel: hydro.Channel{
			Rho: 1.0, Dwl: 0, H0: 30, HT: 0,
			W: 400, Nb: 0, SafetyMargin: 0.2,
		},
		Engine: propulsion.Params{
			PInstalled: 32700, LW: 3, CYear: 2020,
			CStern: 10, CBB: 0.0638, OneK2: 1.5,
			SAPP1: 0.0065, HB1: 0.4, AT1: 0.05,
			VesselType: propulsion.Tanker, DS: 8,
		},
		Run: Run{Vmax: 20, Samples: 1000},
	}
}

// Motorvessel returns the built-in M6 riverboat scenario (85 m motorvessel
// in a 150 m wide, 3 m deep channel).
func Motorvessel() Scenario {
	return Scenario{
		Name: "motorvessel-m6-w150-h3",
		Vessel: hydro.Vessel{
			L: 85, B: 9.5, Tb: 2, Ts: 2,
			Displ: 1373, Npro: 2,
		},
		Channel: hydro.Channel{
			Rho: 1.0, Dwl: 0, H0: 3, HT: 0,
			W: 150, Nb: 0, SafetyMargin: 0.2,
		},
		Engine: propulsion.Params{
			PInstalled: 1070, LW: 3, CYear: 2010,
			VesselType: propulsion.Inland,
		},
		Run: Run{Vmax: 20, Samples: 1000},
	}
}
