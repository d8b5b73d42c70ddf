// Command diag runs the built-in scenarios end to end and prints the
// derived channel state and a short profile table. Used to eyeball the
// model against the documented reference numbers.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rpipeau3d/fairgo/internal/grounding"
	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/profile"
	"github.com/rpipeau3d/fairgo/internal/propulsion"
	"github.com/rpipeau3d/fairgo/internal/scenario"
	"github.com/rpipeau3d/fairgo/internal/squat"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	for _, sc := range []scenario.Scenario{scenario.Reference(), scenario.Motorvessel()} {
		fmt.Printf("=== %s ===\n", sc.Name)

		st, err := hydro.Initialize(sc.Vessel, sc.Channel)
		if err != nil {
			fmt.Println("ERROR initializing channel:", err)
			os.Exit(1)
		}
		fmt.Printf("Channel type: %s\n", st.Type())
		fmt.Printf("Effective width Weff: %.2f m\n", st.Weff)
		fmt.Printf("Limit speed: %.2f m/s\n", st.Vlim)
		fmt.Printf("C_B=%.4f C_WP=%.4f C_M=%.4f Ukc=%.2f Ach=%.1f m2\n",
			st.CB, st.Vessel.CWP, st.Vessel.CM, st.Ukc, st.Ach)

		est := squat.New(st)
		if sq, err := est.Squat(st.Vlim); err != nil {
			fmt.Printf("Squat at Vlim: outside formula domain (%v)\n", err)
		} else {
			fmt.Printf("Squat at Vlim: %.2f m\n", sq)
		}

		ground, err := grounding.Search(est, st, grounding.Params{Vmax: sc.Run.Vmax, Samples: sc.Run.Samples})
		if err != nil {
			fmt.Println("ERROR in grounding scan:", err)
			os.Exit(1)
		}
		if ground.Reason == grounding.LimitSpeed {
			fmt.Println("Grounding velocity greater than limit speed")
		} else {
			fmt.Printf("Grounding velocity: %.2f m/s (%s)\n", ground.GroundingSpeed, ground.Reason)
			fmt.Printf("Squat: %.2f m\n", ground.SquatAtGrounding)
		}

		eng, err := propulsion.New(st, sc.Engine)
		if err != nil {
			fmt.Println("ERROR in propulsion setup:", err)
			os.Exit(1)
		}

		records, err := profile.Generate(context.Background(), est, st, eng,
			profile.Request{Vmax: min(st.Vlim, ground.GroundingSpeed), Samples: 11}, logger)
		if err != nil {
			fmt.Println("ERROR generating profile:", err)
			os.Exit(1)
		}

		fmt.Printf("%8s %8s %10s %10s %10s %10s\n", "v(m/s)", "squat(m)", "R(kN)", "Pp(kW)", "Ptot(kW)", "CO2(g/s)")
		for _, r := range records {
			fmt.Printf("%8.2f %8.3f %10.1f %10.1f %10.1f %10.2f\n",
				r.Speed, r.Squat, r.Resistance, r.Power.Propulsion, r.Power.Total, r.Emissions.CO2)
		}
		fmt.Println()
	}
}
