package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/rpipeau3d/fairgo/internal/grounding"
	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/profile"
	"github.com/rpipeau3d/fairgo/internal/propulsion"
	"github.com/rpipeau3d/fairgo/internal/report"
	"github.com/rpipeau3d/fairgo/internal/scenario"
	"github.com/rpipeau3d/fairgo/internal/squat"
)

func main() {
	// A .env file is optional; absence is not an error.
	_ = godotenv.Load()

	scenarioPath := flag.String("scenario", os.Getenv("FAIRGO_SCENARIO"), "scenario file (json/yaml); built-in reference scenario when empty")
	outDir := flag.String("out", envOr("FAIRGO_OUT", "."), "output directory for reports")
	writeXLSX := flag.Bool("xlsx", true, "write the profile workbook")
	writePDF := flag.Bool("pdf", true, "write the profile figures")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	var (
		sc  scenario.Scenario
		err error
	)
	if *scenarioPath == "" {
		sc = scenario.Reference()
		logger.Info("no scenario file given, using built-in reference", "name", sc.Name)
	} else {
		sc, err = scenario.Load(*scenarioPath, logger)
		if err != nil {
			logger.Error("loading scenario failed", "error", err)
			os.Exit(1)
		}
	}

	st, err := hydro.Initialize(sc.Vessel, sc.Channel)
	if err != nil {
		logger.Error("channel initialization failed", "error", err)
		os.Exit(1)
	}
	logger.Info("channel initialized",
		"channel_type", st.Type().String(),
		"weff_m", st.Weff,
		"vcr_ms", st.Vcr,
		"vlim_ms", st.Vlim,
		"static_clearance_m", st.StaticClearance(),
	)

	est := squat.New(st)
	if sq, err := est.Squat(st.Vlim); err != nil {
		logger.Warn("squat at limit speed outside formula domain", "error", err)
	} else {
		logger.Info("squat at limit speed", "squat_m", sq)
	}

	ground, err := grounding.Search(est, st, grounding.Params{
		Vmax:    sc.Run.Vmax,
		Samples: sc.Run.Samples,
	})
	if err != nil {
		logger.Error("grounding scan failed", "error", err)
		os.Exit(1)
	}
	logger.Info("grounding scan complete",
		"grounding_speed_ms", ground.GroundingSpeed,
		"squat_m", ground.SquatAtGrounding,
		"bound", ground.Reason.String(),
		"steps", ground.Steps,
	)

	eng, err := propulsion.New(st, sc.Engine)
	if err != nil {
		logger.Error("propulsion model setup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Profile the sailable range only.
	vTop := min(st.Vlim, ground.GroundingSpeed)
	records, err := profile.Generate(ctx, est, st, eng, profile.Request{
		Vmax:    vTop,
		Samples: sc.Run.Samples,
	}, logger)
	if err != nil {
		logger.Error("profile generation failed", "error", err)
		os.Exit(1)
	}
	last := records[len(records)-1]
	logger.Info("profile generated",
		"samples", len(records),
		"v_top_ms", vTop,
		"r_tot_at_top_kn", last.Resistance,
		"p_tot_at_top_kw", last.Power.Total,
	)

	base := filepath.Join(*outDir, slug(sc.Name))
	if *writeXLSX {
		wb, err := report.Workbook(sc.Name, st, ground, records)
		if err != nil {
			logger.Error("workbook build failed", "error", err)
			os.Exit(1)
		}
		path := base + ".xlsx"
		if err := wb.SaveAs(path); err != nil {
			logger.Error("workbook save failed", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("workbook written", "path", path)
	}
	if *writePDF {
		figs, err := report.Figures(sc.Name, records)
		if err != nil {
			logger.Error("figure build failed", "error", err)
			os.Exit(1)
		}
		path := base + ".pdf"
		if err := figs.OutputFileAndClose(path); err != nil {
			logger.Error("figure save failed", "path", path, "error", err)
			os.Exit(1)
		}
		logger.Info("figures written", "path", path)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func logLevel() slog.Level {
	switch strings.ToLower(os.Getenv("FAIRGO_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// slug makes a scenario name safe as a file-name stem.
func slug(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
