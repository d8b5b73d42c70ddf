// Package report renders evaluation results into Excel workbooks and PDF
// figures. Everything here is presentation; no numbers are computed.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rpipeau3d/fairgo/internal/grounding"
	"github.com/rpipeau3d/fairgo/internal/hydro"
	"github.com/rpipeau3d/fairgo/internal/profile"
)

// Workbook builds an xlsx with a Summary sheet (derived channel state and
// grounding result) and a Profile sheet (one row per sampled speed).
// The caller saves it.
func Workbook(name string, st *hydro.State, ground grounding.Result, records []profile.Record) (*excelize.File, error) {
	f := excelize.NewFile()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, fmt.Errorf("report: renaming sheet: %w", err)
	}

	rows := [][]any{
		{"Scenario", name},
		{"Channel type", st.Type().String()},
		{},
		{"Mean draught Tm (m)", st.Tm},
		{"Block coefficient C_B", st.CB},
		{"Waterplane coefficient C_WP", st.Vessel.CWP},
		{"Midship coefficient C_M", st.Vessel.CM},
		{"Underkeel clearance ratio Ukc", st.Ukc},
		{"Effective width Weff (m)", st.Weff},
		{"Channel section Ach (m2)", st.Ach},
		{"Critical speed Vcr (m/s)", st.Vcr},
		{"Limit speed Vlim (m/s)", st.Vlim},
		{"Static clearance (m)", st.StaticClearance()},
		{"Safety margin (m)", st.Channel.SafetyMargin},
		{},
		{"Grounding speed (m/s)", ground.GroundingSpeed},
		{"Squat at grounding (m)", ground.SquatAtGrounding},
		{"Scan bound", ground.Reason.String()},
		{"Scan steps", ground.Steps},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("report: summary row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(summary, cell, &row); err != nil {
			return nil, fmt.Errorf("report: summary row %d: %w", i+1, err)
		}
	}

	const prof = "Profile"
	if _, err := f.NewSheet(prof); err != nil {
		return nil, fmt.Errorf("report: creating profile sheet: %w", err)
	}
	header := []any{
		"v (m/s)", "Squat (m)", "h_eff (m)", "R_tot (kN)",
		"P_propulsion (kW)", "P_tot (kW)", "P_installed (kW)",
		"CO2 (g/s)", "PM10 (g/s)", "NOx (g/s)",
		"Diesel ref (g/s)", "Diesel C_year (g/s)",
	}
	if err := f.SetSheetRow(prof, "A1", &header); err != nil {
		return nil, fmt.Errorf("report: profile header: %w", err)
	}
	for i, r := range records {
		row := []any{
			r.Speed, r.Squat, r.EffectiveDepth, r.Resistance,
			r.Power.Propulsion, r.Power.Total, r.Power.Installed,
			r.Emissions.CO2, r.Emissions.PM10, r.Emissions.NOx,
			r.Fuel.Reference, r.Fuel.YearCorrected,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("report: profile row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(prof, cell, &row); err != nil {
			return nil, fmt.Errorf("report: profile row %d: %w", i+2, err)
		}
	}

	return f, nil
}
