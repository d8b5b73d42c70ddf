package report

import (
	"fmt"
	"math"

	"github.com/phpdave11/gofpdf"

	"github.com/rpipeau3d/fairgo/internal/profile"
)

// series is one labelled curve of a figure.
type series struct {
	label   string
	r, g, b int
	y       func(profile.Record) float64
}

// Figures renders the speed-profile charts (squat, total resistance, power
// decomposition, emission rates) onto A4 pages, one chart per page.
func Figures(title string, records []profile.Record) (*gofpdf.Fpdf, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("report: need at least 2 profile records, got %d", len(records))
	}

	pdf := gofpdf.New("P", "mm", "A4", "")

	chart(pdf, title, "Squat (m)", records, []series{
		{label: "Squat", r: 200, g: 30, b: 30, y: func(r profile.Record) float64 { return r.Squat }},
	})
	chart(pdf, title, "Total resistance (kN)", records, []series{
		{label: "R_tot", r: 200, g: 30, b: 30, y: func(r profile.Record) float64 { return r.Resistance }},
	})
	chart(pdf, title, "Power (kW)", records, []series{
		{label: "P_propulsion", r: 200, g: 30, b: 30, y: func(r profile.Record) float64 { return r.Power.Propulsion }},
		{label: "P_tot", r: 30, g: 30, b: 200, y: func(r profile.Record) float64 { return r.Power.Total }},
		{label: "P_installed", r: 30, g: 150, b: 30, y: func(r profile.Record) float64 { return r.Power.Installed }},
	})
	chart(pdf, title, "Emission rate (g/s)", records, []series{
		{label: "CO2", r: 200, g: 30, b: 30, y: func(r profile.Record) float64 { return r.Emissions.CO2 }},
		{label: "NOx", r: 30, g: 30, b: 200, y: func(r profile.Record) float64 { return r.Emissions.NOx }},
		{label: "PM10", r: 30, g: 150, b: 30, y: func(r profile.Record) float64 { return r.Emissions.PM10 }},
	})

	if pdf.Err() {
		return nil, fmt.Errorf("report: pdf generation: %s", pdf.Error())
	}
	return pdf, nil
}

// Plot area in page millimeters.
const (
	plotX = 25.0
	plotY = 40.0
	plotW = 160.0
	plotH = 110.0
)

// chart draws one velocity-vs-value line chart on a fresh page.
func chart(pdf *gofpdf.Fpdf, title, ylabel string, records []profile.Record, ss []series) {
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(plotX, 20, title)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(plotX, 27, ylabel+" vs velocity (m/s)")

	xMin, xMax := records[0].Speed, records[len(records)-1].Speed
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, rec := range records {
		for _, s := range ss {
			v := s.y(rec)
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}
	if yMax == yMin {
		yMax = yMin + 1
	}

	toX := func(v float64) float64 { return plotX + (v-xMin)/(xMax-xMin)*plotW }
	toY := func(v float64) float64 { return plotY + plotH - (v-yMin)/(yMax-yMin)*plotH }

	// Frame and tick labels.
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotX, plotY, plotW, plotH, "D")
	pdf.SetFont("Helvetica", "", 8)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		fx := xMin + (xMax-xMin)*float64(i)/ticks
		fy := yMin + (yMax-yMin)*float64(i)/ticks
		pdf.Text(toX(fx)-4, plotY+plotH+5, fmt.Sprintf("%.1f", fx))
		pdf.Text(plotX-18, toY(fy)+1, fmt.Sprintf("%8.1f", fy))
		pdf.SetDrawColor(220, 220, 220)
		if i > 0 && i < ticks {
			pdf.Line(toX(fx), plotY, toX(fx), plotY+plotH)
			pdf.Line(plotX, toY(fy), plotX+plotW, toY(fy))
		}
	}

	// Curves.
	pdf.SetLineWidth(0.5)
	for si, s := range ss {
		pdf.SetDrawColor(s.r, s.g, s.b)
		for i := 1; i < len(records); i++ {
			pdf.Line(toX(records[i-1].Speed), toY(s.y(records[i-1])),
				toX(records[i].Speed), toY(s.y(records[i])))
		}
		// Legend entry.
		ly := plotY + plotH + 12 + float64(si)*5
		pdf.Line(plotX, ly-1.5, plotX+8, ly-1.5)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(plotX+10, ly, s.label)
	}
	pdf.SetDrawColor(0, 0, 0)
}
