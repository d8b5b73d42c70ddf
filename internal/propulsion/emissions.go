package propulsion

// Emission and fuel model. Base factors per emission stage (g/kWh at
// nominal load) with an engine-load correction curve and a weight-class
// correction on the regulated species. Stage boundaries follow the CCNR /
// EU inland-engine regulation years; factor levels after TNO inland
// shipping emission inventories.

// stageFactors holds base rates (g/kWh) for one construction-year bracket.
type stageFactors struct {
	fromYear int
	sfc      float64 // specific fuel consumption
	nox      float64
	pm10     float64
}

// Ordered oldest to newest; the last bracket whose fromYear is not after
// the construction year applies.
var stages = []stageFactors{
	{fromYear: 0, sfc: 235, nox: 10.8, pm10: 0.60},
	{fromYear: 1975, sfc: 230, nox: 10.6, pm10: 0.45},
	{fromYear: 1990, sfc: 215, nox: 10.4, pm10: 0.30},
	{fromYear: 2003, sfc: 205, nox: 9.2, pm10: 0.30},  // CCNR-1
	{fromYear: 2008, sfc: 200, nox: 6.0, pm10: 0.20},  // CCNR-2
	{fromYear: 2020, sfc: 185, nox: 1.8, pm10: 0.015}, // Stage V
}

// referenceSFC is the 1990-2002 bracket rate used for the uncorrected
// diesel-use figure.
const referenceSFC = 215.0

// Diesel carbon content: grams of CO2 per gram of fuel burned.
const co2PerGramFuel = 3.206

// Partial-load correction curves: multipliers on the base factors as a
// function of engine load fraction. Diesel engines run rich and cold at
// low load; PM suffers the most.
var (
	loadAxis = []float64{0.05, 0.10, 0.20, 0.30, 0.40, 0.60, 0.80, 1.00}
	loadSFC  = []float64{1.35, 1.22, 1.10, 1.05, 1.02, 1.00, 1.00, 1.02}
	loadNOx  = []float64{1.20, 1.15, 1.08, 1.04, 1.02, 1.00, 1.00, 1.01}
	loadPM   = []float64{2.00, 1.70, 1.40, 1.20, 1.10, 1.00, 0.95, 0.95}
)

// Weight-class correction on regulated species: heavier classes run larger,
// slightly cleaner engines.
var weightClassFactor = map[int]float64{1: 1.0, 2: 0.98, 3: 0.95}

func (e *Engine) stage() stageFactors {
	sel := stages[0]
	for _, s := range stages {
		if e.p.CYear >= s.fromYear {
			sel = s
		}
	}
	return sel
}

// loadFactor interpolates one partial-load curve at the given load.
func loadFactor(curve []float64, load float64) float64 {
	i, f := bracket(loadAxis, load)
	return lerp(curve[i], curve[i+1], f)
}

// EmissionRates returns the instantaneous CO2/PM10/NOx emission rates and
// the diesel consumption (all g/s) at speed v (m/s) and effective depth
// hEff (m).
func (e *Engine) EmissionRates(v, hEff float64) (EmissionRates, FuelUse, error) {
	demand, err := e.TotalPowerRequired(v, hEff)
	if err != nil {
		return EmissionRates{}, FuelUse{}, err
	}

	load := demand.Total / e.p.PInstalled
	st := e.stage()
	wc := weightClassFactor[e.p.LW]

	fSFC := loadFactor(loadSFC, load)
	kWhPerSec := demand.Total / 3600

	fuel := FuelUse{
		Reference:     referenceSFC * fSFC * kWhPerSec,
		YearCorrected: st.sfc * fSFC * kWhPerSec,
	}

	em := EmissionRates{
		// CO2 scales with fuel burned, not with an aftertreatment stage.
		CO2:  co2PerGramFuel * fuel.YearCorrected,
		NOx:  st.nox * wc * loadFactor(loadNOx, load) * kWhPerSec,
		PM10: st.pm10 * wc * loadFactor(loadPM, load) * kWhPerSec,
	}
	return em, fuel, nil
}
