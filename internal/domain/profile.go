package domain

// Profile carries the slower-moving company facts: descriptive info,
// analyst view and holder breakdown. Numeric fields default to NaN when
// the provider omits them.
type Profile struct {
	Symbol   string
	Sector   string
	Industry string
	Website  string
	Summary  string

	Beta         float64
	CurrentRatio float64

	TargetMeanPrice   float64
	TargetHighPrice   float64
	TargetLowPrice    float64
	RecommendationKey string
	NumberOfAnalysts  int

	InsidersPercentHeld     float64
	InstitutionsPercentHeld float64
}
