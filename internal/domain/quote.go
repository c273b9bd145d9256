package domain

// Quote holds the latest market snapshot for a symbol, mapped from the
// provider's quote payload. Fields the provider omits keep their zero
// value; consumers treat non-positive valuation figures as unreported.
type Quote struct {
	Symbol    string
	ShortName string
	LongName  string

	Price         float64
	PreviousClose float64

	MarketCap         int64
	SharesOutstanding int64

	TrailingPE  float64
	ForwardPE   float64
	EpsTrailing float64
	BookValue   float64
	PriceToBook float64

	FiftyTwoWeekHigh     float64
	FiftyTwoWeekLow      float64
	FiftyDayAverage      float64
	TwoHundredDayAverage float64

	// trailing annual figures; yield is a fraction, not a percent
	DividendRate  float64
	DividendYield float64

	AvgVolume3Month int64
}
