package technicals

// Aggregate signal labels. Section signals carry a short rationale
// after the label, these are the bare aggregate verdicts.
const (
	SignalStrongBuy = "STRONG BUY"
	SignalWait      = "WAIT"
	SignalAvoid     = "AVOID"
)

// Market regime labels.
const (
	MarketBull    = "BULL"
	MarketNeutral = "NEUTRAL"
	MarketBear    = "BEAR"
)

// Report is the full technical picture for one symbol: five scored
// sections, optional market overlay and benchmark comparison, and the
// aggregate verdict.
type Report struct {
	Symbol string
	Price  float64

	MovingAverages    MovingAverageSection
	MACD              MACDSection
	RSI               RSISection
	Volume            VolumeSection
	SupportResistance SupportResistanceSection

	Market           *MarketContext
	RelativeStrength *RelativeStrength
	Performance      *Performance

	TotalScore int
	MaxScore   int
	ScorePct   float64
	Signal     string
	Action     string
}

// MovingAverageSection scores trend alignment across the major moving
// averages. Distances are NaN until the backing window has filled.
type MovingAverageSection struct {
	SMA20  float64
	SMA50  float64
	SMA200 float64
	EMA20  float64
	EMA50  float64

	AboveSMA50  bool
	AboveSMA200 bool
	GoldenCross bool

	DistFromSMA20Pct  float64
	DistFromSMA50Pct  float64
	DistFromSMA200Pct float64

	Score    int
	MaxScore int
	Signal   string
}

// MACDSection scores momentum off the MACD line, its signal line and
// the histogram, and looks back up to ten bars for a fresh bullish
// crossover.
type MACDSection struct {
	Line       float64
	SignalLine float64
	Histogram  float64

	BullishCrossover  bool
	AboveZero         bool
	HistogramPositive bool
	HistogramGrowing  bool

	RecentCrossover  bool
	CrossoverDaysAgo int

	Score    int
	MaxScore int
	Signal   string
}

// RSISection scores the 14-period RSI. Zone is a coarse label for
// display.
type RSISection struct {
	Value float64

	NotOverbought bool
	BullishZone   bool
	Healthy       bool

	Zone string

	Score    int
	MaxScore int
	Signal   string
}

// VolumeSection scores volume confirmation: price against the VWMA,
// the VWMA slope, and whether up days carry more volume than down
// days over the last ten bars.
type VolumeSection struct {
	VWMA float64

	AboveVWMA     bool
	VWMARising    bool
	BullishVolume bool

	CurrentVolume float64
	AverageVolume float64
	VolumeRatio   float64
	UpDayVolume   float64
	DownDayVolume float64

	Score    int
	MaxScore int
	Signal   string
}

// SupportResistanceSection scores the price position between clustered
// pivot levels. Nearest levels fall back to the rolling 60-day extremes
// when no pivot sits on the right side of the price.
type SupportResistanceSection struct {
	NearestSupport    float64
	NearestResistance float64

	DistToSupportPct    float64
	DistToResistancePct float64

	AtSupport      bool
	NearResistance bool

	SupportLevels    []float64
	ResistanceLevels []float64

	Score    int
	MaxScore int
	Signal   string
}

// MarketContext is the broad-market overlay, computed once per run
// from the benchmark history and, when available, the VIX.
type MarketContext struct {
	Benchmark string
	Price     float64
	SMA50     float64
	SMA200    float64

	AboveSMA50  bool
	AboveSMA200 bool
	GoldenCross bool

	// VIX is NaN and LowVIX nil when the volatility index could not
	// be fetched; the check then simply drops out of the score.
	VIX    float64
	LowVIX *bool

	Score          int
	TotalChecks    int
	State          string
	Recommendation string
}

// RelativeStrength compares total returns of the stock and the
// benchmark over their respective histories.
type RelativeStrength struct {
	StockReturnPct     float64
	BenchmarkReturnPct float64
	OutperformancePct  float64
	Outperforming      bool
	Signal             string
}

// Performance summarizes realized risk and return over the history.
type Performance struct {
	AnnualizedReturnPct     float64
	AnnualizedVolatilityPct float64
	SharpeRatio             float64
	MaxDrawdownPct          float64
	High52Week              float64
	Low52Week               float64
	RangePosition52WeekPct  float64
}

// PositionPlan is a risk-based position size for one entry/stop pair.
type PositionPlan struct {
	EntryPrice    float64
	StopLoss      float64
	Shares        int
	PositionValue float64
	PositionPct   float64
	ActualRisk    float64
	ActualRiskPct float64
	Targets       []ProfitTarget
}

// ProfitTarget is a take-profit level with its reward/risk multiple.
type ProfitTarget struct {
	GainPct    float64
	Price      float64
	Reward     float64
	RewardRisk float64
}
