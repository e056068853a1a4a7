package models

// RankedDeal is one scored candidate from the hassle-score ranking.
// Lower scores are better: the score trades distance penalty against
// the saving versus the regional average.
type RankedDeal struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
	DistanceKm  float64 `json:"distance_km"`
	HassleScore float64 `json:"hassle_score"`
	Verdict     string  `json:"verdict"`
}

const (
	VerdictGo     = "GO"
	VerdictMaybe  = "MAYBE"
	VerdictTooFar = "TOO FAR"
)

type SmartFuelMetadata struct {
	SearchOrigin string   `json:"search_origin"`
	RegionalAvg  float64  `json:"regional_avg"`
	Trend        string   `json:"trend"`
	Timestamp    string   `json:"timestamp"`
	Attribution  []string `json:"attribution"`
}

type SmartFuelResponse struct {
	Metadata  SmartFuelMetadata `json:"metadata"`
	BestDeals []RankedDeal      `json:"best_deals"`
}

// MarketSnapshot is the derived regional price index over one radius
// search: simple min/avg/max plus a suggested logistics surcharge.
type MarketSnapshot struct {
	RegionLabel           string
	StationsScanned       int
	AveragePrice          float64
	MinPrice              float64
	MaxPrice              float64
	SuggestedSurchargePct float64
}

type IndexMetadata struct {
	Region          string `json:"region"`
	StationsScanned int    `json:"stations_scanned"`
}

type MarketRates struct {
	AverageIndex float64 `json:"average_index"`
	Low          float64 `json:"low"`
	High         float64 `json:"high"`
}

type LogisticsTools struct {
	SuggestedSurchargePct float64 `json:"suggested_surcharge_pct"`
}

type DieselIndexResponse struct {
	IndexMetadata  IndexMetadata  `json:"index_metadata"`
	MarketRates    MarketRates    `json:"market_rates"`
	LogisticsTools LogisticsTools `json:"logistics_tools"`
	Attribution    []string       `json:"attribution"`
}
