package entity

// PricePoint is one point of a trend sparkline. Date is a calendar day
// ("2006-01-02"); for short windows several points may share a date.
type PricePoint struct {
	Date  string `json:"date"`
	Price int    `json:"price"`
}

// TrendAggregate is a derived per-(category, city) market summary. It is
// recomputed on each query and never persisted; it has no identity of its own.
type TrendAggregate struct {
	Category     string       `json:"category"`
	City         string       `json:"city"`
	AveragePrice int          `json:"average_price"`
	Unit         string       `json:"unit"`
	Submissions  int          `json:"submissions"`
	DataPoints   []PricePoint `json:"data_points"`
}
