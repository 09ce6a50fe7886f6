package domain

// TradeStats summarizes the Deals section of a trade history
type TradeStats struct {
	TotalTrades int       `json:"totalTrades"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	WinRate     string    `json:"winRate"`
	TotalProfit string    `json:"totalProfit"`
	MaxProfit   float64   `json:"maxProfit"`
	MaxLoss     float64   `json:"maxLoss"`
	EquityCurve []float64 `json:"equityCurve"`
}

// TradeReport is the response body of the trade statistics endpoints
type TradeReport struct {
	Stats     TradeStats  `json:"stats"`
	TradeData interface{} `json:"tradeData"`
}

// Shape selects how trade data is projected in a response
type Shape string

const (
	ShapeSections Shape = "sections"
	ShapeRecords  Shape = "records"
)

// ParseShape maps a query value to a shape. Empty means ShapeSections.
func ParseShape(s string) (Shape, bool) {
	switch Shape(s) {
	case "", ShapeSections:
		return ShapeSections, true
	case ShapeRecords:
		return ShapeRecords, true
	}
	return "", false
}
