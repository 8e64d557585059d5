package domain

const (
	TrendIncreasing = "crescente"
	TrendDecreasing = "decrescente"
	TrendStable     = "estável"
)

// CategoryTrend resume a tendência de uma coluna numérica ao longo das linhas.
// Growth e Trend ficam vazios quando a coluna tem menos de dois valores.
type CategoryTrend struct {
	Mean   float64  `json:"media"`
	Median float64  `json:"mediana"`
	Trend  string   `json:"tendencia,omitempty"`
	Growth *float64 `json:"crescimento,omitempty"`
}

// TrendReport agrupa as tendências por categoria e por coluna
type TrendReport map[FinancialCategory]map[string]CategoryTrend
