package extracting

import (
	"sort"

	"github.com/habitus/forecast-api/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// trendThreshold é a variação mínima (5%) para uma coluna ser considerada crescente ou decrescente
const trendThreshold = 0.05

// AnalyzeTrends calcula média, mediana e crescimento de cada coluna numérica.
// Categorias com menos de duas colunas numéricas não entram no relatório.
func AnalyzeTrends(dataset *domain.FinancialDataset) domain.TrendReport {
	report := make(domain.TrendReport)
	if dataset == nil {
		return report
	}

	for _, category := range domain.AllCategories() {
		table := dataset.Table(category)
		if table.IsEmpty() || len(table.NumericColumns()) < 2 {
			continue
		}

		trends := make(map[string]domain.CategoryTrend)
		for _, name := range table.NumericColumns() {
			column, _ := table.Column(name)
			trends[name] = columnTrend(column.Values())
		}
		report[category] = trends
	}

	return report
}

func columnTrend(values []float64) domain.CategoryTrend {
	trend := domain.CategoryTrend{
		Mean:   mean(values),
		Median: median(values),
	}

	if len(values) < 2 {
		return trend
	}

	growth := 0.0
	first, last := values[0], values[len(values)-1]
	if first != 0 {
		growth = last/first - 1
	}
	trend.Growth = &growth

	switch {
	case growth > trendThreshold:
		trend.Trend = domain.TrendIncreasing
	case growth < -trendThreshold:
		trend.Trend = domain.TrendDecreasing
	default:
		trend.Trend = domain.TrendStable
	}

	return trend
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// median retorna o valor central; com quantidade par, a média dos dois centrais
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return stat.Mean(sorted[mid-1:mid+1], nil)
}

// Summarize gera o resumo por categoria guardado nos metadados
func Summarize(categories map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategorySummary {
	summaries := make(map[domain.FinancialCategory]domain.CategorySummary, len(categories))

	for category, table := range categories {
		summary := domain.CategorySummary{
			RowCount:       table.RowCount(),
			ColumnCount:    len(table.Columns),
			NumericColumns: table.NumericColumns(),
			ColumnSums:     make(map[string]float64),
		}

		cells, missing := 0, 0
		for _, column := range table.Columns {
			for i := 0; i < column.Len(); i++ {
				cells++
				if column.IsBlank(i) {
					missing++
				}
			}
			if column.IsNumeric() {
				summary.ColumnSums[column.Name] = floats.Sum(column.Values())
			}
		}

		if cells > 0 {
			summary.MissingDataPercentage = float64(missing) / float64(cells) * 100
		}

		summaries[category] = summary
	}

	return summaries
}
