package extracting

import (
	"testing"

	"github.com/habitus/forecast-api/internal/domain"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numericColumn(name string, values ...float64) domain.Column {
	numbers := make([]domain.Number, len(values))
	for i, v := range values {
		numbers[i] = domain.NewNumber(v)
	}
	return domain.Column{Name: name, Kind: domain.ColumnNumeric, Numbers: numbers}
}

func TestAnalyzeTrends(t *testing.T) {
	dataset := &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryRevenue: {Columns: []domain.Column{
				{Name: "Item", Kind: domain.ColumnText, Texts: []string{"a", "b", "c"}},
				numericColumn("Jan", 100, 110, 130),
				numericColumn("Fev", 200, 150, 100),
				numericColumn("Mar", 0, 10, 5),
				{Name: "Abr", Kind: domain.ColumnNumeric, Numbers: []domain.Number{{}, domain.NewNumber(40), {}}},
			}},
			domain.CategoryInvestments: {Columns: []domain.Column{
				numericColumn("Jan", 1, 2),
			}},
		},
	}

	report := AnalyzeTrends(dataset)

	require.Contains(t, report, domain.CategoryRevenue)
	assert.NotContains(t, report, domain.CategoryInvestments)

	revenue := report[domain.CategoryRevenue]
	require.Len(t, revenue, 4)

	jan := revenue["Jan"]
	assert.InDelta(t, 113.333333, jan.Mean, 1e-5)
	assert.Equal(t, 110.0, jan.Median)
	require.NotNil(t, jan.Growth)
	assert.InDelta(t, 0.3, *jan.Growth, 1e-9)
	assert.Equal(t, domain.TrendIncreasing, jan.Trend)

	fev := revenue["Fev"]
	assert.Equal(t, 150.0, fev.Mean)
	require.NotNil(t, fev.Growth)
	assert.InDelta(t, -0.5, *fev.Growth, 1e-9)
	assert.Equal(t, domain.TrendDecreasing, fev.Trend)

	mar := revenue["Mar"]
	require.NotNil(t, mar.Growth)
	assert.Equal(t, 0.0, *mar.Growth)
	assert.Equal(t, domain.TrendStable, mar.Trend)

	// um único valor não tem crescimento nem tendência
	abr := revenue["Abr"]
	assert.Equal(t, 40.0, abr.Mean)
	assert.Equal(t, 40.0, abr.Median)
	assert.Nil(t, abr.Growth)
	assert.Empty(t, abr.Trend)

	assert.Empty(t, AnalyzeTrends(nil))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.5, median([]float64{4, 1, 3, 2}))
	assert.Equal(t, 3.0, median([]float64{5, 3, 1}))
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 0.0, mean(nil))
}

func TestColumnTrend_SmallVariationIsStable(t *testing.T) {
	trend := columnTrend([]float64{100, 104})

	require.NotNil(t, trend.Growth)
	assert.InDelta(t, 0.04, *trend.Growth, 1e-9)
	assert.Equal(t, domain.TrendStable, trend.Trend)
}

func TestSummarize(t *testing.T) {
	categories := map[domain.FinancialCategory]domain.CategoryTable{
		domain.CategoryVariableCosts: {Columns: []domain.Column{
			{Name: "Item", Kind: domain.ColumnText, Texts: []string{"Frete", ""}},
			{Name: "Jan", Kind: domain.ColumnNumeric, Numbers: []domain.Number{domain.NewNumber(10), {}}},
		}},
	}

	summary := Summarize(categories)[domain.CategoryVariableCosts]

	assert.Equal(t, 2, summary.RowCount)
	assert.Equal(t, 2, summary.ColumnCount)
	assert.Equal(t, []string{"Jan"}, summary.NumericColumns)
	assert.Equal(t, 50.0, summary.MissingDataPercentage)
	assert.Equal(t, map[string]float64{"Jan": 10}, summary.ColumnSums)
}

func TestColumnTrend_SingleValueOmitsGrowth(t *testing.T) {
	trend := columnTrend([]float64{75})

	assert.Equal(t, domain.CategoryTrend{Mean: 75, Median: 75}, trend)

	body, err := jsoniter.Marshal(trend)
	require.NoError(t, err)
	assert.JSONEq(t, `{"media":75,"mediana":75}`, string(body))
}
