package forecasting

import (
	"errors"
	"testing"
	"time"

	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(values ...float64) []domain.Number {
	out := make([]domain.Number, len(values))
	for i, v := range values {
		out[i] = domain.NewNumber(v)
	}
	return out
}

func table(labels []string, columns map[string][]float64, order ...string) domain.CategoryTable {
	t := domain.CategoryTable{Columns: []domain.Column{
		{Name: "Descrição", Kind: domain.ColumnText, Texts: labels},
	}}
	for _, name := range order {
		t.Columns = append(t.Columns, domain.Column{
			Name:    name,
			Kind:    domain.ColumnNumeric,
			Numbers: numbers(columns[name]...),
		})
	}
	return t
}

// janDataset reproduz a planilha de exemplo com uma única coluna Jan
func janDataset() *domain.FinancialDataset {
	return &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryRevenue: table(
				[]string{"Vendas", "Serviços", "Outros"},
				map[string][]float64{"Jan": {100000, 150000, 50000}},
				"Jan",
			),
			domain.CategoryVariableCosts: table(
				[]string{"Matéria prima", "Frete", "Embalagem"},
				map[string][]float64{"Jan": {40000, 30000, 20000}},
				"Jan",
			),
		},
	}
}

// withTextColumn insere uma coluna de texto na posição at
func withTextColumn(t domain.CategoryTable, at int, name string, texts ...string) domain.CategoryTable {
	columns := append([]domain.Column{}, t.Columns[:at]...)
	columns = append(columns, domain.Column{Name: name, Kind: domain.ColumnText, Texts: texts})
	t.Columns = append(columns, t.Columns[at:]...)
	return t
}

// fullDataset tem uma coluna de texto entre Jan e Fev na receita, para fixar o índice
// de crescimento do cenário agressivo entre colunas numéricas
func fullDataset() *domain.FinancialDataset {
	months := []string{"Jan", "Fev", "Mar"}
	revenue := table([]string{"Vendas", "Serviços"}, map[string][]float64{
		"Jan": {1000, 500}, "Fev": {1100, 600}, "Mar": {1200, 700},
	}, months...)

	return &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryRevenue: withTextColumn(revenue, 2, "Observação", "loja", "online"),
			domain.CategoryVariableCosts: table([]string{"Insumos"}, map[string][]float64{
				"Jan": {400}, "Fev": {420}, "Mar": {450},
			}, months...),
			domain.CategoryPersonnelExpenses: table([]string{"Salários"}, map[string][]float64{
				"Jan": {300}, "Fev": {300}, "Mar": {300},
			}, months...),
			domain.CategoryCommercialExpenses: table([]string{"Marketing"}, map[string][]float64{
				"Jan": {50}, "Fev": {50}, "Mar": {50},
			}, months...),
			domain.CategoryAdminExpenses: table([]string{"Aluguel"}, map[string][]float64{
				"Jan": {100}, "Fev": {100}, "Mar": {100},
			}, months...),
			domain.CategoryInvestments: table([]string{"Máquinas"}, map[string][]float64{
				"Jan": {200}, "Fev": {0}, "Mar": {50},
			}, months...),
		},
	}
}

func newTestGenerator() *Generator {
	g := NewGenerator(&config.Config{Scenario: config.Scenario{MinAdjustment: -0.9, MaxAdjustment: 5.0}})
	g.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerate_JanExamples(t *testing.T) {
	g := newTestGenerator()

	realistic, err := g.Generate(janDataset(), domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)
	assert.Equal(t, 210000.0, realistic.Table(domain.CategoryContributionMargin).ColumnSum("Jan"))

	pessimistic, err := g.Generate(janDataset(), domain.ScenarioPessimistic, domain.ScenarioParameters{})
	require.NoError(t, err)
	assert.InDelta(t, 255000.0, pessimistic.Table(domain.CategoryRevenue).ColumnSum("Jan"), 0.001)
	assert.InDelta(t, 99000.0, pessimistic.Table(domain.CategoryVariableCosts).ColumnSum("Jan"), 0.001)
	assert.InDelta(t, 156000.0, pessimistic.Table(domain.CategoryContributionMargin).ColumnSum("Jan"), 0.001)
}

func TestGenerate_RealisticIdentity(t *testing.T) {
	g := newTestGenerator()
	dataset := fullDataset()

	result, err := g.Generate(dataset, domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	for _, category := range domain.BaseCategories {
		original, ok := dataset.Categories[category]
		if !ok {
			continue
		}
		assert.Equal(t, original, result.Table(category), "categoria %s", category)
	}
	assert.Equal(t, domain.ScenarioRealistic, result.Type)
	assert.Empty(t, result.Parameters)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), result.GeneratedAt)
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	g := newTestGenerator()
	dataset := fullDataset()
	before := dataset.Categories[domain.CategoryRevenue].Clone()

	for _, scenarioType := range domain.ScenarioTypes {
		_, err := g.Generate(dataset, scenarioType, domain.ScenarioParameters{})
		require.NoError(t, err)
	}

	assert.Equal(t, before, dataset.Categories[domain.CategoryRevenue])
	assert.False(t, dataset.HasCategory(domain.CategoryContributionMargin))
}

func TestGenerate_Directionality(t *testing.T) {
	g := newTestGenerator()
	dataset := fullDataset()

	realistic, err := g.Generate(dataset, domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)
	pessimistic, err := g.Generate(dataset, domain.ScenarioPessimistic, domain.ScenarioParameters{})
	require.NoError(t, err)
	optimistic, err := g.Generate(dataset, domain.ScenarioOptimistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	for _, column := range []string{"Jan", "Fev", "Mar"} {
		base := realistic.Table(domain.CategoryRevenue).ColumnSum(column)
		assert.Less(t, pessimistic.Table(domain.CategoryRevenue).ColumnSum(column), base)
		assert.Greater(t, optimistic.Table(domain.CategoryRevenue).ColumnSum(column), base)

		cost := realistic.Table(domain.CategoryVariableCosts).ColumnSum(column)
		assert.Greater(t, pessimistic.Table(domain.CategoryVariableCosts).ColumnSum(column), cost)
		assert.Less(t, optimistic.Table(domain.CategoryVariableCosts).ColumnSum(column), cost)

		for _, category := range domain.FixedExpenseCategories {
			expense := realistic.Table(category).ColumnSum(column)
			assert.Greater(t, pessimistic.Table(category).ColumnSum(column), expense, "categoria %s", category)
			assert.Less(t, optimistic.Table(category).ColumnSum(column), expense, "categoria %s", category)
		}
	}

	// investimentos não mudam nos cenários uniformes
	assert.Equal(t, realistic.Table(domain.CategoryInvestments), pessimistic.Table(domain.CategoryInvestments))
	assert.Equal(t, realistic.Table(domain.CategoryInvestments), optimistic.Table(domain.CategoryInvestments))
}

func TestGenerate_AggressiveDominance(t *testing.T) {
	g := newTestGenerator()
	dataset := fullDataset()

	result, err := g.Generate(dataset, domain.ScenarioAggressive, domain.ScenarioParameters{})
	require.NoError(t, err)

	original := dataset.Categories[domain.CategoryRevenue]
	adjusted := result.Table(domain.CategoryRevenue)
	for i, column := range []string{"Jan", "Fev", "Mar"} {
		ratio := adjusted.ColumnSum(column) / original.ColumnSum(column)
		assert.GreaterOrEqual(t, ratio, 1.15, "coluna %s", column)
		assert.InDelta(t, 1.30+float64(i)*0.05, ratio, 1e-9, "coluna %s", column)
	}

	// custos crescem 80% do crescimento da receita da mesma coluna
	assert.InDelta(t, 400*(1+0.30*0.8), result.Table(domain.CategoryVariableCosts).ColumnSum("Jan"), 1e-9)
	assert.InDelta(t, 450*(1+0.40*0.8), result.Table(domain.CategoryVariableCosts).ColumnSum("Mar"), 1e-9)

	// despesas fixas crescem 50%
	assert.InDelta(t, 300*(1+0.35*0.5), result.Table(domain.CategoryPersonnelExpenses).ColumnSum("Fev"), 1e-9)
	assert.InDelta(t, 50*(1+0.40*0.5), result.Table(domain.CategoryCommercialExpenses).ColumnSum("Mar"), 1e-9)

	// a coluna de texto entre Jan e Fev não conta no índice de crescimento
	note, ok := adjusted.Column("Observação")
	require.True(t, ok)
	assert.Equal(t, []string{"loja", "online"}, note.Texts)
	assert.InDelta(t, 1100*1.35, adjusted.Columns[3].Numbers[0].Value, 1e-9)

	assert.InDelta(t, 200*1.25, result.Table(domain.CategoryInvestments).ColumnSum("Jan"), 1e-9)

	assert.Equal(t, map[string]float64{
		"initial_growth":        0.30,
		"growth_rate":           0.05,
		"investment_adjustment": 0.25,
	}, result.Parameters)
}

func TestGenerate_AggressiveZeroRevenueKeepsCosts(t *testing.T) {
	g := newTestGenerator()
	dataset := &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryRevenue: table([]string{"Vendas"}, map[string][]float64{"Jan": {0}}, "Jan"),
			domain.CategoryVariableCosts: table([]string{"Insumos"}, map[string][]float64{
				"Jan": {100}, "Extra": {10},
			}, "Jan", "Extra"),
		},
	}

	result, err := g.Generate(dataset, domain.ScenarioAggressive, domain.ScenarioParameters{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Table(domain.CategoryVariableCosts).ColumnSum("Jan"))
	assert.Equal(t, 10.0, result.Table(domain.CategoryVariableCosts).ColumnSum("Extra"))
}

func TestGenerate_DerivedIdentities(t *testing.T) {
	g := newTestGenerator()
	dataset := fullDataset()

	for _, scenarioType := range domain.ScenarioTypes {
		t.Run(string(scenarioType), func(t *testing.T) {
			result, err := g.Generate(dataset, scenarioType, domain.ScenarioParameters{})
			require.NoError(t, err)

			margin := result.Table(domain.CategoryContributionMargin)
			cashFlow := result.Table(domain.CategoryCashFlow)
			balance := result.Table(domain.CategoryFinalBalance)

			assert.Equal(t, []string{"Jan", "Fev", "Mar"}, margin.NumericColumns())
			assert.Equal(t, 1, margin.RowCount())

			running := 0.0
			for _, column := range margin.NumericColumns() {
				revenue := result.Table(domain.CategoryRevenue).ColumnSum(column)
				costs := result.Table(domain.CategoryVariableCosts).ColumnSum(column)
				expenses := result.Table(domain.CategoryPersonnelExpenses).ColumnSum(column) +
					result.Table(domain.CategoryCommercialExpenses).ColumnSum(column) +
					result.Table(domain.CategoryAdminExpenses).ColumnSum(column)

				assert.InDelta(t, revenue-costs, margin.ColumnSum(column), 1e-6)
				assert.InDelta(t, margin.ColumnSum(column)-expenses, cashFlow.ColumnSum(column), 1e-6)

				running += cashFlow.ColumnSum(column)
				assert.InDelta(t, running, balance.ColumnSum(column), 1e-6)
			}

			assert.InDelta(t, running, result.Metrics.FinalBalance, 1e-6)
		})
	}
}

func TestGenerate_CommonColumnsExcludeMissing(t *testing.T) {
	g := newTestGenerator()
	dataset := &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryRevenue: table([]string{"Vendas"}, map[string][]float64{
				"Jan": {100}, "Fev": {200},
			}, "Jan", "Fev"),
			domain.CategoryVariableCosts: table([]string{"Insumos"}, map[string][]float64{
				"Fev": {50}, "Mar": {70},
			}, "Fev", "Mar"),
		},
	}

	result, err := g.Generate(dataset, domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	margin := result.Table(domain.CategoryContributionMargin)
	assert.Equal(t, []string{"Fev"}, margin.NumericColumns())
	assert.Equal(t, 150.0, margin.ColumnSum("Fev"))

	label, ok := margin.Column(domain.SummaryLabelColumn)
	require.True(t, ok)
	assert.Equal(t, []string{"Margem de Contribuição"}, label.Texts)
}

func TestGenerate_EmptyDataset(t *testing.T) {
	g := newTestGenerator()

	result, err := g.Generate(&domain.FinancialDataset{}, domain.ScenarioOptimistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	assert.True(t, result.Table(domain.CategoryContributionMargin).IsEmpty())
	assert.True(t, result.Table(domain.CategoryCashFlow).IsEmpty())
	assert.True(t, result.Table(domain.CategoryFinalBalance).IsEmpty())
	assert.Equal(t, domain.ScenarioMetrics{}, result.Metrics)
}

func TestGenerate_Metrics(t *testing.T) {
	g := newTestGenerator()

	result, err := g.Generate(fullDataset(), domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	m := result.Metrics
	assert.Equal(t, 5100.0, m.TotalRevenue)
	assert.Equal(t, 1270.0, m.TotalCosts)
	assert.Equal(t, 1350.0, m.TotalExpenses)
	assert.Equal(t, 3830.0, m.TotalMargin)
	assert.Equal(t, 2480.0, m.TotalCashflow)
	assert.Equal(t, 2480.0, m.FinalBalance)
	assert.InDelta(t, 3830.0/5100.0*100, m.MarginPercentage, 1e-9)
	assert.InDelta(t, 2480.0/250.0*100, m.ROI, 1e-9)
}

func TestGenerate_MetricsGuards(t *testing.T) {
	g := newTestGenerator()
	dataset := &domain.FinancialDataset{
		Categories: map[domain.FinancialCategory]domain.CategoryTable{
			domain.CategoryVariableCosts: table([]string{"Insumos"}, map[string][]float64{"Jan": {100}}, "Jan"),
		},
	}

	result, err := g.Generate(dataset, domain.ScenarioRealistic, domain.ScenarioParameters{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Metrics.TotalRevenue)
	assert.Equal(t, 0.0, result.Metrics.MarginPercentage)
	assert.Equal(t, 0.0, result.Metrics.ROI)
	assert.Equal(t, -100.0, result.Metrics.FinalBalance)
}

func TestGenerate_InvalidInput(t *testing.T) {
	g := newTestGenerator()

	tests := []struct {
		name         string
		scenarioType domain.ScenarioType
		params       domain.ScenarioParameters
		wantErr      error
		wantParam    string
	}{
		{
			name:         "Tipo desconhecido",
			scenarioType: "catastrofico",
			wantErr:      ErrUnknownScenarioType,
		},
		{
			name:         "Ajuste de receita abaixo do limite",
			scenarioType: domain.ScenarioPessimistic,
			params:       domain.ScenarioParameters{RevenueAdjustment: domain.Float(-0.95)},
			wantErr:      ErrInvalidParameter,
			wantParam:    "revenue_adjustment",
		},
		{
			name:         "Apelido percentual acima do limite",
			scenarioType: domain.ScenarioOptimistic,
			params:       domain.ScenarioParameters{RevenueGrowth: domain.Float(600)},
			wantErr:      ErrInvalidParameter,
			wantParam:    "revenue_adjustment",
		},
		{
			name:         "Crescimento inicial acima do limite",
			scenarioType: domain.ScenarioAggressive,
			params:       domain.ScenarioParameters{InitialGrowth: domain.Float(5.5)},
			wantErr:      ErrInvalidParameter,
			wantParam:    "initial_growth",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := g.Generate(fullDataset(), tt.scenarioType, tt.params)

			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))

			var inputErr *InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.wantParam, inputErr.Parameter)
			if tt.wantParam == "" {
				assert.Contains(t, err.Error(), string(tt.scenarioType))
			}
		})
	}
}

func TestScenarioFor_Parameters(t *testing.T) {
	tests := []struct {
		name         string
		scenarioType domain.ScenarioType
		params       domain.ScenarioParameters
		want         Scenario
	}{
		{
			name:         "Pessimista com padrões",
			scenarioType: domain.ScenarioPessimistic,
			want:         Pessimistic{Revenue: -0.15, Cost: 0.10, Expense: 0.10},
		},
		{
			name:         "Otimista com apelidos percentuais",
			scenarioType: domain.ScenarioOptimistic,
			params: domain.ScenarioParameters{
				RevenueGrowth: domain.Float(30),
				CostReduction: domain.Float(10),
			},
			want: Optimistic{Revenue: 0.30, Cost: -0.10, Expense: -0.05},
		},
		{
			name:         "Ajuste explícito prevalece sobre apelido",
			scenarioType: domain.ScenarioPessimistic,
			params: domain.ScenarioParameters{
				RevenueAdjustment: domain.Float(-0.5),
				RevenueGrowth:     domain.Float(10),
			},
			want: Pessimistic{Revenue: -0.5, Cost: 0.10, Expense: 0.10},
		},
		{
			name:         "Agressivo com investimento informado",
			scenarioType: domain.ScenarioAggressive,
			params:       domain.ScenarioParameters{InvestmentGrowth: domain.Float(50)},
			want:         Aggressive{InitialGrowth: 0.30, GrowthRate: 0.05, Investment: 0.50},
		},
		{
			name:         "Realista ignora parâmetros",
			scenarioType: domain.ScenarioRealistic,
			params:       domain.ScenarioParameters{RevenueAdjustment: domain.Float(4)},
			want:         Realistic{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScenarioFor(tt.scenarioType, tt.params, DefaultMinAdjustment, DefaultMaxAdjustment)
			require.NoError(t, err)
			assert.InDeltaMapValues(t, tt.want.Parameters(), got.Parameters(), 1e-9)
			assert.Equal(t, tt.scenarioType, got.Type())
		})
	}
}

func TestGenerateAllAndCompare(t *testing.T) {
	g := newTestGenerator()

	results, err := g.GenerateAll(janDataset())
	require.NoError(t, err)
	require.Len(t, results, 4)

	summary := Compare(results)

	assert.Equal(t, []string{"realista_Jan", "pessimista_Jan", "otimista_Jan", "agressivo_Jan"}, summary.Columns)
	require.Len(t, summary.Rows, 3)
	assert.Equal(t, "Margem Contribuição", summary.Rows[0].Label)
	assert.Equal(t, "Fluxo de Caixa", summary.Rows[1].Label)
	assert.Equal(t, "Saldo Final", summary.Rows[2].Label)

	assert.InDelta(t, 210000.0, summary.Rows[0].Values[0], 1e-6)
	assert.InDelta(t, 156000.0, summary.Rows[0].Values[1], 1e-6)
	assert.InDelta(t, 210000.0, summary.Rows[2].Values[0], 1e-6)

	for _, row := range summary.Rows {
		assert.Len(t, row.Values, len(summary.Columns))
	}
	assert.Len(t, summary.Metrics, 4)
	assert.Equal(t, results[1].Metrics, summary.Metrics[domain.ScenarioPessimistic])
}

func TestScenarioTypeInfos(t *testing.T) {
	infos := ScenarioTypeInfos()

	require.Len(t, infos, 4)
	assert.Equal(t, domain.ScenarioRealistic, infos[0].ID)
	assert.Empty(t, infos[0].Defaults)
	assert.Equal(t, -0.15, infos[1].Defaults["revenue_adjustment"])
	assert.Equal(t, 0.30, infos[3].Defaults["initial_growth"])
}

func TestNewGenerator_InvalidBoundsFallBack(t *testing.T) {
	g := NewGenerator(&config.Config{Scenario: config.Scenario{MinAdjustment: 1, MaxAdjustment: 0}})

	assert.Equal(t, DefaultMinAdjustment, g.minAdjustment)
	assert.Equal(t, DefaultMaxAdjustment, g.maxAdjustment)
}
