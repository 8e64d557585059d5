package forecasting

import (
	"fmt"
	"time"

	"github.com/habitus/forecast-api/internal/config"
	"github.com/habitus/forecast-api/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Rótulos da linha única das tabelas calculadas
const (
	marginLabel   = "Margem de Contribuição"
	cashFlowLabel = "Fluxo de Caixa"
	balanceLabel  = "Saldo Final"
)

// Rótulos das linhas do resumo comparativo
const (
	summaryMarginRow   = "Margem Contribuição"
	summaryCashFlowRow = "Fluxo de Caixa"
	summaryBalanceRow  = "Saldo Final"
)

// Generator gera cenários a partir de um conjunto de dados financeiros.
// Não guarda estado entre chamadas e pode ser usado concorrentemente.
type Generator struct {
	minAdjustment float64
	maxAdjustment float64
	now           func() time.Time
}

func NewGenerator(cfg *config.Config) *Generator {
	g := &Generator{
		minAdjustment: DefaultMinAdjustment,
		maxAdjustment: DefaultMaxAdjustment,
		now:           time.Now,
	}

	if cfg != nil && cfg.Scenario.MinAdjustment < cfg.Scenario.MaxAdjustment {
		g.minAdjustment = cfg.Scenario.MinAdjustment
		g.maxAdjustment = cfg.Scenario.MaxAdjustment
	}

	return g
}

// ScenarioFor resolve o cenário com os limites configurados
func (g *Generator) ScenarioFor(scenarioType domain.ScenarioType, params domain.ScenarioParameters) (Scenario, error) {
	return ScenarioFor(scenarioType, params, g.minAdjustment, g.maxAdjustment)
}

// Generate valida o tipo e os parâmetros e gera o cenário. O conjunto de dados de
// entrada não é alterado.
func (g *Generator) Generate(dataset *domain.FinancialDataset, scenarioType domain.ScenarioType, params domain.ScenarioParameters) (*domain.ScenarioResult, error) {
	scenario, err := g.ScenarioFor(scenarioType, params)
	if err != nil {
		return nil, err
	}

	return g.Apply(dataset, scenario), nil
}

// Apply gera o resultado de um cenário já resolvido
func (g *Generator) Apply(dataset *domain.FinancialDataset, scenario Scenario) *domain.ScenarioResult {
	data := scenario.adjust(baseTables(dataset))
	recalculateDerived(data)

	return &domain.ScenarioResult{
		Type:        scenario.Type(),
		Parameters:  scenario.Parameters(),
		Data:        data,
		Metrics:     calculateMetrics(data),
		GeneratedAt: g.now(),
	}
}

// GenerateAll gera os quatro cenários com os parâmetros padrão, na ordem de domain.ScenarioTypes
func (g *Generator) GenerateAll(dataset *domain.FinancialDataset) ([]*domain.ScenarioResult, error) {
	results := make([]*domain.ScenarioResult, 0, len(domain.ScenarioTypes))
	for _, t := range domain.ScenarioTypes {
		result, err := g.Generate(dataset, t, domain.ScenarioParameters{})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// baseTables copia as categorias base do conjunto de dados. Categorias calculadas
// eventualmente presentes na entrada são descartadas e recalculadas.
func baseTables(dataset *domain.FinancialDataset) map[domain.FinancialCategory]domain.CategoryTable {
	base := make(map[domain.FinancialCategory]domain.CategoryTable)
	if dataset == nil {
		return base
	}

	for _, category := range domain.BaseCategories {
		if table, ok := dataset.Categories[category]; ok {
			base[category] = table.Clone()
		}
	}
	return base
}

// commonColumns retorna as colunas numéricas presentes em todas as categorias base
// preenchidas, na ordem da primeira categoria preenchida.
func commonColumns(data map[domain.FinancialCategory]domain.CategoryTable) []string {
	var order []string
	var counts map[string]int
	populated := 0

	for _, category := range domain.BaseCategories {
		table, ok := data[category]
		if !ok || table.IsEmpty() {
			continue
		}

		columns := table.NumericColumns()
		if populated == 0 {
			order = columns
			counts = make(map[string]int, len(columns))
		}
		populated++

		for _, name := range columns {
			counts[name]++
		}
	}

	common := make([]string, 0, len(order))
	for _, name := range order {
		if counts[name] == populated {
			common = append(common, name)
		}
	}
	return common
}

func columnSums(data map[domain.FinancialCategory]domain.CategoryTable, columns []string, categories ...domain.FinancialCategory) []float64 {
	sums := make([]float64, len(columns))
	for _, category := range categories {
		table, ok := data[category]
		if !ok {
			continue
		}
		for i, name := range columns {
			sums[i] += table.ColumnSum(name)
		}
	}
	return sums
}

// recalculateDerived substitui as três categorias calculadas a partir das categorias base
func recalculateDerived(data map[domain.FinancialCategory]domain.CategoryTable) {
	columns := commonColumns(data)

	revenue := columnSums(data, columns, domain.CategoryRevenue)
	costs := columnSums(data, columns, domain.CategoryVariableCosts)
	expenses := columnSums(data, columns, domain.FixedExpenseCategories...)

	margin := floats.SubTo(make([]float64, len(columns)), revenue, costs)
	cashFlow := floats.SubTo(make([]float64, len(columns)), margin, expenses)
	balance := floats.CumSum(make([]float64, len(columns)), cashFlow)

	data[domain.CategoryContributionMargin] = domain.NewSummaryTable(marginLabel, columns, margin)
	data[domain.CategoryCashFlow] = domain.NewSummaryTable(cashFlowLabel, columns, cashFlow)
	data[domain.CategoryFinalBalance] = domain.NewSummaryTable(balanceLabel, columns, balance)
}

func calculateMetrics(data map[domain.FinancialCategory]domain.CategoryTable) domain.ScenarioMetrics {
	metrics := domain.ScenarioMetrics{
		TotalRevenue:  data[domain.CategoryRevenue].Total(),
		TotalCosts:    data[domain.CategoryVariableCosts].Total(),
		TotalMargin:   data[domain.CategoryContributionMargin].Total(),
		TotalCashflow: data[domain.CategoryCashFlow].Total(),
		FinalBalance:  lastValue(data[domain.CategoryFinalBalance]),
	}

	for _, category := range domain.FixedExpenseCategories {
		metrics.TotalExpenses += data[category].Total()
	}

	if metrics.TotalRevenue > 0 {
		metrics.MarginPercentage = metrics.TotalMargin / metrics.TotalRevenue * 100
	}

	if investment := data[domain.CategoryInvestments].Total(); investment > 0 {
		metrics.ROI = metrics.TotalCashflow / investment * 100
	}

	return metrics
}

// lastValue retorna o último valor preenchido da linha de saldo, percorrendo as
// colunas numéricas da direita para a esquerda
func lastValue(table domain.CategoryTable) float64 {
	rows := table.RowCount()
	for i := len(table.Columns) - 1; i >= 0; i-- {
		column := table.Columns[i]
		if !column.IsNumeric() {
			continue
		}
		for r := rows - 1; r >= 0; r-- {
			if column.Numbers[r].Valid {
				return column.Numbers[r].Value
			}
		}
	}
	return 0
}

// Compare monta o resumo comparativo dos cenários, com uma coluna <cenario>_<coluna>
// para cada coluna comum de cada cenário
func Compare(results []*domain.ScenarioResult) domain.ScenarioSummary {
	summary := domain.ScenarioSummary{
		Columns: []string{},
		Metrics: make(map[domain.ScenarioType]domain.ScenarioMetrics, len(results)),
	}

	margin := domain.ScenarioSummaryRow{Label: summaryMarginRow, Values: []float64{}}
	cashFlow := domain.ScenarioSummaryRow{Label: summaryCashFlowRow, Values: []float64{}}
	balance := domain.ScenarioSummaryRow{Label: summaryBalanceRow, Values: []float64{}}

	for _, result := range results {
		if result == nil {
			continue
		}
		summary.Metrics[result.Type] = result.Metrics

		marginTable := result.Table(domain.CategoryContributionMargin)
		cashFlowTable := result.Table(domain.CategoryCashFlow)
		balanceTable := result.Table(domain.CategoryFinalBalance)

		for _, name := range marginTable.NumericColumns() {
			summary.Columns = append(summary.Columns, fmt.Sprintf("%s_%s", result.Type, name))
			margin.Values = append(margin.Values, marginTable.ColumnSum(name))
			cashFlow.Values = append(cashFlow.Values, cashFlowTable.ColumnSum(name))

			column, _ := balanceTable.Column(name)
			balance.Values = append(balance.Values, lastValue(domain.CategoryTable{Columns: []domain.Column{column}}))
		}
	}

	summary.Rows = []domain.ScenarioSummaryRow{margin, cashFlow, balance}
	return summary
}
