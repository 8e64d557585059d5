package forecasting

import (
	"math"

	"github.com/habitus/forecast-api/internal/domain"
)

// Limites padrão dos parâmetros de ajuste, em fração
const (
	DefaultMinAdjustment = -0.9
	DefaultMaxAdjustment = 5.0
)

// Fatores de eficiência do cenário agressivo sobre o crescimento das receitas
const (
	aggressiveCostShare    = 0.8
	aggressiveExpenseShare = 0.5
)

// Scenario é um dos quatro cenários com os parâmetros já resolvidos.
// Só pode ser implementado neste pacote.
type Scenario interface {
	Type() domain.ScenarioType
	// Parameters retorna os parâmetros efetivos, como são gravados no resultado
	Parameters() map[string]float64
	adjust(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable
}

// Realistic mantém os valores originais
type Realistic struct{}

// Pessimistic reduz receitas e aumenta custos e despesas
type Pessimistic struct {
	Revenue float64
	Cost    float64
	Expense float64
}

// Optimistic aumenta receitas e reduz custos e despesas
type Optimistic struct {
	Revenue float64
	Cost    float64
	Expense float64
}

// Aggressive aplica crescimento progressivo nas receitas, coluna a coluna,
// e aumenta os investimentos
type Aggressive struct {
	InitialGrowth float64
	GrowthRate    float64
	Investment    float64
}

func (Realistic) Type() domain.ScenarioType   { return domain.ScenarioRealistic }
func (Pessimistic) Type() domain.ScenarioType { return domain.ScenarioPessimistic }
func (Optimistic) Type() domain.ScenarioType  { return domain.ScenarioOptimistic }
func (Aggressive) Type() domain.ScenarioType  { return domain.ScenarioAggressive }

func (Realistic) Parameters() map[string]float64 {
	return map[string]float64{}
}

func (s Pessimistic) Parameters() map[string]float64 {
	return uniformParameters(s.Revenue, s.Cost, s.Expense)
}

func (s Optimistic) Parameters() map[string]float64 {
	return uniformParameters(s.Revenue, s.Cost, s.Expense)
}

func (s Aggressive) Parameters() map[string]float64 {
	return map[string]float64{
		"initial_growth":        s.InitialGrowth,
		"growth_rate":           s.GrowthRate,
		"investment_adjustment": s.Investment,
	}
}

func uniformParameters(revenue, cost, expense float64) map[string]float64 {
	return map[string]float64{
		"revenue_adjustment": revenue,
		"cost_adjustment":    cost,
		"expense_adjustment": expense,
	}
}

func (Realistic) adjust(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable {
	return cloneTables(base)
}

func (s Pessimistic) adjust(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable {
	return adjustUniform(base, s.Revenue, s.Cost, s.Expense)
}

func (s Optimistic) adjust(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable {
	return adjustUniform(base, s.Revenue, s.Cost, s.Expense)
}

func (s Aggressive) adjust(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable {
	data := cloneTables(base)

	revenue, hasRevenue := base[domain.CategoryRevenue]
	if hasRevenue {
		data[domain.CategoryRevenue] = revenue.MapNumeric(func(i int, _ string, v float64) float64 {
			return v * (1 + s.InitialGrowth + float64(i)*s.GrowthRate)
		})
	}

	if investments, ok := base[domain.CategoryInvestments]; ok {
		data[domain.CategoryInvestments] = investments.Scale(1 + s.Investment)
	}

	if !hasRevenue {
		return data
	}

	ratios := growthRatios(revenue, data[domain.CategoryRevenue])

	if costs, ok := base[domain.CategoryVariableCosts]; ok {
		data[domain.CategoryVariableCosts] = scaleByRatio(costs, ratios, aggressiveCostShare)
	}
	for _, category := range domain.FixedExpenseCategories {
		if expenses, ok := base[category]; ok {
			data[category] = scaleByRatio(expenses, ratios, aggressiveExpenseShare)
		}
	}

	return data
}

func adjustUniform(base map[domain.FinancialCategory]domain.CategoryTable, revenue, cost, expense float64) map[domain.FinancialCategory]domain.CategoryTable {
	data := make(map[domain.FinancialCategory]domain.CategoryTable, len(base))
	for category, table := range base {
		switch {
		case category == domain.CategoryRevenue:
			data[category] = table.Scale(1 + revenue)
		case category == domain.CategoryVariableCosts:
			data[category] = table.Scale(1 + cost)
		case isFixedExpense(category):
			data[category] = table.Scale(1 + expense)
		default:
			data[category] = table.Clone()
		}
	}
	return data
}

// growthRatios calcula, por nome de coluna, a razão entre a soma ajustada e a original
// das receitas. Razões não finitas (soma original zero) valem 1.
func growthRatios(original, adjusted domain.CategoryTable) map[string]float64 {
	ratios := make(map[string]float64)
	for _, name := range original.NumericColumns() {
		ratio := adjusted.ColumnSum(name) / original.ColumnSum(name)
		if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
			ratio = 1
		}
		ratios[name] = ratio
	}
	return ratios
}

// scaleByRatio aplica share do crescimento da coluna de receita de mesmo nome.
// Colunas sem correspondente em receitas não mudam.
func scaleByRatio(table domain.CategoryTable, ratios map[string]float64, share float64) domain.CategoryTable {
	return table.MapNumeric(func(_ int, column string, v float64) float64 {
		ratio, ok := ratios[column]
		if !ok {
			return v
		}
		return v * (1 + (ratio-1)*share)
	})
}

func isFixedExpense(category domain.FinancialCategory) bool {
	for _, c := range domain.FixedExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

func cloneTables(base map[domain.FinancialCategory]domain.CategoryTable) map[domain.FinancialCategory]domain.CategoryTable {
	data := make(map[domain.FinancialCategory]domain.CategoryTable, len(base))
	for category, table := range base {
		data[category] = table.Clone()
	}
	return data
}

// ScenarioFor resolve os parâmetros do cenário, aplicando os valores padrão do tipo
// aos campos não informados e validando os limites [low, high].
func ScenarioFor(scenarioType domain.ScenarioType, params domain.ScenarioParameters, low, high float64) (Scenario, error) {
	p := params.Normalized()

	switch scenarioType {
	case domain.ScenarioRealistic:
		return Realistic{}, nil

	case domain.ScenarioPessimistic:
		revenue, cost, expense, err := resolveUniform(p, -0.15, 0.10, 0.10, low, high)
		if err != nil {
			return nil, err
		}
		return Pessimistic{Revenue: revenue, Cost: cost, Expense: expense}, nil

	case domain.ScenarioOptimistic:
		revenue, cost, expense, err := resolveUniform(p, 0.20, -0.05, -0.05, low, high)
		if err != nil {
			return nil, err
		}
		return Optimistic{Revenue: revenue, Cost: cost, Expense: expense}, nil

	case domain.ScenarioAggressive:
		initial, err := resolve("initial_growth", p.InitialGrowth, 0.30, low, high)
		if err != nil {
			return nil, err
		}
		rate, err := resolve("growth_rate", p.GrowthRate, 0.05, low, high)
		if err != nil {
			return nil, err
		}
		investment, err := resolve("investment_adjustment", p.InvestmentAdjustment, 0.25, low, high)
		if err != nil {
			return nil, err
		}
		return Aggressive{InitialGrowth: initial, GrowthRate: rate, Investment: investment}, nil
	}

	return nil, newUnknownTypeError(string(scenarioType))
}

func resolveUniform(p domain.ScenarioParameters, revenue, cost, expense, low, high float64) (float64, float64, float64, error) {
	r, err := resolve("revenue_adjustment", p.RevenueAdjustment, revenue, low, high)
	if err != nil {
		return 0, 0, 0, err
	}
	c, err := resolve("cost_adjustment", p.CostAdjustment, cost, low, high)
	if err != nil {
		return 0, 0, 0, err
	}
	e, err := resolve("expense_adjustment", p.ExpenseAdjustment, expense, low, high)
	if err != nil {
		return 0, 0, 0, err
	}
	return r, c, e, nil
}

func resolve(name string, value *float64, fallback, low, high float64) (float64, error) {
	if value == nil {
		return fallback, nil
	}

	v := *value
	if math.IsNaN(v) || math.IsInf(v, 0) || v < low || v > high {
		return 0, newParameterError(name, v)
	}
	return v, nil
}

// ScenarioTypeInfos lista os tipos de cenário com seus parâmetros padrão
func ScenarioTypeInfos() []domain.ScenarioTypeInfo {
	defaults := map[domain.ScenarioType]Scenario{
		domain.ScenarioRealistic:   Realistic{},
		domain.ScenarioPessimistic: Pessimistic{Revenue: -0.15, Cost: 0.10, Expense: 0.10},
		domain.ScenarioOptimistic:  Optimistic{Revenue: 0.20, Cost: -0.05, Expense: -0.05},
		domain.ScenarioAggressive:  Aggressive{InitialGrowth: 0.30, GrowthRate: 0.05, Investment: 0.25},
	}

	descriptions := map[domain.ScenarioType][2]string{
		domain.ScenarioRealistic:   {"Realista", "Baseado nos dados atuais, sem ajustes"},
		domain.ScenarioPessimistic: {"Pessimista", "Redução de receitas e aumento de custos e despesas"},
		domain.ScenarioOptimistic:  {"Otimista", "Aumento de receitas e redução de custos e despesas"},
		domain.ScenarioAggressive:  {"Agressivo", "Crescimento progressivo de receitas e aumento de investimentos"},
	}

	infos := make([]domain.ScenarioTypeInfo, 0, len(domain.ScenarioTypes))
	for _, t := range domain.ScenarioTypes {
		infos = append(infos, domain.ScenarioTypeInfo{
			ID:          t,
			Name:        descriptions[t][0],
			Description: descriptions[t][1],
			Defaults:    defaults[t].Parameters(),
		})
	}
	return infos
}
