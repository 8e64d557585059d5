package domain

import "time"

type ScenarioType string

const (
	ScenarioRealistic   ScenarioType = "realista"
	ScenarioPessimistic ScenarioType = "pessimista"
	ScenarioOptimistic  ScenarioType = "otimista"
	ScenarioAggressive  ScenarioType = "agressivo"
)

// ScenarioTypes lista os cenários na ordem de geração e comparação
var ScenarioTypes = []ScenarioType{
	ScenarioRealistic,
	ScenarioPessimistic,
	ScenarioOptimistic,
	ScenarioAggressive,
}

func (t ScenarioType) IsValid() bool {
	for _, s := range ScenarioTypes {
		if t == s {
			return true
		}
	}
	return false
}

// ScenarioTypeInfo descreve um tipo de cenário para listagem na interface
type ScenarioTypeInfo struct {
	ID          ScenarioType       `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Defaults    map[string]float64 `json:"defaults"`
}

// ScenarioParameters são os ajustes opcionais informados pelo usuário, em fração
// (0.1 = 10%). Os campos *Growth/*Reduction são os apelidos percentuais da API.
type ScenarioParameters struct {
	RevenueAdjustment    *float64 `json:"revenue_adjustment,omitempty"`
	CostAdjustment       *float64 `json:"cost_adjustment,omitempty"`
	ExpenseAdjustment    *float64 `json:"expense_adjustment,omitempty"`
	InvestmentAdjustment *float64 `json:"investment_adjustment,omitempty"`
	InitialGrowth        *float64 `json:"initial_growth,omitempty"`
	GrowthRate           *float64 `json:"growth_rate,omitempty"`

	RevenueGrowth    *float64 `json:"revenue_growth,omitempty"`
	CostReduction    *float64 `json:"cost_reduction,omitempty"`
	ExpenseGrowth    *float64 `json:"expense_growth,omitempty"`
	InvestmentGrowth *float64 `json:"investment_growth,omitempty"`
}

// Normalized converte os apelidos percentuais em frações. Um campo *Adjustment
// explícito prevalece sobre o apelido correspondente.
func (p ScenarioParameters) Normalized() ScenarioParameters {
	n := ScenarioParameters{
		RevenueAdjustment:    p.RevenueAdjustment,
		CostAdjustment:       p.CostAdjustment,
		ExpenseAdjustment:    p.ExpenseAdjustment,
		InvestmentAdjustment: p.InvestmentAdjustment,
		InitialGrowth:        p.InitialGrowth,
		GrowthRate:           p.GrowthRate,
	}

	if n.RevenueAdjustment == nil && p.RevenueGrowth != nil {
		n.RevenueAdjustment = Float(*p.RevenueGrowth / 100)
	}
	if n.CostAdjustment == nil && p.CostReduction != nil {
		n.CostAdjustment = Float(-*p.CostReduction / 100)
	}
	if n.ExpenseAdjustment == nil && p.ExpenseGrowth != nil {
		n.ExpenseAdjustment = Float(*p.ExpenseGrowth / 100)
	}
	if n.InvestmentAdjustment == nil && p.InvestmentGrowth != nil {
		n.InvestmentAdjustment = Float(*p.InvestmentGrowth / 100)
	}

	return n
}

// Float devolve um ponteiro para v
func Float(v float64) *float64 {
	return &v
}

type ScenarioMetrics struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalCosts       float64 `json:"total_costs"`
	TotalExpenses    float64 `json:"total_expenses"`
	TotalMargin      float64 `json:"total_margin"`
	TotalCashflow    float64 `json:"total_cashflow"`
	FinalBalance     float64 `json:"final_balance"`
	MarginPercentage float64 `json:"margin_percentage"`
	ROI              float64 `json:"roi"`
}

// ScenarioResult é o resultado de um cenário: as categorias base ajustadas,
// as três categorias calculadas e as métricas.
type ScenarioResult struct {
	Type        ScenarioType                        `json:"scenario_type"`
	Parameters  map[string]float64                  `json:"parameters"`
	Data        map[FinancialCategory]CategoryTable `json:"data"`
	Metrics     ScenarioMetrics                     `json:"metrics"`
	GeneratedAt time.Time                           `json:"generated_at"`
}

// Table retorna a tabela da categoria no resultado, ou uma tabela vazia
func (r *ScenarioResult) Table(category FinancialCategory) CategoryTable {
	if r == nil || r.Data == nil {
		return CategoryTable{}
	}
	return r.Data[category]
}

type ScenarioSummaryRow struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// ScenarioSummary compara os cenários lado a lado. As colunas seguem o padrão
// <cenario>_<coluna>.
type ScenarioSummary struct {
	Columns []string                         `json:"columns"`
	Rows    []ScenarioSummaryRow             `json:"rows"`
	Metrics map[ScenarioType]ScenarioMetrics `json:"metrics"`
}

// Scenario é o registro persistido de um cenário gerado
type Scenario struct {
	ID              string          `json:"id"`
	UserID          int             `json:"user_id"`
	FinancialDataID string          `json:"financial_data_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            ScenarioType    `json:"scenario_type"`
	Result          *ScenarioResult `json:"result,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

type ScenarioFilter struct {
	UserID          int
	FinancialDataID string
	Type            ScenarioType
	Limit           uint64
	Offset          uint64
}

// CreateScenarioRequest é o corpo de criação de um cenário
type CreateScenarioRequest struct {
	FinancialDataID string             `json:"financial_data_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	Type            ScenarioType       `json:"scenario_type"`
	Parameters      ScenarioParameters `json:"parameters"`
}
