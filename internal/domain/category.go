package domain

import "fmt"

// FinancialCategory identifica um grupo de lançamentos financeiros.
// Os valores são persistidos e expostos na API, não devem ser alterados.
type FinancialCategory string

const (
	CategoryRevenue            FinancialCategory = "receitas"
	CategoryVariableCosts      FinancialCategory = "custos_variaveis"
	CategoryPersonnelExpenses  FinancialCategory = "despesas_pessoal"
	CategoryCommercialExpenses FinancialCategory = "despesas_comerciais"
	CategoryAdminExpenses      FinancialCategory = "despesas_administrativas"
	CategoryInvestments        FinancialCategory = "investimentos"

	// Categorias calculadas
	CategoryContributionMargin FinancialCategory = "margem_contribuicao"
	CategoryCashFlow           FinancialCategory = "fluxo_de_caixa"
	CategoryFinalBalance       FinancialCategory = "saldo_final"
)

// BaseCategories lista as categorias de entrada na ordem de prioridade usada pelo classificador
// e pelo alinhamento de colunas do gerador de cenários.
var BaseCategories = []FinancialCategory{
	CategoryRevenue,
	CategoryVariableCosts,
	CategoryPersonnelExpenses,
	CategoryCommercialExpenses,
	CategoryAdminExpenses,
	CategoryInvestments,
}

var DerivedCategories = []FinancialCategory{
	CategoryContributionMargin,
	CategoryCashFlow,
	CategoryFinalBalance,
}

// FixedExpenseCategories agrupa as despesas somadas como despesas fixas
var FixedExpenseCategories = []FinancialCategory{
	CategoryPersonnelExpenses,
	CategoryCommercialExpenses,
	CategoryAdminExpenses,
}

var categoryDescriptions = map[FinancialCategory]string{
	CategoryRevenue:            "Entradas de recursos financeiros",
	CategoryVariableCosts:      "Custos diretos relacionados à operação",
	CategoryPersonnelExpenses:  "Despesas com pessoal e folha de pagamento",
	CategoryCommercialExpenses: "Despesas comerciais e de marketing",
	CategoryAdminExpenses:      "Despesas administrativas e gerais",
	CategoryInvestments:        "Aplicações de capital",
	CategoryContributionMargin: "Margem de contribuição financeira",
	CategoryCashFlow:           "Fluxo de caixa operacional",
	CategoryFinalBalance:       "Saldo final acumulado",
}

// Nomes de aba usados na exportação. Contêm as palavras-chave da própria categoria
// para que o arquivo exportado seja classificado da mesma forma ao ser reenviado.
var categorySheetLabels = map[FinancialCategory]string{
	CategoryRevenue:            "Receitas",
	CategoryVariableCosts:      "Custo Variável",
	CategoryPersonnelExpenses:  "Despesa Pessoal",
	CategoryCommercialExpenses: "Despesa Comercial",
	CategoryAdminExpenses:      "Despesa Administrativa",
	CategoryInvestments:        "Investimentos",
	CategoryContributionMargin: "Margem Contribuição",
	CategoryCashFlow:           "Fluxo de Caixa",
	CategoryFinalBalance:       "Saldo Final",
}

// CategoryInfo é a representação de uma categoria para listagem na interface
type CategoryInfo struct {
	ID          FinancialCategory `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
}

func (c FinancialCategory) IsDerived() bool {
	for _, derived := range DerivedCategories {
		if c == derived {
			return true
		}
	}
	return false
}

func (c FinancialCategory) IsValid() bool {
	_, ok := categoryDescriptions[c]
	return ok
}

// Description retorna a descrição fixa da categoria
func (c FinancialCategory) Description() string {
	if description, ok := categoryDescriptions[c]; ok {
		return description
	}
	return "Categoria financeira"
}

// SheetLabel retorna o nome da aba da categoria em arquivos exportados
func (c FinancialCategory) SheetLabel() string {
	if label, ok := categorySheetLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseCategory converte um identificador textual em categoria
func ParseCategory(s string) (FinancialCategory, error) {
	category := FinancialCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("categoria desconhecida: %s", s)
	}
	return category, nil
}

// AllCategories retorna as categorias base seguidas das calculadas
func AllCategories() []FinancialCategory {
	all := make([]FinancialCategory, 0, len(BaseCategories)+len(DerivedCategories))
	all = append(all, BaseCategories...)
	all = append(all, DerivedCategories...)
	return all
}
