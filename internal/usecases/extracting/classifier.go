package extracting

import (
	"strings"

	"github.com/habitus/forecast-api/internal/domain"
)

// Rule associa uma categoria às palavras-chave que a identificam
type Rule struct {
	Category domain.FinancialCategory
	Keywords []string
}

// DefaultRules retorna as regras de classificação na ordem de prioridade.
// A primeira regra que casar vence, então "vendas" é receita antes de ser despesa comercial.
func DefaultRules() []Rule {
	return []Rule{
		{Category: domain.CategoryRevenue, Keywords: []string{"receita", "faturamento", "vendas", "entrada"}},
		{Category: domain.CategoryVariableCosts, Keywords: []string{"custo variável", "custo operacional", "matéria prima"}},
		{Category: domain.CategoryPersonnelExpenses, Keywords: []string{"despesa pessoal", "salário", "remuneração", "benefício"}},
		{Category: domain.CategoryCommercialExpenses, Keywords: []string{"despesa comercial", "marketing", "vendas", "comissão"}},
		{Category: domain.CategoryAdminExpenses, Keywords: []string{"despesa administrativa", "escritório", "aluguel", "utilidade"}},
		{Category: domain.CategoryInvestments, Keywords: []string{"investimento", "aquisição", "ativo", "imobilizado"}},
	}
}

// Classifier identifica a categoria financeira de uma planilha
type Classifier struct {
	rules []Rule
}

// NewClassifier cria um classificador. Sem regras, usa DefaultRules.
// Regras de categorias calculadas são ignoradas.
func NewClassifier(rules ...Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	normalized := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.Category.IsDerived() {
			continue
		}

		keywords := make([]string, 0, len(rule.Keywords))
		for _, k := range rule.Keywords {
			k = strings.ToLower(strings.TrimSpace(k))
			if k != "" {
				keywords = append(keywords, k)
			}
		}
		normalized = append(normalized, Rule{Category: rule.Category, Keywords: keywords})
	}

	return &Classifier{rules: normalized}
}

// Classify procura palavras-chave primeiro no nome da planilha, depois no conteúdo
// das colunas de texto e por fim nos cabeçalhos.
func (c *Classifier) Classify(sheet domain.Sheet, kinds []domain.ColumnKind) (domain.FinancialCategory, bool) {
	if category, ok := c.match(strings.ToLower(sheet.Name)); ok {
		return category, true
	}

	if category, ok := c.match(textContent(sheet, kinds)); ok {
		return category, true
	}

	return c.match(strings.ToLower(strings.Join(sheet.Header, " ")))
}

func (c *Classifier) match(text string) (domain.FinancialCategory, bool) {
	if text == "" {
		return "", false
	}

	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Category, true
			}
		}
	}

	return "", false
}

// textContent concatena, em minúsculas, as células das colunas que não são numéricas
func textContent(sheet domain.Sheet, kinds []domain.ColumnKind) string {
	var b strings.Builder

	for col := range sheet.Header {
		if col < len(kinds) && kinds[col] == domain.ColumnNumeric {
			continue
		}
		for _, row := range sheet.Rows {
			if col < len(row) && row[col] != "" {
				b.WriteString(row[col])
				b.WriteByte(' ')
			}
		}
	}

	return strings.ToLower(b.String())
}
