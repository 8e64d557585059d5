package extracting

import (
	"context"
	"strings"
	"time"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/pkg/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Extractor transforma as planilhas brutas em um FinancialDataset classificado
type Extractor struct {
	classifier *Classifier
	now        func() time.Time
}

func NewExtractor(classifier *Classifier) *Extractor {
	if classifier == nil {
		classifier = NewClassifier()
	}

	return &Extractor{
		classifier: classifier,
		now:        time.Now,
	}
}

// Extract classifica cada planilha, normaliza os dados e valida o resultado.
// Planilhas da mesma categoria são unidas na ordem em que aparecem no arquivo.
func (e *Extractor) Extract(ctx context.Context, sheets []domain.Sheet) (*domain.FinancialDataset, []domain.CategoryInfo, error) {
	logger := log.ForContext(ctx)

	if len(sheets) == 0 {
		return nil, nil, newValidationError(ErrNoSheets, "")
	}

	metadata := domain.Metadata{
		SheetNames:      make([]string, 0, len(sheets)),
		ProcessingDate:  e.now(),
		TotalSheets:     len(sheets),
		CategoriesFound: []domain.FinancialCategory{},
		DroppedSheets:   []string{},
	}

	categories := make(map[domain.FinancialCategory]domain.CategoryTable)
	hasData := false

	for _, sheet := range sheets {
		metadata.SheetNames = append(metadata.SheetNames, sheet.Name)

		if sheet.Name == domain.MetadataSheetName {
			metadata.DroppedSheets = append(metadata.DroppedSheets, sheet.Name)
			continue
		}

		raw := prepareSheet(sheet)
		if raw.isEmpty() {
			logger.Debugf("extracting: planilha '%s' vazia ignorada", sheet.Name)
			continue
		}
		hasData = true

		category, ok := e.classifier.Classify(raw.sheet(sheet.Name), raw.kinds)
		if !ok {
			logger.Warnf("extracting: planilha '%s' não corresponde a nenhuma categoria", sheet.Name)
			metadata.DroppedSheets = append(metadata.DroppedSheets, sheet.Name)
			continue
		}

		table := buildTable(raw)
		if existing, exists := categories[category]; exists {
			table = existing.Append(table)
		}
		categories[category] = table

		logger.Infof("extracting: planilha '%s' processada como '%s'", sheet.Name, category)
	}

	if !hasData {
		return nil, nil, newValidationError(ErrNoSheetData, "")
	}

	if len(categories) == 0 {
		return nil, nil, newValidationError(ErrNoCategories, "")
	}

	for _, category := range domain.BaseCategories {
		table, exists := categories[category]
		if !exists {
			continue
		}
		if len(table.NumericColumns()) == 0 {
			return nil, nil, newCategoryValidationError(category)
		}
		metadata.CategoriesFound = append(metadata.CategoriesFound, category)
	}

	metadata.TotalCategories = len(metadata.CategoriesFound)
	metadata.DataSummary = Summarize(categories)

	dataset := &domain.FinancialDataset{
		Categories: categories,
		Metadata:   metadata,
	}

	return dataset, CategoryInfos(metadata.CategoriesFound), nil
}

// DisplayName formata o identificador da categoria para exibição: custos_variaveis vira Custos Variaveis
func DisplayName(category domain.FinancialCategory) string {
	return cases.Title(language.BrazilianPortuguese).String(strings.ReplaceAll(string(category), "_", " "))
}

// CategoryInfos monta a lista de categorias com nome e descrição para a interface
func CategoryInfos(categories []domain.FinancialCategory) []domain.CategoryInfo {
	infos := make([]domain.CategoryInfo, 0, len(categories))
	for _, category := range categories {
		infos = append(infos, domain.CategoryInfo{
			ID:          category,
			Name:        DisplayName(category),
			Description: category.Description(),
		})
	}
	return infos
}
