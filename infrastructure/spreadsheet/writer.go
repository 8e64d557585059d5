package spreadsheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Limite do Excel para nomes de abas
const maxSheetNameLength = 31

const defaultSheet = "Sheet1"

//go:generate mockgen -source=writer.go -destination=mocks/writer_mock.go -package=mocks

// Writer gera arquivos .xlsx a partir de dados processados e cenários
type Writer interface {
	WriteDataset(data *domain.FinancialData) ([]byte, error)
	WriteScenario(scenario *domain.Scenario) ([]byte, error)
}

type writer struct{}

func NewWriter() Writer {
	return &writer{}
}

// WriteDataset exporta uma aba por categoria e uma aba de metadados
func (w *writer) WriteDataset(data *domain.FinancialData) ([]byte, error) {
	if data == nil || data.Dataset == nil {
		return nil, fmt.Errorf("dados financeiros não informados")
	}

	metadata := [][]any{
		{"Arquivo original", data.FileName},
		{"Título", data.Title},
		{"Data de processamento", data.Dataset.Metadata.ProcessingDate.Format(time.DateTime)},
		{"Categorias encontradas", joinCategories(data.Dataset.PresentCategories())},
	}

	return w.write(data.Dataset.Categories, metadata)
}

// WriteScenario exporta as categorias ajustadas e calculadas do cenário,
// com parâmetros e métricas na aba de metadados
func (w *writer) WriteScenario(scenario *domain.Scenario) ([]byte, error) {
	if scenario == nil || scenario.Result == nil {
		return nil, fmt.Errorf("cenário não informado")
	}

	result := scenario.Result
	metadata := [][]any{
		{"Cenário", scenario.Name},
		{"Tipo", string(result.Type)},
		{"Data de geração", result.GeneratedAt.Format(time.DateTime)},
	}

	keys := make([]string, 0, len(result.Parameters))
	for key := range result.Parameters {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		metadata = append(metadata, []any{"Parâmetro " + key, result.Parameters[key]})
	}

	metrics := result.Metrics
	metadata = append(metadata,
		[]any{"Receita total", metrics.TotalRevenue},
		[]any{"Custos totais", metrics.TotalCosts},
		[]any{"Despesas totais", metrics.TotalExpenses},
		[]any{"Margem total", metrics.TotalMargin},
		[]any{"Fluxo de caixa total", metrics.TotalCashflow},
		[]any{"Saldo final", metrics.FinalBalance},
		[]any{"Margem (%)", metrics.MarginPercentage},
		[]any{"ROI (%)", metrics.ROI},
	)

	return w.write(result.Data, metadata)
}

func (w *writer) write(categories map[domain.FinancialCategory]domain.CategoryTable, metadata [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, category := range domain.AllCategories() {
		table, exists := categories[category]
		if !exists || len(table.Columns) == 0 {
			continue
		}

		name := sheetName(category)
		if first {
			if err := f.SetSheetName(defaultSheet, name); err != nil {
				return nil, err
			}
			first = false
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}

		if err := writeTable(f, name, table); err != nil {
			return nil, fmt.Errorf("erro ao escrever aba %s: %w", name, err)
		}
	}

	if first {
		if err := f.SetSheetName(defaultSheet, domain.MetadataSheetName); err != nil {
			return nil, err
		}
	} else if _, err := f.NewSheet(domain.MetadataSheetName); err != nil {
		return nil, err
	}

	if err := writeRows(f, domain.MetadataSheetName, append([][]any{{"Propriedade", "Valor"}}, metadata...)); err != nil {
		return nil, err
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar arquivo Excel: %w", err)
	}

	return buffer.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, table domain.CategoryTable) error {
	rows := make([][]any, 0, table.RowCount()+1)

	header := make([]any, len(table.Columns))
	for i, name := range table.ColumnNames() {
		header[i] = name
	}
	rows = append(rows, header)

	for r := 0; r < table.RowCount(); r++ {
		row := make([]any, len(table.Columns))
		for c, column := range table.Columns {
			row[c] = cellValue(column, r)
		}
		rows = append(rows, row)
	}

	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(column domain.Column, row int) any {
	if column.IsBlank(row) {
		return nil
	}
	if column.IsNumeric() {
		return column.Numbers[row].Value
	}
	return column.Texts[row]
}

func sheetName(category domain.FinancialCategory) string {
	name := category.SheetLabel()
	runes := []rune(name)
	if len(runes) > maxSheetNameLength {
		return string(runes[:maxSheetNameLength])
	}
	return name
}

func joinCategories(categories []domain.FinancialCategory) string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
