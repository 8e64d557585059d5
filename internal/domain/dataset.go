package domain

import "time"

// MetadataSheetName é a aba de metadados dos arquivos exportados, ignorada na leitura
const MetadataSheetName = "Metadados"

// Sheet é uma planilha bruta lida do arquivo Excel: cabeçalho e células como texto
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// IsEmpty indica se a planilha não possui nenhuma célula preenchida
func (s Sheet) IsEmpty() bool {
	for _, row := range s.Rows {
		for _, cell := range row {
			if cell != "" {
				return false
			}
		}
	}
	return true
}

type CategorySummary struct {
	RowCount              int                `json:"row_count"`
	ColumnCount           int                `json:"column_count"`
	NumericColumns        []string           `json:"numeric_columns"`
	MissingDataPercentage float64            `json:"missing_data_percentage"`
	ColumnSums            map[string]float64 `json:"column_sums"`
}

type Metadata struct {
	SheetNames      []string                              `json:"sheet_names"`
	ProcessingDate  time.Time                             `json:"processing_date"`
	CategoriesFound []FinancialCategory                   `json:"categories_found"`
	TotalSheets     int                                   `json:"total_sheets"`
	TotalCategories int                                   `json:"total_categories"`
	DroppedSheets   []string                              `json:"dropped_sheets"`
	DataSummary     map[FinancialCategory]CategorySummary `json:"data_summary,omitempty"`
}

// FinancialDataset agrupa as tabelas classificadas de uma planilha.
// Não deve ser alterado após a criação; as transformações criam novas tabelas.
type FinancialDataset struct {
	Categories map[FinancialCategory]CategoryTable `json:"data"`
	Metadata   Metadata                            `json:"metadata"`
}

// Table retorna a tabela da categoria, ou uma tabela vazia quando ausente
func (d *FinancialDataset) Table(category FinancialCategory) CategoryTable {
	if d == nil || d.Categories == nil {
		return CategoryTable{}
	}
	return d.Categories[category]
}

// HasCategory indica se a categoria existe e possui linhas
func (d *FinancialDataset) HasCategory(category FinancialCategory) bool {
	return !d.Table(category).IsEmpty()
}

// PresentCategories retorna as categorias com dados, na ordem canônica
func (d *FinancialDataset) PresentCategories() []FinancialCategory {
	present := make([]FinancialCategory, 0)
	for _, category := range AllCategories() {
		if d.HasCategory(category) {
			present = append(present, category)
		}
	}
	return present
}

// FinancialData é o registro persistido de uma planilha processada
type FinancialData struct {
	ID          string            `json:"id"`
	UserID      int               `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	FileName    string            `json:"file_name"`
	Dataset     *FinancialDataset `json:"dataset,omitempty"`
	Categories  []CategoryInfo    `json:"categories"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FinancialDataFilter filtra a listagem de planilhas. UserID zero lista todos os usuários.
type FinancialDataFilter struct {
	UserID int
	Limit  uint64
	Offset uint64
}
