package extracting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/habitus/forecast-api/internal/domain"
)

var dateHeaderKeywords = []string{"data", "período", "periodo", "mes", "mês"}

// Formatos aceitos em colunas de data. Barras seguem o padrão brasileiro (dia/mês);
// traços com ano de dois dígitos seguem o formato padrão do Excel (mês-dia-ano).
var dateLayouts = []string{
	domain.DateLayout,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02/01/2006 15:04:05",
	"02/01/06",
	"01-02-06",
	"1-2-06",
	"01/2006",
	"1/2006",
	"2006-01",
	"2006/01/02",
}

// decimalMark é o separador decimal de um valor ou de uma coluna; zero quando indefinido
type decimalMark byte

const (
	markUnknown decimalMark = 0
	markComma   decimalMark = ','
	markDot     decimalMark = '.'
)

// parseNumber interpreta valores como "1234.5", "1.234,56", "R$ 1.234,56", "-10" e "(1.000)".
// Percentuais e textos não são números.
func parseNumber(raw string) (float64, bool) {
	return parseNumberWith(raw, markUnknown)
}

// parseNumberWith usa columnMark para valores ambíguos como "1.500", em que o
// separador pode ser decimal ou de milhar.
func parseNumberWith(raw string, columnMark decimalMark) (float64, bool) {
	s, negative, mark, ok := cleanNumber(raw)
	if !ok {
		return 0, false
	}

	if mark == markUnknown {
		mark = columnMark
	}

	v, err := strconv.ParseFloat(normalizeSeparators(s, mark), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	if negative {
		v = -v
	}

	return v, true
}

// cleanNumber remove sinal, parênteses, prefixo R$ e espaços. O separador decimal
// devolvido vem do próprio valor; com R$ e sem outra indicação, vale a vírgula.
func cleanNumber(raw string) (string, bool, decimalMark, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.Contains(s, "%") {
		return "", false, markUnknown, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}

	currency := strings.HasPrefix(s, "R$")
	s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimSpace(s[1:])
	}

	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return "", false, markUnknown, false
	}

	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != 'e' && r != 'E' && r != '+' && r != '-' {
			return "", false, markUnknown, false
		}
	}

	mark := detectMark(s)
	if mark == markUnknown && currency {
		mark = markComma
	}

	return s, negative, mark, true
}

// detectMark identifica o separador decimal quando o valor não é ambíguo
func detectMark(s string) decimalMark {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		// 1.234,56 ou 1,234.56
		if lastComma > lastDot {
			return markComma
		}
		return markDot
	case lastComma >= 0:
		return markFromSingleSeparator(s, ",", markComma, markDot)
	case lastDot >= 0:
		return markFromSingleSeparator(s, ".", markDot, markComma)
	}

	return markUnknown
}

func markFromSingleSeparator(s, sep string, self, other decimalMark) decimalMark {
	if strings.Count(s, sep) > 1 {
		// 1.234.567: o separador repetido só pode ser de milhar
		return other
	}
	if thousandsGrouped(s, sep) {
		return markUnknown
	}
	return self
}

// thousandsGrouped informa se s tem a forma de um agrupamento de milhar, como "1.500"
// ou "12,000": primeiro grupo com 1 a 3 dígitos sem zero à esquerda e grupos seguintes de 3 dígitos.
func thousandsGrouped(s, sep string) bool {
	groups := strings.Split(s, sep)
	first := groups[0]
	if len(first) == 0 || len(first) > 3 || first[0] == '0' || !allDigits(first) {
		return false
	}
	for _, group := range groups[1:] {
		if len(group) != 3 || !allDigits(group) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// normalizeSeparators converte separadores de milhar e decimal para o formato do strconv.
// Sem separador decimal conhecido, um separador isolado é tratado como de milhar.
func normalizeSeparators(s string, mark decimalMark) string {
	switch mark {
	case markComma:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	case markDot:
		return strings.ReplaceAll(s, ",", "")
	}

	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ",", "")
}

// columnDecimalMark devolve o separador decimal do primeiro valor não ambíguo da coluna
func columnDecimalMark(rows [][]string, col int) decimalMark {
	for _, row := range rows {
		if _, _, mark, ok := cleanNumber(row[col]); ok && mark != markUnknown {
			return mark
		}
	}
	return markUnknown
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isDateHeader(header string) bool {
	h := strings.ToLower(header)
	for _, keyword := range dateHeaderKeywords {
		if strings.Contains(h, keyword) {
			return true
		}
	}
	return false
}

// normalizeHeader preenche cabeçalhos vazios e diferencia nomes repetidos
func normalizeHeader(header []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)

	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = strings.TrimSpace(header[i])
		}
		if name == "" {
			name = fmt.Sprintf("Coluna %d", i+1)
		}

		if count, exists := seen[name]; exists {
			seen[name] = count + 1
			names[i] = fmt.Sprintf("%s.%d", name, count+1)
			continue
		}
		seen[name] = 0
		names[i] = name
	}

	return names
}

// rawTable é a planilha já com linhas vazias removidas e células alinhadas ao cabeçalho
type rawTable struct {
	header []string
	rows   [][]string
	kinds  []domain.ColumnKind
}

// prepareSheet remove linhas e colunas totalmente vazias e tipa cada coluna
func prepareSheet(sheet domain.Sheet) rawTable {
	width := len(sheet.Header)
	for _, row := range sheet.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	header := normalizeHeader(sheet.Header, width)

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, width)
		blank := true
		for i := 0; i < width && i < len(row); i++ {
			cells[i] = strings.TrimSpace(row[i])
			if cells[i] != "" {
				blank = false
			}
		}
		if !blank {
			rows = append(rows, cells)
		}
	}

	keep := make([]int, 0, width)
	for col := 0; col < width; col++ {
		for _, row := range rows {
			if row[col] != "" {
				keep = append(keep, col)
				break
			}
		}
	}

	table := rawTable{
		header: make([]string, len(keep)),
		rows:   make([][]string, len(rows)),
		kinds:  make([]domain.ColumnKind, len(keep)),
	}

	for i, col := range keep {
		table.header[i] = header[col]
	}
	for r, row := range rows {
		cells := make([]string, len(keep))
		for i, col := range keep {
			cells[i] = row[col]
		}
		table.rows[r] = cells
	}
	for i := range keep {
		table.kinds[i] = inferKind(table.rows, i)
	}

	return table
}

func (t rawTable) isEmpty() bool {
	return len(t.rows) == 0 || len(t.header) == 0
}

func (t rawTable) sheet(name string) domain.Sheet {
	return domain.Sheet{Name: name, Header: t.header, Rows: t.rows}
}

// inferKind considera a coluna numérica quando toda célula preenchida é um número
func inferKind(rows [][]string, col int) domain.ColumnKind {
	filled := 0
	for _, row := range rows {
		if row[col] == "" {
			continue
		}
		if _, ok := parseNumber(row[col]); !ok {
			return domain.ColumnText
		}
		filled++
	}

	if filled == 0 {
		return domain.ColumnText
	}
	return domain.ColumnNumeric
}

// buildTable converte a planilha preparada em tabela tipada. Colunas de texto com
// cabeçalho de data viram datas apenas quando todas as células preenchidas são datas válidas.
func buildTable(raw rawTable) domain.CategoryTable {
	table := domain.CategoryTable{Columns: make([]domain.Column, 0, len(raw.header))}

	for col, name := range raw.header {
		column := domain.Column{Name: name, Kind: raw.kinds[col]}

		if column.IsNumeric() {
			mark := columnDecimalMark(raw.rows, col)
			column.Numbers = make([]domain.Number, len(raw.rows))
			for r, row := range raw.rows {
				if v, ok := parseNumberWith(row[col], mark); ok {
					column.Numbers[r] = domain.NewNumber(v)
				}
			}
			table.Columns = append(table.Columns, column)
			continue
		}

		column.Texts = make([]string, len(raw.rows))
		for r, row := range raw.rows {
			column.Texts[r] = row[col]
		}

		if isDateHeader(name) {
			if dates, ok := parseDateColumn(column.Texts); ok {
				column.Kind = domain.ColumnDate
				column.Texts = dates
			}
		}

		table.Columns = append(table.Columns, column)
	}

	return table
}

func parseDateColumn(texts []string) ([]string, bool) {
	dates := make([]string, len(texts))
	for i, text := range texts {
		if text == "" {
			continue
		}
		t, ok := parseDate(text)
		if !ok {
			return nil, false
		}
		dates[i] = t.Format(domain.DateLayout)
	}
	return dates, true
}
