package domain

import (
	"math"
	"strconv"
)

type ColumnKind string

const (
	ColumnNumeric ColumnKind = "numeric"
	ColumnText    ColumnKind = "text"
	ColumnDate    ColumnKind = "date"
)

// DateLayout é o formato usado para armazenar colunas de data normalizadas
const DateLayout = "2006-01-02"

// Number é uma célula numérica; Valid é false para células em branco.
type Number struct {
	Value float64
	Valid bool
}

func NewNumber(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, n.Value, 'f', -1, 64), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number{}
		return nil
	}

	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}

	*n = NewNumber(v)
	return nil
}

// Column armazena os valores de uma coluna. Colunas numéricas usam Numbers,
// colunas de texto e data usam Texts (datas no formato DateLayout).
type Column struct {
	Name    string     `json:"name"`
	Kind    ColumnKind `json:"kind"`
	Numbers []Number   `json:"numbers,omitempty"`
	Texts   []string   `json:"texts,omitempty"`
}

func (c Column) IsNumeric() bool {
	return c.Kind == ColumnNumeric
}

func (c Column) Len() int {
	if c.IsNumeric() {
		return len(c.Numbers)
	}
	return len(c.Texts)
}

// Cell retorna o valor da linha i formatado como texto ("" para células vazias)
func (c Column) Cell(i int) string {
	if i < 0 || i >= c.Len() {
		return ""
	}

	if c.IsNumeric() {
		if !c.Numbers[i].Valid {
			return ""
		}
		return strconv.FormatFloat(c.Numbers[i].Value, 'f', -1, 64)
	}

	return c.Texts[i]
}

func (c Column) IsBlank(i int) bool {
	if i < 0 || i >= c.Len() {
		return true
	}
	if c.IsNumeric() {
		return !c.Numbers[i].Valid
	}
	return c.Texts[i] == ""
}

// Sum soma as células válidas da coluna
func (c Column) Sum() float64 {
	total := 0.0
	for _, n := range c.Numbers {
		if n.Valid {
			total += n.Value
		}
	}
	return total
}

// Values retorna as células válidas da coluna na ordem das linhas
func (c Column) Values() []float64 {
	values := make([]float64, 0, len(c.Numbers))
	for _, n := range c.Numbers {
		if n.Valid {
			values = append(values, n.Value)
		}
	}
	return values
}

func (c Column) clone() Column {
	cloned := Column{Name: c.Name, Kind: c.Kind}
	if c.Numbers != nil {
		cloned.Numbers = append([]Number(nil), c.Numbers...)
	}
	if c.Texts != nil {
		cloned.Texts = append([]string(nil), c.Texts...)
	}
	return cloned
}

func (c Column) pad(rows int) Column {
	for c.Len() < rows {
		if c.IsNumeric() {
			c.Numbers = append(c.Numbers, Number{})
		} else {
			c.Texts = append(c.Texts, "")
		}
	}
	return c
}

func (c Column) asText() Column {
	if !c.IsNumeric() {
		return Column{Name: c.Name, Kind: ColumnText, Texts: c.Texts}
	}

	texts := make([]string, len(c.Numbers))
	for i := range c.Numbers {
		texts[i] = c.Cell(i)
	}
	return Column{Name: c.Name, Kind: ColumnText, Texts: texts}
}

// CategoryTable é uma tabela com colunas nomeadas e ordenadas. Todas as colunas têm
// o mesmo número de linhas. Os métodos nunca alteram o receptor.
type CategoryTable struct {
	Columns []Column `json:"columns"`
}

func (t CategoryTable) RowCount() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

func (t CategoryTable) IsEmpty() bool {
	return len(t.Columns) == 0 || t.RowCount() == 0
}

func (t CategoryTable) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}

// NumericColumns retorna os nomes das colunas numéricas na ordem da tabela
func (t CategoryTable) NumericColumns() []string {
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

func (t CategoryTable) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnSum soma uma coluna numérica; colunas ausentes ou não numéricas somam zero
func (t CategoryTable) ColumnSum(name string) float64 {
	c, ok := t.Column(name)
	if !ok || !c.IsNumeric() {
		return 0
	}
	return c.Sum()
}

// Total soma todas as células de todas as colunas numéricas
func (t CategoryTable) Total() float64 {
	total := 0.0
	for _, c := range t.Columns {
		if c.IsNumeric() {
			total += c.Sum()
		}
	}
	return total
}

func (t CategoryTable) Clone() CategoryTable {
	if t.Columns == nil {
		return CategoryTable{}
	}
	columns := make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		columns[i] = c.clone()
	}
	return CategoryTable{Columns: columns}
}

// MapNumeric cria uma nova tabela aplicando fn a cada célula numérica válida.
// index é a posição da coluna entre as colunas numéricas. Células vazias e colunas
// não numéricas são copiadas sem alteração.
func (t CategoryTable) MapNumeric(fn func(index int, column string, value float64) float64) CategoryTable {
	result := t.Clone()

	index := 0
	for ci, c := range result.Columns {
		if !c.IsNumeric() {
			continue
		}
		for ri, n := range c.Numbers {
			if n.Valid {
				result.Columns[ci].Numbers[ri] = NewNumber(fn(index, c.Name, n.Value))
			}
		}
		index++
	}

	return result
}

// Scale multiplica todas as células numéricas por factor
func (t CategoryTable) Scale(factor float64) CategoryTable {
	return t.MapNumeric(func(_ int, _ string, v float64) float64 {
		return v * factor
	})
}

// Append retorna uma tabela com as linhas de t seguidas das linhas de other.
// Colunas ausentes em um dos lados ficam vazias; colunas com tipos divergentes viram texto.
func (t CategoryTable) Append(other CategoryTable) CategoryTable {
	if len(t.Columns) == 0 {
		return other.Clone()
	}
	if len(other.Columns) == 0 {
		return t.Clone()
	}

	top := t.RowCount()
	total := top + other.RowCount()

	result := CategoryTable{}
	seen := make(map[string]bool, len(t.Columns))

	for _, c := range t.Columns {
		seen[c.Name] = true
		merged := c.clone()

		o, ok := other.Column(c.Name)
		if !ok {
			result.Columns = append(result.Columns, merged.pad(total))
			continue
		}

		if o.Kind != merged.Kind {
			merged = merged.asText()
			o = o.asText()
		}

		if merged.IsNumeric() {
			merged.Numbers = append(merged.Numbers, o.Numbers...)
		} else {
			merged.Texts = append(merged.Texts, o.Texts...)
		}
		result.Columns = append(result.Columns, merged.pad(total))
	}

	for _, o := range other.Columns {
		if seen[o.Name] {
			continue
		}
		leading := Column{Name: o.Name, Kind: o.Kind}.pad(top)
		if o.IsNumeric() {
			leading.Numbers = append(leading.Numbers, o.Numbers...)
		} else {
			leading.Texts = append(leading.Texts, o.Texts...)
		}
		result.Columns = append(result.Columns, leading.pad(total))
	}

	return result
}

// SummaryLabelColumn é o nome da coluna descritiva das tabelas calculadas
const SummaryLabelColumn = "Descrição"

// NewSummaryTable monta uma tabela de linha única com um rótulo e um valor por coluna.
// Sem colunas, retorna uma tabela vazia.
func NewSummaryTable(label string, columns []string, values []float64) CategoryTable {
	if len(columns) == 0 {
		return CategoryTable{Columns: []Column{}}
	}

	table := CategoryTable{Columns: make([]Column, 0, len(columns)+1)}
	table.Columns = append(table.Columns, Column{
		Name:  SummaryLabelColumn,
		Kind:  ColumnText,
		Texts: []string{label},
	})

	for i, name := range columns {
		value := 0.0
		if i < len(values) {
			value = values[i]
		}
		table.Columns = append(table.Columns, Column{
			Name:    name,
			Kind:    ColumnNumeric,
			Numbers: []Number{NewNumber(value)},
		})
	}

	return table
}
