package spreadsheet

import (
	"bytes"
	"context"
	"fmt"

	"github.com/habitus/forecast-api/internal/domain"
	"github.com/habitus/forecast-api/pkg/log"
	"github.com/xuri/excelize/v2"
)

//go:generate mockgen -source=reader.go -destination=mocks/reader_mock.go -package=mocks

// Reader lê um arquivo .xlsx e devolve suas planilhas como texto
type Reader interface {
	Read(ctx context.Context, content []byte) ([]domain.Sheet, error)
}

type reader struct{}

func NewReader() Reader {
	return &reader{}
}

// Read usa os valores formatados das células, como aparecem no Excel,
// para que datas não sejam lidas como números seriais.
func (r *reader) Read(ctx context.Context, content []byte) ([]domain.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo Excel: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]domain.Sheet, 0, len(names))

	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler planilha %s: %w", name, err)
		}

		sheet := domain.Sheet{Name: name}
		if len(rows) > 0 {
			sheet.Header = rows[0]
			sheet.Rows = rows[1:]
		}

		sheets = append(sheets, sheet)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"sheets": len(sheets),
	}).Debug("spreadsheet: arquivo lido")

	return sheets, nil
}
