package dataset

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXSource lê a tabela de transações de uma planilha Excel, permitindo usar
// o workbook de varejo diretamente, sem conversão prévia para CSV.
type XLSXSource struct {
	path  string
	sheet string // vazio = primeira aba do workbook
}

// NewXLSXSource cria uma fonte XLSX para o caminho e aba informados
func NewXLSXSource(path, sheet string) *XLSXSource {
	return &XLSXSource{path: path, sheet: sheet}
}

// Load abre o workbook e decodifica a aba configurada inteira
func (s *XLSXSource) Load(ctx context.Context) ([]domain.Transaction, error) {
	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening workbook %s", s.path)
	}
	defer file.Close()

	sheet := s.sheet
	if sheet == "" {
		sheet = file.GetSheetName(0)
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %s", sheet)
	}

	if len(rows) == 0 {
		return nil, &MissingColumnsError{Missing: requiredColumns}
	}

	columns, err := validateHeader(rows[0])
	if err != nil {
		return nil, err
	}

	_, hasCountry := columns[countryColumn]

	var transactions []domain.Transaction
	for i, cells := range rows[1:] {
		if emptyRow(cells) {
			continue
		}

		// As linhas do excelize podem vir mais curtas que o cabeçalho quando
		// as células finais estão vazias
		tx, err := parseRecord(func(column string) string {
			if idx := columns[column]; idx < len(cells) {
				return cells[idx]
			}
			return ""
		}, hasCountry, i+1)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
