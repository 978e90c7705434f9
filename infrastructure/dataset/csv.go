package dataset

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"golang.org/x/text/encoding/charmap"
)

// CSVSource lê a tabela de transações de um arquivo CSV local. O dataset de
// varejo padrão vem codificado em ISO-8859-1, então a leitura sempre passa
// pelo decodificador correspondente (ASCII atravessa intacto).
type CSVSource struct {
	path string
}

// NewCSVSource cria uma fonte CSV para o caminho informado
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Load abre o arquivo e decodifica a tabela inteira
func (s *CSVSource) Load(ctx context.Context) ([]domain.Transaction, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening dataset file %s", s.path)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV decodifica uma tabela de transações CSV (ISO-8859-1) de qualquer
// reader: arquivo local ou upload. Valida o cabeçalho antes de ler linhas.
func ReadCSV(r io.Reader) ([]domain.Transaction, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &MissingColumnsError{Missing: requiredColumns}
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading CSV header")
	}

	columns, err := validateHeader(header)
	if err != nil {
		return nil, err
	}

	_, hasCountry := columns[countryColumn]

	var transactions []domain.Transaction
	row := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading CSV row %d", row+1)
		}
		row++

		tx, err := parseRecord(func(column string) string {
			return record[columns[column]]
		}, hasCountry, row)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// parseRecord monta uma Transaction a partir de um acessor de células,
// coagindo apenas os campos numéricos. Datas e CustomerID seguem como texto
// para o pré-processamento.
func parseRecord(cell func(column string) string, hasCountry bool, row int) (domain.Transaction, error) {
	quantity, err := parseNumeric(cell("Quantity"))
	if err != nil {
		return domain.Transaction{}, &InvalidNumericError{Row: row, Column: "Quantity", Value: cell("Quantity")}
	}

	unitPrice, err := parseNumeric(cell("UnitPrice"))
	if err != nil {
		return domain.Transaction{}, &InvalidNumericError{Row: row, Column: "UnitPrice", Value: cell("UnitPrice")}
	}

	tx := domain.Transaction{
		InvoiceNo:   strings.TrimSpace(cell("InvoiceNo")),
		InvoiceDate: strings.TrimSpace(cell("InvoiceDate")),
		CustomerID:  strings.TrimSpace(cell("CustomerID")),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}

	if hasCountry {
		tx.Country = strings.TrimSpace(cell(countryColumn))
	}

	return tx, nil
}

func parseNumeric(value string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(value), 64)
}
