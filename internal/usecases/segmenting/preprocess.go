package segmenting

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

// Formatos aceitos para InvoiceDate, testados em ordem. O primeiro cobre o
// dataset de varejo padrão ("12/1/2010 8:26"); os demais cobrem exportações
// comuns de planilhas e bancos.
var invoiceDateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Preprocess limpa a tabela bruta: descarta linhas sem CustomerID, coage o
// identificador para inteiro, converte InvoiceDate e calcula a receita de
// cada linha. Retorna a tabela limpa e quantas linhas foram descartadas.
//
// Linhas sem CustomerID são uma exclusão definida, não um erro. Qualquer CustomerID
// presente porém inválido, ou qualquer data não interpretável, aborta a execução.
func Preprocess(raw []domain.Transaction) ([]domain.CleanedTransaction, int, error) {
	cleaned := make([]domain.CleanedTransaction, 0, len(raw))
	dropped := 0

	for _, tx := range raw {
		if !tx.HasCustomerID() {
			dropped++
			continue
		}

		row := len(cleaned) + 1

		customerID, err := parseCustomerID(tx.CustomerID)
		if err != nil {
			return nil, 0, &CustomerIDParseError{Row: row, Value: tx.CustomerID}
		}

		invoiceDate, err := parseInvoiceDate(tx.InvoiceDate)
		if err != nil {
			return nil, 0, &DateParseError{Row: row, Value: tx.InvoiceDate}
		}

		cleaned = append(cleaned, domain.CleanedTransaction{
			InvoiceNo:   tx.InvoiceNo,
			InvoiceDate: invoiceDate,
			CustomerID:  customerID,
			Quantity:    tx.Quantity,
			UnitPrice:   tx.UnitPrice,
			TotalPrice:  tx.Quantity * tx.UnitPrice,
			Country:     tx.Country,
		})
	}

	return cleaned, dropped, nil
}

// parseCustomerID aceita identificadores inteiros e também o formato decimal
// que exportações de planilha costumam produzir ("17850.0"), desde que a parte
// fracionária seja zero.
func parseCustomerID(value string) (int64, error) {
	value = strings.TrimSpace(value)

	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return id, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	id := int64(f)
	if float64(id) != f {
		return 0, strconv.ErrSyntax
	}

	return id, nil
}

func parseInvoiceDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	var lastErr error
	for _, layout := range invoiceDateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, lastErr
}
