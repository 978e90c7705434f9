package segmenting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name        string
		raw         []domain.Transaction
		wantRows    int
		wantDropped int
		validate    func(t *testing.T, cleaned []domain.CleanedTransaction)
	}{
		{
			name: "Linhas sem CustomerID são descartadas, não erradas",
			raw: []domain.Transaction{
				{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "17850", Quantity: 6, UnitPrice: 2.55},
				{InvoiceNo: "536366", InvoiceDate: "12/1/2010 8:28", CustomerID: "", Quantity: 2, UnitPrice: 1.85},
				{InvoiceNo: "536367", InvoiceDate: "12/1/2010 8:34", CustomerID: "13047", Quantity: 32, UnitPrice: 1.69},
			},
			wantRows:    2,
			wantDropped: 1,
		},
		{
			name: "CustomerID em formato decimal de planilha é coagido para inteiro",
			raw: []domain.Transaction{
				{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "17850.0", Quantity: 6, UnitPrice: 2.55},
			},
			wantRows: 1,
			validate: func(t *testing.T, cleaned []domain.CleanedTransaction) {
				assert.Equal(t, int64(17850), cleaned[0].CustomerID)
			},
		},
		{
			name: "TotalPrice é calculado por linha, inclusive negativo para devoluções",
			raw: []domain.Transaction{
				{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "17850", Quantity: 6, UnitPrice: 2.55},
				{InvoiceNo: "C536379", InvoiceDate: "12/1/2010 9:41", CustomerID: "17850", Quantity: -2, UnitPrice: 4.65},
			},
			wantRows: 2,
			validate: func(t *testing.T, cleaned []domain.CleanedTransaction) {
				assert.InDelta(t, 15.30, cleaned[0].TotalPrice, 1e-9)
				assert.InDelta(t, -9.30, cleaned[1].TotalPrice, 1e-9)
			},
		},
		{
			name: "Formatos de data alternativos são aceitos",
			raw: []domain.Transaction{
				{InvoiceNo: "A1", InvoiceDate: "2011-12-09 12:50:00", CustomerID: "1", Quantity: 1, UnitPrice: 1},
				{InvoiceNo: "A2", InvoiceDate: "2011-12-09T12:50:00Z", CustomerID: "2", Quantity: 1, UnitPrice: 1},
				{InvoiceNo: "A3", InvoiceDate: "2011-12-09", CustomerID: "3", Quantity: 1, UnitPrice: 1},
			},
			wantRows: 3,
			validate: func(t *testing.T, cleaned []domain.CleanedTransaction) {
				assert.Equal(t, time.Date(2011, 12, 9, 12, 50, 0, 0, time.UTC), cleaned[0].InvoiceDate)
				assert.Equal(t, time.Date(2011, 12, 9, 0, 0, 0, 0, time.UTC), cleaned[2].InvoiceDate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, dropped, err := Preprocess(tt.raw)

			assert.NoError(t, err)
			assert.Len(t, cleaned, tt.wantRows)
			assert.Equal(t, tt.wantDropped, dropped)

			if tt.validate != nil {
				tt.validate(t, cleaned)
			}
		})
	}
}

func TestPreprocess_DataInvalidaAbortaExecucao(t *testing.T) {
	raw := []domain.Transaction{
		{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "17850", Quantity: 6, UnitPrice: 2.55},
		{InvoiceNo: "536366", InvoiceDate: "não é uma data", CustomerID: "13047", Quantity: 2, UnitPrice: 1.85},
	}

	cleaned, _, err := Preprocess(raw)

	assert.Nil(t, cleaned)

	var dateErr *DateParseError
	assert.ErrorAs(t, err, &dateErr)
	assert.Equal(t, 2, dateErr.Row)
	assert.Equal(t, "não é uma data", dateErr.Value)
}

func TestPreprocess_CustomerIDNaoNumericoAbortaExecucao(t *testing.T) {
	raw := []domain.Transaction{
		{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "cliente-x", Quantity: 6, UnitPrice: 2.55},
	}

	_, _, err := Preprocess(raw)

	var idErr *CustomerIDParseError
	assert.ErrorAs(t, err, &idErr)
	assert.Equal(t, "cliente-x", idErr.Value)
}

func TestPreprocess_CustomerIDComFracaoNaoZeraEhInvalido(t *testing.T) {
	raw := []domain.Transaction{
		{InvoiceNo: "536365", InvoiceDate: "12/1/2010 8:26", CustomerID: "17850.5", Quantity: 6, UnitPrice: 2.55},
	}

	_, _, err := Preprocess(raw)

	var idErr *CustomerIDParseError
	assert.ErrorAs(t, err, &idErr)
}
