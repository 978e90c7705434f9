package segmenting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

func date(day int, hour int) time.Time {
	return time.Date(2011, 12, day, hour, 0, 0, 0, time.UTC)
}

func TestReferenceDate(t *testing.T) {
	cleaned := []domain.CleanedTransaction{
		{CustomerID: 1, InvoiceDate: date(5, 10)},
		{CustomerID: 2, InvoiceDate: date(9, 12)},
		{CustomerID: 1, InvoiceDate: date(7, 8)},
	}

	// Máximo global mais um dia, compartilhado por todos os clientes
	assert.Equal(t, date(10, 12), ReferenceDate(cleaned))
}

func TestAggregate(t *testing.T) {
	cleaned := []domain.CleanedTransaction{
		{CustomerID: 20, InvoiceNo: "I-1", InvoiceDate: date(1, 9), TotalPrice: 100, Country: "France"},
		{CustomerID: 10, InvoiceNo: "I-2", InvoiceDate: date(5, 9), TotalPrice: 20, Country: "United Kingdom"},
		{CustomerID: 20, InvoiceNo: "I-1", InvoiceDate: date(1, 9), TotalPrice: 50, Country: "France"},
		{CustomerID: 20, InvoiceNo: "I-3", InvoiceDate: date(9, 9), TotalPrice: -30, Country: "Germany"},
		{CustomerID: 10, InvoiceNo: "I-4", InvoiceDate: date(2, 9), TotalPrice: 5, Country: "United Kingdom"},
	}

	referenceDate := ReferenceDate(cleaned) // 10/12 09:00
	customers := Aggregate(cleaned, referenceDate)

	assert.Len(t, customers, 2)

	// Saída ordenada por CustomerID crescente
	assert.Equal(t, int64(10), customers[0].CustomerID)
	assert.Equal(t, int64(20), customers[1].CustomerID)

	// Cliente 10: última compra 5/12, duas notas, 25 de receita
	assert.Equal(t, 5, customers[0].Recency)
	assert.Equal(t, 2, customers[0].Frequency)
	assert.InDelta(t, 25, customers[0].Monetary, 1e-9)

	// Cliente 20: duas linhas da mesma nota contam uma vez em Frequency;
	// devolução entra na soma de Monetary
	assert.Equal(t, 1, customers[1].Recency)
	assert.Equal(t, 2, customers[1].Frequency)
	assert.InDelta(t, 120, customers[1].Monetary, 1e-9)

	// País: primeiro observado na ordem das linhas limpas
	assert.Equal(t, "United Kingdom", customers[0].Country)
	assert.Equal(t, "France", customers[1].Country)
}

func TestAggregate_RecencyNuncaNegativa(t *testing.T) {
	cleaned := []domain.CleanedTransaction{
		{CustomerID: 1, InvoiceNo: "A", InvoiceDate: date(9, 23)},
		{CustomerID: 2, InvoiceNo: "B", InvoiceDate: date(1, 1)},
	}

	customers := Aggregate(cleaned, ReferenceDate(cleaned))

	for _, c := range customers {
		assert.GreaterOrEqual(t, c.Recency, 0)
	}
}

func TestAggregate_DiasInteirosTruncados(t *testing.T) {
	// Última compra do cliente 1: 8/12 10:00. Referência: 9/12 12:00 + 1 dia.
	// Diferença de 2 dias e 2 horas conta como 2 dias.
	cleaned := []domain.CleanedTransaction{
		{CustomerID: 1, InvoiceNo: "A", InvoiceDate: date(8, 10)},
		{CustomerID: 2, InvoiceNo: "B", InvoiceDate: date(9, 12)},
	}

	customers := Aggregate(cleaned, ReferenceDate(cleaned))

	assert.Equal(t, 2, customers[0].Recency)
	assert.Equal(t, 1, customers[1].Recency)
}
