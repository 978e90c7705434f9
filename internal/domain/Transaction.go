package domain

import (
	"time"
)

// Transaction representa uma linha bruta da tabela de transações, exatamente
// como lida da fonte (CSV, planilha ou banco). Os campos textuais ainda não
// foram coagidos: isso é responsabilidade do pré-processamento.
type Transaction struct {
	InvoiceNo   string  `json:"invoice_no"`
	InvoiceDate string  `json:"invoice_date"`
	CustomerID  string  `json:"customer_id"` // vazio quando ausente na origem
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Country     string  `json:"country,omitempty"`
}

// HasCustomerID indica se a linha possui identificador de cliente
func (t Transaction) HasCustomerID() bool {
	return t.CustomerID != ""
}

// CleanedTransaction é a linha após o pré-processamento: cliente coagido para
// inteiro, data convertida e receita da linha calculada. Nunca é mutada depois
// que a agregação começa.
type CleanedTransaction struct {
	InvoiceNo   string
	InvoiceDate time.Time
	CustomerID  int64
	Quantity    float64
	UnitPrice   float64
	TotalPrice  float64 // Quantity * UnitPrice, pode ser negativo (devoluções)
	Country     string
}
