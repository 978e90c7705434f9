package segmenting

import (
	"sort"
	"time"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

// ReferenceDate deriva a data de referência da execução: o maior InvoiceDate
// da tabela limpa mais um dia. É calculada uma única vez e compartilhada por
// todos os cálculos de Recency, o que garante Recency >= 0 por construção.
func ReferenceDate(cleaned []domain.CleanedTransaction) time.Time {
	var max time.Time
	for _, tx := range cleaned {
		if tx.InvoiceDate.After(max) {
			max = tx.InvoiceDate
		}
	}
	return max.AddDate(0, 0, 1)
}

// customerAccumulator acumula as transações de um cliente durante a agregação
type customerAccumulator struct {
	lastInvoice time.Time
	invoices    map[string]struct{}
	monetary    float64
	country     string
	hasCountry  bool
}

// Aggregate agrupa a tabela limpa por cliente e deriva Recency, Frequency e
// Monetary em relação à data de referência. O resultado tem exatamente uma
// linha por cliente distinto, ordenado por CustomerID crescente — essa ordem é
// a que o desempate de rank do F_Score enxerga depois.
//
// País: quando um cliente aparece com mais de um país, vale o primeiro
// observado na ordem das linhas limpas. A origem mantém um vínculo arbitrário;
// aqui a escolha é determinística e preserva uma linha por cliente.
func Aggregate(cleaned []domain.CleanedTransaction, referenceDate time.Time) []domain.CustomerRFM {
	accumulators := make(map[int64]*customerAccumulator)

	for _, tx := range cleaned {
		acc, ok := accumulators[tx.CustomerID]
		if !ok {
			acc = &customerAccumulator{invoices: make(map[string]struct{})}
			accumulators[tx.CustomerID] = acc
		}

		if tx.InvoiceDate.After(acc.lastInvoice) {
			acc.lastInvoice = tx.InvoiceDate
		}
		acc.invoices[tx.InvoiceNo] = struct{}{}
		acc.monetary += tx.TotalPrice

		if !acc.hasCountry && tx.Country != "" {
			acc.country = tx.Country
			acc.hasCountry = true
		}
	}

	ids := make([]int64, 0, len(accumulators))
	for id := range accumulators {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	customers := make([]domain.CustomerRFM, 0, len(ids))
	for _, id := range ids {
		acc := accumulators[id]
		customers = append(customers, domain.CustomerRFM{
			CustomerID: id,
			Recency:    wholeDays(referenceDate.Sub(acc.lastInvoice)),
			Frequency:  len(acc.invoices),
			Monetary:   acc.monetary,
			Country:    acc.country,
		})
	}

	return customers
}

// wholeDays converte a duração em dias inteiros, truncando a fração
func wholeDays(d time.Duration) int {
	return int(d.Hours() / 24)
}
