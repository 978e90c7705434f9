// Package dataset contém as fontes da tabela de transações: arquivo CSV,
// planilha XLSX e o cache do dataset padrão. Toda fonte valida o esquema
// mínimo antes de devolver qualquer linha.
package dataset

import (
	"context"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

// Source é uma origem de transações brutas. Load materializa a tabela inteira
// em memória; o pipeline é de passada única e não há ingestão incremental.
type Source interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
}

// Colunas obrigatórias do esquema de entrada. Os nomes são sensíveis a
// maiúsculas, como na origem.
var requiredColumns = []string{"InvoiceNo", "Quantity", "UnitPrice", "InvoiceDate", "CustomerID"}

// countryColumn é a coluna opcional de país
const countryColumn = "Country"

// validateHeader resolve o índice de cada coluna e garante que todas as
// obrigatórias estão presentes. A ausência de qualquer uma é fatal antes de
// qualquer computação.
func validateHeader(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	return columns, nil
}
