package segmenting

import (
	"errors"
	"fmt"
)

// Erros específicos do pipeline de segmentação
var (
	// ErrEmptyDataset indica que nenhuma linha com CustomerID sobrou após a limpeza
	ErrEmptyDataset = errors.New("no transactions with a customer ID remain after cleaning")
)

// DateParseError indica uma InvoiceDate que não pôde ser interpretada. A falha
// é fatal para a execução inteira: a data de referência depende do máximo
// global, então descartar linhas mudaria o Recency de todos os clientes.
type DateParseError struct {
	Row   int    // posição da linha na tabela limpa (base 1, sem contar o cabeçalho)
	Value string // texto original da data
}

// Error implementa a interface error
func (e *DateParseError) Error() string {
	return fmt.Sprintf("unparseable InvoiceDate %q at row %d", e.Value, e.Row)
}

// CustomerIDParseError indica um CustomerID presente, porém não numérico
type CustomerIDParseError struct {
	Row   int
	Value string
}

// Error implementa a interface error
func (e *CustomerIDParseError) Error() string {
	return fmt.Sprintf("non-numeric CustomerID %q at row %d", e.Value, e.Row)
}

// InsufficientCardinalityError indica que uma métrica tem valores distintos de
// menos para particionar a população em cinco quintis
type InsufficientCardinalityError struct {
	Metric   string // "Recency", "Frequency" ou "Monetary"
	Distinct int    // valores distintos observados
}

// Error implementa a interface error
func (e *InsufficientCardinalityError) Error() string {
	return fmt.Sprintf(
		"metric %s has only %d distinct values, not enough for 5 quantile bins",
		e.Metric, e.Distinct,
	)
}
