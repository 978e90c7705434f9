package dataset

import (
	"fmt"
	"strings"
)

// MissingColumnsError indica que o esquema de entrada não contém uma ou mais
// colunas obrigatórias. Nomeia exatamente os campos ausentes.
type MissingColumnsError struct {
	Missing []string
}

// Error implementa a interface error
func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("input data is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// InvalidNumericError indica um valor não numérico em Quantity ou UnitPrice
type InvalidNumericError struct {
	Row    int // posição da linha de dados (base 1, sem contar o cabeçalho)
	Column string
	Value  string
}

// Error implementa a interface error
func (e *InvalidNumericError) Error() string {
	return fmt.Sprintf("non-numeric %s %q at row %d", e.Column, e.Value, e.Row)
}
