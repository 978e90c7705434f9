// Package repository contém o acesso à tabela de transações no PostgreSQL,
// usada como fonte alternativa do dataset padrão.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

const transactionsTable = "transactions t"

// TransactionRepository lê a tabela de transações inteira. A assinatura de
// Load é a mesma de dataset.Source, então o repositório pode ser plugado
// diretamente como fonte do pipeline.
type TransactionRepository interface {
	Load(ctx context.Context) ([]domain.Transaction, error)
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

// Load materializa todas as linhas da tabela transactions. customer_id e
// country são anuláveis; NULL vira campo vazio, que o pré-processamento trata
// como identificador ausente.
func (r *transactionRepository) Load(ctx context.Context) ([]domain.Transaction, error) {
	sqlQuery, args, err := squirrel.
		Select(
			"t.invoice_no",
			"t.invoice_date",
			"t.customer_id",
			"t.quantity",
			"t.unit_price",
			"t.country",
		).
		From(transactionsTable).
		OrderBy("t.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear transação: %w", err)
		}
		transactions = append(transactions, *tx)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return transactions, nil
}

func scanTransaction(rows *sql.Rows) (*domain.Transaction, error) {
	var (
		invoiceNo   string
		invoiceDate time.Time
		customerID  sql.NullInt64
		quantity    float64
		unitPrice   float64
		country     sql.NullString
	)

	if err := rows.Scan(
		&invoiceNo,
		&invoiceDate,
		&customerID,
		&quantity,
		&unitPrice,
		&country,
	); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		InvoiceNo: invoiceNo,
		// O pré-processamento interpreta datas em texto; RFC 3339 está entre
		// os formatos aceitos
		InvoiceDate: invoiceDate.Format(time.RFC3339),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
	}

	if customerID.Valid {
		tx.CustomerID = strconv.FormatInt(customerID.Int64, 10)
	}
	if country.Valid {
		tx.Country = country.String
	}

	return tx, nil
}
