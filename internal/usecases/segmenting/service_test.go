package segmenting

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/dataset/mocks"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// transacoesDeVarejo monta uma tabela com dez clientes de comportamentos
// distintos, duas linhas sem CustomerID e países na coluna opcional.
func transacoesDeVarejo() []domain.Transaction {
	var txs []domain.Transaction

	for i := 1; i <= 10; i++ {
		// Cliente i: i notas fiscais, última compra há i dias da referência,
		// ticket crescente
		for j := 0; j < i; j++ {
			day := 27 - i - j
			txs = append(txs, domain.Transaction{
				InvoiceNo:   fmt.Sprintf("INV-%d-%d", i, j),
				InvoiceDate: fmt.Sprintf("2011-12-%02d 10:00:00", day),
				CustomerID:  fmt.Sprintf("%d", 12340+i),
				Quantity:    float64(i),
				UnitPrice:   float64(i) * 1.5,
				Country:     "United Kingdom",
			})
		}
	}

	txs = append(txs,
		domain.Transaction{InvoiceNo: "INV-X", InvoiceDate: "2011-12-01 09:00:00", Quantity: 1, UnitPrice: 9.99},
		domain.Transaction{InvoiceNo: "INV-Y", InvoiceDate: "2011-12-02 09:00:00", Quantity: 2, UnitPrice: 0.5},
	)

	return txs
}

func TestService_AnalyzeDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockSource.EXPECT().
		Load(gomock.Any()).
		Return(transacoesDeVarejo(), nil)

	service := NewService(mockSource)

	report, err := service.AnalyzeDefault(context.Background())
	assert.NoError(t, err)
	assert.NotEmpty(t, report.RunID)

	// Linhas sem CustomerID descartadas, uma linha por cliente distinto
	assert.Equal(t, 2, report.DroppedRows)
	assert.Len(t, report.Customers, 10)
	assert.True(t, report.HasCountry)

	// Unicidade: cada cliente aparece exatamente uma vez
	seen := make(map[int64]bool)
	for _, c := range report.Customers {
		assert.False(t, seen[c.CustomerID], "cliente %d duplicado", c.CustomerID)
		seen[c.CustomerID] = true

		assert.GreaterOrEqual(t, c.Recency, 0)
		assert.NotEmpty(t, c.Segment)
		assert.NotEmpty(t, c.SuggestedAction)
		assert.Len(t, c.RFMScore, 3)
	}
}

func TestService_AnalyzeDefault_ErroDaFontePropaga(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSource := mocks.NewMockSource(ctrl)
	mockSource.EXPECT().
		Load(gomock.Any()).
		Return(nil, errors.New("arquivo não encontrado"))

	service := NewService(mockSource)

	report, err := service.AnalyzeDefault(context.Background())
	assert.Nil(t, report)
	assert.ErrorContains(t, err, "arquivo não encontrado")
}

func TestService_Analyze_SomenteLinhasSemCliente(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockSource(ctrl))

	raw := []domain.Transaction{
		{InvoiceNo: "INV-X", InvoiceDate: "2011-12-01 09:00:00", Quantity: 1, UnitPrice: 9.99},
	}

	report, err := service.Analyze(context.Background(), raw)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrEmptyDataset)
}

func TestService_Analyze_SemColunaDePais(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockSource(ctrl))

	raw := transacoesDeVarejo()
	for i := range raw {
		raw[i].Country = ""
	}

	report, err := service.Analyze(context.Background(), raw)
	assert.NoError(t, err)
	assert.False(t, report.HasCountry)
}
