package reporting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

func clientesSegmentados() []domain.CustomerRFM {
	return []domain.CustomerRFM{
		{CustomerID: 100, Recency: 2, Frequency: 10, Monetary: 500, RScore: 5, FScore: 5, MScore: 5, RFMScore: "555", Segment: domain.SegmentChampions, Country: "United Kingdom"},
		{CustomerID: 101, Recency: 4, Frequency: 8, Monetary: 300, RScore: 4, FScore: 4, MScore: 4, RFMScore: "444", Segment: domain.SegmentChampions, Country: "France"},
		{CustomerID: 102, Recency: 90, Frequency: 1, Monetary: 20, RScore: 1, FScore: 1, MScore: 1, RFMScore: "111", Segment: domain.SegmentLost, Country: "United Kingdom"},
		{CustomerID: 103, Recency: 80, Frequency: 2, Monetary: -15, RScore: 1, FScore: 2, MScore: 1, RFMScore: "121", Segment: domain.SegmentLost, Country: "United Kingdom"},
		{CustomerID: 104, Recency: 70, Frequency: 1, Monetary: 30, RScore: 2, FScore: 1, MScore: 2, RFMScore: "212", Segment: domain.SegmentLost, Country: "Germany"},
		{CustomerID: 105, Recency: 10, Frequency: 1, Monetary: 40, RScore: 4, FScore: 1, MScore: 2, RFMScore: "412", Segment: domain.SegmentPotentialLoyalist, Country: "France"},
	}
}

func TestSummarize(t *testing.T) {
	service := NewService()

	summary := service.Summarize(clientesSegmentados())

	assert.Len(t, summary, 3)

	// Ordenado por contagem decrescente
	assert.Equal(t, domain.SegmentLost, summary[0].Segment)
	assert.Equal(t, 3, summary[0].Count)
	assert.Equal(t, domain.SegmentChampions, summary[1].Segment)
	assert.Equal(t, 2, summary[1].Count)
	assert.Equal(t, domain.SegmentPotentialLoyalist, summary[2].Segment)
	assert.Equal(t, 1, summary[2].Count)

	// Médias com duas casas; Monetary médio pode ser negativo
	assert.InDelta(t, 80, summary[0].Recency, 1e-9)
	assert.InDelta(t, 1.33, summary[0].Frequency, 1e-9)
	assert.InDelta(t, 11.67, summary[0].Monetary, 1e-9)

	assert.InDelta(t, 3, summary[1].Recency, 1e-9)
	assert.InDelta(t, 9, summary[1].Frequency, 1e-9)
	assert.InDelta(t, 400, summary[1].Monetary, 1e-9)
}

func TestSummarize_EmpateMantemOrdemDeAparicao(t *testing.T) {
	service := NewService()

	customers := []domain.CustomerRFM{
		{CustomerID: 1, Segment: domain.SegmentRecentCustomers},
		{CustomerID: 2, Segment: domain.SegmentAtRisk},
		{CustomerID: 3, Segment: domain.SegmentRecentCustomers},
		{CustomerID: 4, Segment: domain.SegmentAtRisk},
	}

	summary := service.Summarize(customers)

	assert.Equal(t, domain.SegmentRecentCustomers, summary[0].Segment)
	assert.Equal(t, domain.SegmentAtRisk, summary[1].Segment)
}

func TestSummarize_SemClientes(t *testing.T) {
	service := NewService()

	assert.Empty(t, service.Summarize(nil))
}

func TestCharts(t *testing.T) {
	service := NewService()
	report := &domain.RFMReport{
		Customers:  clientesSegmentados(),
		HasCountry: true,
	}

	charts := service.Charts(report)

	assert.Equal(t, domain.SegmentLost, charts.SegmentDistribution[0].Segment)
	assert.Equal(t, 3, charts.SegmentDistribution[0].Count)

	// Monetary <= 0 fica fora do scatter, mas o cliente segue na tabela
	assert.Len(t, charts.FrequencyMonetary, 5)
	for _, point := range charts.FrequencyMonetary {
		assert.NotEqual(t, int64(103), point.CustomerID)
		assert.Greater(t, point.Monetary, 0.0)
	}

	assert.Len(t, charts.CountryBreakdown, 5)
	assert.Equal(t, domain.CountrySegmentCount{Country: "United Kingdom", Segment: domain.SegmentChampions, Count: 1}, charts.CountryBreakdown[0])
	assert.Equal(t, domain.CountrySegmentCount{Country: "United Kingdom", Segment: domain.SegmentLost, Count: 2}, charts.CountryBreakdown[2])
}

func TestCharts_SemColunaDePais(t *testing.T) {
	service := NewService()
	report := &domain.RFMReport{Customers: clientesSegmentados()}

	charts := service.Charts(report)

	assert.Nil(t, charts.CountryBreakdown)
	assert.NotEmpty(t, charts.SegmentDistribution)
}

func TestRecencyBoxStats(t *testing.T) {
	customers := []domain.CustomerRFM{
		{CustomerID: 1, Recency: 10, Segment: domain.SegmentLoyalCustomers},
		{CustomerID: 2, Recency: 20, Segment: domain.SegmentLoyalCustomers},
		{CustomerID: 3, Recency: 30, Segment: domain.SegmentLoyalCustomers},
		{CustomerID: 4, Recency: 40, Segment: domain.SegmentLoyalCustomers},
		{CustomerID: 5, Recency: 50, Segment: domain.SegmentLoyalCustomers},
	}

	stats := recencyBoxStats(customers)

	assert.Len(t, stats, 1)
	assert.Equal(t, domain.BoxStats{
		Segment: domain.SegmentLoyalCustomers,
		Min:     10,
		Q1:      20,
		Median:  30,
		Q3:      40,
		Max:     50,
	}, stats[0])
}

func TestQuantile_InterpolacaoLinear(t *testing.T) {
	sorted := []float64{10, 20}

	assert.InDelta(t, 12.5, quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 15, quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 20, quantile(sorted, 1), 1e-9)
}

func TestBuildResponse(t *testing.T) {
	service := NewService()

	customers := make([]domain.CustomerRFM, 0, 25)
	for i := 1; i <= 25; i++ {
		customers = append(customers, domain.CustomerRFM{
			CustomerID: int64(i),
			Recency:    i,
			Frequency:  1,
			Monetary:   float64(10 * i),
			RFMScore:   "333",
			Segment:    domain.SegmentOthers,
		})
	}

	report := &domain.RFMReport{
		RunID:         "abc123",
		ReferenceDate: time.Date(2011, time.December, 10, 0, 0, 0, 0, time.UTC),
		TotalRows:     30,
		DroppedRows:   5,
		Customers:     customers,
	}

	response := service.BuildResponse(report)

	assert.Equal(t, "abc123", response.RunID)
	assert.Equal(t, 30, response.TotalRows)
	assert.Equal(t, 5, response.DroppedRows)
	assert.Equal(t, 25, response.CustomerCount)

	// A prévia é limitada, mas resumo e gráficos cobrem a tabela inteira
	assert.Len(t, response.Preview, previewRows)
	assert.Equal(t, 25, response.Summary[0].Count)
	assert.Equal(t, 25, response.Charts.SegmentDistribution[0].Count)
}

func TestBuildResponse_TabelaMenorQueAPrevia(t *testing.T) {
	service := NewService()
	report := &domain.RFMReport{Customers: clientesSegmentados()}

	response := service.BuildResponse(report)

	assert.Len(t, response.Preview, 6)
	assert.Equal(t, 6, response.CustomerCount)
}

func TestSegmentDistribution_CobreTodosOsClientes(t *testing.T) {
	customers := clientesSegmentados()

	distribution := segmentDistribution(customers)

	total := 0
	for _, d := range distribution {
		total += d.Count
	}
	assert.Equal(t, len(customers), total, fmt.Sprintf("distribuição: %+v", distribution))
}
