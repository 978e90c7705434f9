package domain

import (
	"time"
)

// RFMReport é o resultado de uma execução completa do pipeline de segmentação.
// Customers mantém um registro por cliente, ordenado por CustomerID crescente.
type RFMReport struct {
	RunID         string        `json:"run_id"`
	ReferenceDate time.Time     `json:"reference_date"`
	TotalRows     int           `json:"total_rows"`   // linhas lidas da fonte
	DroppedRows   int           `json:"dropped_rows"` // linhas sem CustomerID
	Customers     []CustomerRFM `json:"customers"`
	HasCountry    bool          `json:"has_country"`
}

// SegmentCount é um ponto do gráfico de distribuição de segmentos
type SegmentCount struct {
	Segment Segment `json:"segment"`
	Count   int     `json:"count"`
}

// CountrySegmentCount é um ponto do mapa de segmentos por país
type CountrySegmentCount struct {
	Country string  `json:"country"`
	Segment Segment `json:"segment"`
	Count   int     `json:"count"`
}

// ScatterPoint é um ponto do gráfico Frequency x Monetary. Somente clientes
// com Monetary positivo entram nesse conjunto.
type ScatterPoint struct {
	CustomerID int64   `json:"customer_id"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	Segment    Segment `json:"segment"`
}

// BoxStats descreve a dispersão de Recency dentro de um segmento
type BoxStats struct {
	Segment Segment `json:"segment"`
	Min     float64 `json:"min"`
	Q1      float64 `json:"q1"`
	Median  float64 `json:"median"`
	Q3      float64 `json:"q3"`
	Max     float64 `json:"max"`
}

// ChartData reúne os conjuntos de dados consumidos pelos gráficos do frontend
type ChartData struct {
	SegmentDistribution []SegmentCount        `json:"segment_distribution"`
	CountryBreakdown    []CountrySegmentCount `json:"country_breakdown,omitempty"`
	FrequencyMonetary   []ScatterPoint        `json:"frequency_monetary"`
	RecencyBySegment    []BoxStats            `json:"recency_by_segment"`
}

// AnalysisResponse é o corpo de resposta dos endpoints de análise
type AnalysisResponse struct {
	RunID         string           `json:"run_id"`
	ReferenceDate time.Time        `json:"reference_date"`
	TotalRows     int              `json:"total_rows"`
	DroppedRows   int              `json:"dropped_rows"`
	CustomerCount int              `json:"customer_count"`
	Preview       []CustomerRFM    `json:"preview"` // primeiras linhas da tabela RFM
	Summary       []SegmentSummary `json:"summary"`
	Charts        *ChartData       `json:"charts"`
}
