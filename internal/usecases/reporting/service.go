package reporting

import (
	"sort"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"github.com/vfg2006/customer-segmentation-api/pkg/utils"
)

// previewRows é quantas linhas da tabela RFM entram na prévia da resposta
const previewRows = 20

// Reporter produz os artefatos de apresentação a partir do relatório RFM:
// resumo por segmento, conjuntos de dados dos gráficos e os dois CSVs de
// exportação. Não possui estado nem lógica de domínio própria.
type Reporter interface {
	// Summarize agrupa por segmento com médias de R/F/M e contagem,
	// ordenado por contagem decrescente
	Summarize(customers []domain.CustomerRFM) []domain.SegmentSummary

	// Charts monta os conjuntos de dados de todos os gráficos
	Charts(report *domain.RFMReport) *domain.ChartData

	// RenderSegmentsCSV serializa a tabela RFM completa
	RenderSegmentsCSV(report *domain.RFMReport) ([]byte, error)

	// RenderSummaryCSV serializa o resumo por segmento
	RenderSummaryCSV(summary []domain.SegmentSummary) ([]byte, error)

	// BuildResponse monta o corpo de resposta dos endpoints de análise
	BuildResponse(report *domain.RFMReport) *domain.AnalysisResponse
}

type Service struct{}

func NewService() Reporter {
	return &Service{}
}

// Summarize calcula o resumo por segmento. A ordenação por contagem é
// estável: segmentos empatados mantêm a ordem de primeira aparição na tabela.
func (s *Service) Summarize(customers []domain.CustomerRFM) []domain.SegmentSummary {
	type accumulator struct {
		recency   float64
		frequency float64
		monetary  float64
		count     int
	}

	accumulators := make(map[domain.Segment]*accumulator)
	order := make([]domain.Segment, 0, 7)

	for _, c := range customers {
		acc, ok := accumulators[c.Segment]
		if !ok {
			acc = &accumulator{}
			accumulators[c.Segment] = acc
			order = append(order, c.Segment)
		}
		acc.recency += float64(c.Recency)
		acc.frequency += float64(c.Frequency)
		acc.monetary += c.Monetary
		acc.count++
	}

	summary := make([]domain.SegmentSummary, 0, len(order))
	for _, segment := range order {
		acc := accumulators[segment]
		n := float64(acc.count)
		summary = append(summary, domain.SegmentSummary{
			Segment:   segment,
			Recency:   utils.RoundWithTwoDecimalPlace(acc.recency / n),
			Frequency: utils.RoundWithTwoDecimalPlace(acc.frequency / n),
			Monetary:  utils.RoundWithTwoDecimalPlace(acc.monetary / n),
			Count:     acc.count,
		})
	}

	sort.SliceStable(summary, func(i, j int) bool {
		return summary[i].Count > summary[j].Count
	})

	return summary
}

// Charts monta os quatro conjuntos de dados de gráficos. O mapa por país só é
// preenchido quando a coluna Country existia na origem; o scatter é restrito a
// clientes com Monetary positivo (os demais continuam na tabela principal).
func (s *Service) Charts(report *domain.RFMReport) *domain.ChartData {
	charts := &domain.ChartData{
		SegmentDistribution: segmentDistribution(report.Customers),
		FrequencyMonetary:   positiveMonetaryScatter(report.Customers),
		RecencyBySegment:    recencyBoxStats(report.Customers),
	}

	if report.HasCountry {
		charts.CountryBreakdown = countryBreakdown(report.Customers)
	}

	return charts
}

// BuildResponse reúne prévia, resumo e gráficos em um único corpo de resposta
func (s *Service) BuildResponse(report *domain.RFMReport) *domain.AnalysisResponse {
	preview := report.Customers
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return &domain.AnalysisResponse{
		RunID:         report.RunID,
		ReferenceDate: report.ReferenceDate,
		TotalRows:     report.TotalRows,
		DroppedRows:   report.DroppedRows,
		CustomerCount: len(report.Customers),
		Preview:       preview,
		Summary:       s.Summarize(report.Customers),
		Charts:        s.Charts(report),
	}
}

func segmentDistribution(customers []domain.CustomerRFM) []domain.SegmentCount {
	counts := make(map[domain.Segment]int)
	order := make([]domain.Segment, 0, 7)

	for _, c := range customers {
		if _, ok := counts[c.Segment]; !ok {
			order = append(order, c.Segment)
		}
		counts[c.Segment]++
	}

	distribution := make([]domain.SegmentCount, 0, len(order))
	for _, segment := range order {
		distribution = append(distribution, domain.SegmentCount{
			Segment: segment,
			Count:   counts[segment],
		})
	}

	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	return distribution
}

func countryBreakdown(customers []domain.CustomerRFM) []domain.CountrySegmentCount {
	type key struct {
		country string
		segment domain.Segment
	}

	counts := make(map[key]int)
	order := make([]key, 0)

	for _, c := range customers {
		if c.Country == "" {
			continue
		}
		k := key{country: c.Country, segment: c.Segment}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k]++
	}

	breakdown := make([]domain.CountrySegmentCount, 0, len(order))
	for _, k := range order {
		breakdown = append(breakdown, domain.CountrySegmentCount{
			Country: k.country,
			Segment: k.segment,
			Count:   counts[k],
		})
	}

	return breakdown
}

func positiveMonetaryScatter(customers []domain.CustomerRFM) []domain.ScatterPoint {
	points := make([]domain.ScatterPoint, 0, len(customers))
	for _, c := range customers {
		if c.Monetary <= 0 {
			continue
		}
		points = append(points, domain.ScatterPoint{
			CustomerID: c.CustomerID,
			Frequency:  c.Frequency,
			Monetary:   c.Monetary,
			Segment:    c.Segment,
		})
	}
	return points
}

func recencyBoxStats(customers []domain.CustomerRFM) []domain.BoxStats {
	values := make(map[domain.Segment][]float64)
	order := make([]domain.Segment, 0, 7)

	for _, c := range customers {
		if _, ok := values[c.Segment]; !ok {
			order = append(order, c.Segment)
		}
		values[c.Segment] = append(values[c.Segment], float64(c.Recency))
	}

	stats := make([]domain.BoxStats, 0, len(order))
	for _, segment := range order {
		recencies := values[segment]
		sort.Float64s(recencies)

		stats = append(stats, domain.BoxStats{
			Segment: segment,
			Min:     recencies[0],
			Q1:      quantile(recencies, 0.25),
			Median:  quantile(recencies, 0.5),
			Q3:      quantile(recencies, 0.75),
			Max:     recencies[len(recencies)-1],
		})
	}

	return stats
}

// quantile interpola linearmente sobre a amostra já ordenada
func quantile(sorted []float64, p float64) float64 {
	pos := float64(len(sorted)-1) * p
	lo := int(pos)
	frac := pos - float64(lo)

	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
