package segmenting

import (
	"fmt"
	"sort"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

const quantileBins = 5

// Score converte as três métricas brutas em scores ordinais de 1 a 5 por
// binning de quantis de frequência igual, preenchendo R_Score, F_Score,
// M_Score e RFM_Score em cada cliente.
//
// Recency usa rótulos descendentes (menor Recency = compra mais recente =
// score maior). Frequency é convertida antes em ranks por primeira ocorrência,
// de modo que empates de valor caem em bins diferentes conforme a posição na
// tabela agregada — política de desempate reproduzível, não acidente. Monetary
// usa rótulos ascendentes sobre os valores brutos.
func Score(customers []domain.CustomerRFM) error {
	if len(customers) == 0 {
		return ErrEmptyDataset
	}

	recency := make([]float64, len(customers))
	monetary := make([]float64, len(customers))
	for i, c := range customers {
		recency[i] = float64(c.Recency)
		monetary[i] = float64(c.Monetary)
	}

	recencyBins, err := quantileBin(recency, "Recency")
	if err != nil {
		return err
	}

	monetaryBins, err := quantileBin(monetary, "Monetary")
	if err != nil {
		return err
	}

	// Ranks por primeira ocorrência nunca empatam, então o binning de
	// Frequency não degenera mesmo quando os valores brutos empatam.
	frequencyBins, err := quantileBin(firstOccurrenceRanks(customers), "Frequency")
	if err != nil {
		return err
	}

	for i := range customers {
		customers[i].RScore = quantileBins - recencyBins[i]
		customers[i].FScore = frequencyBins[i] + 1
		customers[i].MScore = monetaryBins[i] + 1
		customers[i].RFMScore = fmt.Sprintf(
			"%d%d%d",
			customers[i].RScore,
			customers[i].FScore,
			customers[i].MScore,
		)
	}

	return nil
}

// firstOccurrenceRanks substitui cada Frequency pelo seu rank com desempate
// estável pela posição na tabela (equivalente a rank(method='first'))
func firstOccurrenceRanks(customers []domain.CustomerRFM) []float64 {
	order := make([]int, len(customers))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return customers[order[a]].Frequency < customers[order[b]].Frequency
	})

	ranks := make([]float64, len(customers))
	for pos, idx := range order {
		ranks[idx] = float64(pos + 1)
	}
	return ranks
}

// quantileBin particiona values em cinco bins de frequência igual e devolve,
// para cada posição, o índice do bin (0 a 4). As bordas são os quantis 0, 0.2,
// 0.4, 0.6, 0.8 e 1 com interpolação linear; os intervalos são fechados à
// direita e o menor valor pertence ao primeiro bin. Bordas duplicadas indicam
// cardinalidade insuficiente e abortam a execução.
func quantileBin(values []float64, metric string) ([]int, error) {
	edges := quantileEdges(values)

	for i := 1; i < len(edges); i++ {
		if !(edges[i] > edges[i-1]) {
			return nil, &InsufficientCardinalityError{
				Metric:   metric,
				Distinct: distinctCount(values),
			}
		}
	}

	bins := make([]int, len(values))
	for i, v := range values {
		bins[i] = binFor(edges, v)
	}
	return bins, nil
}

// quantileEdges calcula as seis bordas de quantil com interpolação linear
// sobre a amostra ordenada
func quantileEdges(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	edges := make([]float64, quantileBins+1)
	for i := 0; i <= quantileBins; i++ {
		pos := float64(n-1) * float64(i) / float64(quantileBins)
		lo := int(pos)
		frac := pos - float64(lo)

		if lo+1 < n {
			edges[i] = sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
		} else {
			edges[i] = sorted[lo]
		}
	}
	return edges
}

// binFor localiza o bin de v: o menor j com v <= edges[j+1]
func binFor(edges []float64, v float64) int {
	for j := 0; j < quantileBins-1; j++ {
		if v <= edges[j+1] {
			return j
		}
	}
	return quantileBins - 1
}

func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
