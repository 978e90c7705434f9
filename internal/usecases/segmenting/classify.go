package segmenting

import (
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
)

// ClassifySegment aplica a lista de decisão ordenada sobre os três scores.
// A primeira regra que casa vence; a ordem importa e é parte do contrato.
// Função total: qualquer tripla de scores válida resulta em um segmento.
func ClassifySegment(r, f, m int) domain.Segment {
	switch {
	case r >= 4 && f >= 4 && m >= 4:
		return domain.SegmentChampions
	case r >= 3 && f >= 3 && m >= 3:
		return domain.SegmentLoyalCustomers
	case r >= 4 && f <= 2:
		return domain.SegmentPotentialLoyalist
	case r >= 3 && f <= 2:
		return domain.SegmentRecentCustomers
	case r <= 2 && f >= 4:
		return domain.SegmentAtRisk
	case r <= 2 && f <= 2:
		return domain.SegmentLost
	default:
		return domain.SegmentOthers
	}
}

// Classify atribui segmento e ação recomendada a cada cliente já pontuado
func Classify(customers []domain.CustomerRFM) {
	for i := range customers {
		segment := ClassifySegment(customers[i].RScore, customers[i].FScore, customers[i].MScore)
		customers[i].Segment = segment
		customers[i].SuggestedAction = segment.SuggestedAction()
	}
}
