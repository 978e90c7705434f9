package domain

// Segment é o grupo comportamental atribuído a um cliente a partir dos scores RFM
type Segment string

const (
	SegmentChampions         Segment = "Champions"
	SegmentLoyalCustomers    Segment = "Loyal Customers"
	SegmentPotentialLoyalist Segment = "Potential Loyalist"
	SegmentRecentCustomers   Segment = "Recent Customers"
	SegmentAtRisk            Segment = "At Risk"
	SegmentLost              Segment = "Lost"
	SegmentOthers            Segment = "Others"
)

// suggestedActions mapeia cada segmento para a ação de marketing recomendada.
// A tabela é fixa e total: todo segmento possível tem uma entrada.
var suggestedActions = map[Segment]string{
	SegmentChampions:         "Offer VIP loyalty reward",
	SegmentLoyalCustomers:    "Upsell premium products",
	SegmentPotentialLoyalist: "Send exclusive preview",
	SegmentRecentCustomers:   "Welcome email & offer",
	SegmentAtRisk:            "Send win-back campaign",
	SegmentLost:              "Big discount or let go",
	SegmentOthers:            "General promotions",
}

// SuggestedAction retorna a ação recomendada para o segmento
func (s Segment) SuggestedAction() string {
	return suggestedActions[s]
}

// CustomerRFM é o registro derivado de um cliente: métricas brutas, scores de
// quintil, segmento e ação recomendada. Cada cliente aparece exatamente uma
// vez na tabela final.
type CustomerRFM struct {
	CustomerID      int64   `json:"customer_id"`
	Recency         int     `json:"recency"`   // dias desde a compra mais recente
	Frequency       int     `json:"frequency"` // notas fiscais distintas
	Monetary        float64 `json:"monetary"`  // soma da receita das linhas
	RScore          int     `json:"r_score"`
	FScore          int     `json:"f_score"`
	MScore          int     `json:"m_score"`
	RFMScore        string  `json:"rfm_score"` // concatenação textual R-F-M, ex: "543"
	Segment         Segment `json:"segment"`
	SuggestedAction string  `json:"suggested_action"`
	Country         string  `json:"country,omitempty"`
}
