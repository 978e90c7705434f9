package domain

// SegmentSummary agrega a tabela RFM por segmento: médias das três métricas e
// a contagem de clientes. A lista final é ordenada por Count decrescente.
type SegmentSummary struct {
	Segment   Segment `json:"segment"`
	Recency   float64 `json:"recency"`
	Frequency float64 `json:"frequency"`
	Monetary  float64 `json:"monetary"`
	Count     int     `json:"count"`
}
