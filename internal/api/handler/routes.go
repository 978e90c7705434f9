package handler

import (
	"net/http"

	"github.com/vfg2006/customer-segmentation-api/internal/api/handler/router"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/reporting"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/segmenting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// RFM retorna as rotas de análise e exportação da segmentação de clientes
func RFM(segmenter segmenting.Segmenter, reporter reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/rfm/report",
			Method:  http.MethodGet,
			Handler: GetRFMReport(segmenter, reporter),
		},
		{
			Path:    "/v1/rfm/analyze",
			Method:  http.MethodPost,
			Handler: AnalyzeTransactions(segmenter, reporter),
		},
		{
			Path:    "/v1/rfm/export/segments",
			Method:  http.MethodGet,
			Handler: ExportSegments(segmenter, reporter),
		},
		{
			Path:    "/v1/rfm/export/summary",
			Method:  http.MethodGet,
			Handler: ExportSummary(segmenter, reporter),
		},
	}
}
