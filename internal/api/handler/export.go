package handler

import (
	"net/http"

	"github.com/vfg2006/customer-segmentation-api/internal/usecases/reporting"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/segmenting"
	"github.com/vfg2006/customer-segmentation-api/pkg/apiErrors"
	"github.com/vfg2006/customer-segmentation-api/pkg/log"
)

// ExportSegments baixa a tabela RFM completa do dataset padrão como CSV
func ExportSegments(segmenter segmenting.Segmenter, reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("rfm: exporting full RFM table")

		report, err := segmenter.AnalyzeDefault(r.Context())
		if err != nil {
			logger.WithError(err).Error("rfm: analysis failed during segments export")
			writePipelineError(w, err)
			return
		}

		payload, err := reporter.RenderSegmentsCSV(report)
		if err != nil {
			logger.WithError(err).Error("rfm: failed to render segments CSV")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o CSV", nil)
			return
		}

		writeCSVAttachment(w, "rfm_segments.csv", payload, logger)
	})
}

// ExportSummary baixa o resumo por segmento do dataset padrão como CSV
func ExportSummary(segmenter segmenting.Segmenter, reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("rfm: exporting segment summary")

		report, err := segmenter.AnalyzeDefault(r.Context())
		if err != nil {
			logger.WithError(err).Error("rfm: analysis failed during summary export")
			writePipelineError(w, err)
			return
		}

		payload, err := reporter.RenderSummaryCSV(reporter.Summarize(report.Customers))
		if err != nil {
			logger.WithError(err).Error("rfm: failed to render summary CSV")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar o CSV", nil)
			return
		}

		writeCSVAttachment(w, "rfm_summary.csv", payload, logger)
	})
}

func writeCSVAttachment(w http.ResponseWriter, filename string, payload []byte, logger log.Logger) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if _, err := w.Write(payload); err != nil {
		logger.WithError(err).Error("rfm: failed to write CSV response")
	}
}
