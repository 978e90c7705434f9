package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/dataset"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/reporting"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/segmenting"
	"github.com/vfg2006/customer-segmentation-api/pkg/apiErrors"
	"github.com/vfg2006/customer-segmentation-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxUploadBytes limita o tamanho do CSV enviado (64 MiB cobre o dataset de
// varejo com folga)
const maxUploadBytes = 64 << 20

// GetRFMReport calcula e retorna o relatório RFM do dataset padrão cacheado
func GetRFMReport(segmenter segmenting.Segmenter, reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("rfm: building report from default dataset")

		report, err := segmenter.AnalyzeDefault(r.Context())
		if err != nil {
			logger.WithError(err).Error("rfm: default dataset analysis failed")
			writePipelineError(w, err)
			return
		}

		response := reporter.BuildResponse(report)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("rfm: failed to encode report response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// AnalyzeTransactions recebe um CSV de transações via multipart (campo "file")
// e retorna o relatório calculado sobre ele. Nada do upload é persistido.
func AnalyzeTransactions(segmenter segmenting.Segmenter, reporter reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			logger.WithError(err).Warn("rfm: missing or unreadable upload file")
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData,
				"Envie o CSV de transações no campo 'file'", nil)
			return
		}
		defer file.Close()

		logger.WithFields(log.Fields{
			"filename": header.Filename,
			"size":     header.Size,
		}).Info("rfm: analyzing uploaded transactions file")

		transactions, err := dataset.ReadCSV(file)
		if err != nil {
			logger.WithError(err).Warn("rfm: failed to decode uploaded file")
			writePipelineError(w, err)
			return
		}

		report, err := segmenter.Analyze(r.Context(), transactions)
		if err != nil {
			logger.WithError(err).Error("rfm: analysis of uploaded file failed")
			writePipelineError(w, err)
			return
		}

		response := reporter.BuildResponse(report)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logger.WithError(err).Error("rfm: failed to encode analysis response")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}

// writePipelineError traduz a taxonomia de erros do pipeline para o código de
// API correspondente. A mensagem sempre identifica o campo ou a condição.
func writePipelineError(w http.ResponseWriter, err error) {
	var (
		missingColumns  *dataset.MissingColumnsError
		invalidNumeric  *dataset.InvalidNumericError
		dateParse       *segmenting.DateParseError
		customerIDParse *segmenting.CustomerIDParseError
		cardinality     *segmenting.InsufficientCardinalityError
	)

	switch {
	case errors.As(err, &missingColumns):
		apiErrors.WriteError(w, apiErrors.ErrMissingColumns, missingColumns.Error(), missingColumns.Missing)
	case errors.As(err, &invalidNumeric):
		apiErrors.WriteError(w, apiErrors.ErrInvalidNumeric, invalidNumeric.Error(), nil)
	case errors.As(err, &dateParse):
		apiErrors.WriteError(w, apiErrors.ErrDateParse, dateParse.Error(), nil)
	case errors.As(err, &customerIDParse):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, customerIDParse.Error(), nil)
	case errors.As(err, &cardinality):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientCardinality, cardinality.Error(), nil)
	case errors.Is(err, segmenting.ErrEmptyDataset):
		apiErrors.WriteError(w, apiErrors.ErrEmptyDataset, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao processar a análise", nil)
	}
}
