package segmenting

import (
	"context"

	"github.com/pkg/errors"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/dataset"
	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"github.com/vfg2006/customer-segmentation-api/pkg/log"
	"github.com/vfg2006/customer-segmentation-api/pkg/utils"
)

// Segmenter define a interface do pipeline de segmentação RFM
type Segmenter interface {
	// Analyze executa o pipeline completo sobre uma tabela de transações em memória
	Analyze(ctx context.Context, raw []domain.Transaction) (*domain.RFMReport, error)

	// AnalyzeDefault executa o pipeline sobre o dataset padrão (fonte cacheada)
	AnalyzeDefault(ctx context.Context) (*domain.RFMReport, error)
}

// Service implementa o Segmenter. Cada execução opera sobre sua própria cópia
// dos dados; não há estado mutável compartilhado entre execuções além da fonte
// padrão, que é somente leitura.
type Service struct {
	defaultSource dataset.Source
}

// NewService cria o serviço de segmentação com a fonte do dataset padrão
func NewService(defaultSource dataset.Source) Segmenter {
	return &Service{
		defaultSource: defaultSource,
	}
}

// AnalyzeDefault carrega o dataset padrão e delega para Analyze
func (s *Service) AnalyzeDefault(ctx context.Context) (*domain.RFMReport, error) {
	raw, err := s.defaultSource.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading default dataset")
	}

	return s.Analyze(ctx, raw)
}

// Analyze executa os estágios em sequência estrita: limpeza, agregação,
// pontuação e classificação. Falha em qualquer estágio aborta a execução
// inteira; não há recuperação parcial.
func (s *Service) Analyze(ctx context.Context, raw []domain.Transaction) (*domain.RFMReport, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "generating run ID")
	}

	logger := log.ForContext(ctx).WithField("run_id", runID)
	logger.WithField("total_rows", len(raw)).Info("rfm: starting analysis run")

	cleaned, dropped, err := Preprocess(raw)
	if err != nil {
		logger.WithError(err).Error("rfm: preprocessing failed")
		return nil, err
	}

	if len(cleaned) == 0 {
		logger.Warn("rfm: no rows with customer ID left after cleaning")
		return nil, ErrEmptyDataset
	}

	referenceDate := ReferenceDate(cleaned)
	customers := Aggregate(cleaned, referenceDate)

	if err := Score(customers); err != nil {
		logger.WithError(err).Error("rfm: quintile scoring failed")
		return nil, err
	}

	Classify(customers)

	hasCountry := false
	for _, c := range customers {
		if c.Country != "" {
			hasCountry = true
			break
		}
	}

	logger.WithFields(log.Fields{
		"customers":    len(customers),
		"dropped_rows": dropped,
	}).Info("rfm: analysis run finished")

	return &domain.RFMReport{
		RunID:         runID,
		ReferenceDate: referenceDate,
		TotalRows:     len(raw),
		DroppedRows:   dropped,
		Customers:     customers,
		HasCountry:    hasCountry,
	}, nil
}
