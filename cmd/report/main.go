package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/dataset"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/reporting"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/segmenting"
)

// report executa o pipeline RFM uma única vez sobre um CSV local e grava os
// dois artefatos de exportação: rfm_segments.csv e rfm_summary.csv.
func main() {
	input := flag.String("input", "", "Caminho do CSV de transações")
	output := flag.String("output", "reports/", "Diretório de saída dos relatórios")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	if *input == "" {
		logrus.Fatal("Uso: report --input transacoes.csv [--output reports/]")
	}

	ctx := context.Background()
	started := time.Now()

	// Estágios: carga, análise, tabela RFM, resumo
	bar := progressbar.Default(4, "gerando relatório RFM")

	source := dataset.NewCSVSource(*input)
	transactions, err := source.Load(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar o CSV de transações")
	}
	_ = bar.Add(1)

	segmenter := segmenting.NewService(source)
	report, err := segmenter.Analyze(ctx, transactions)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao executar a análise RFM")
	}
	_ = bar.Add(1)

	reporter := reporting.NewService()

	if err := os.MkdirAll(*output, 0o755); err != nil {
		logrus.WithError(err).Fatal("Erro ao criar o diretório de saída")
	}

	segmentsCSV, err := reporter.RenderSegmentsCSV(report)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar a tabela RFM")
	}
	segmentsPath := filepath.Join(*output, "rfm_segments.csv")
	if err := os.WriteFile(segmentsPath, segmentsCSV, 0o644); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar a tabela RFM")
	}
	_ = bar.Add(1)

	summaryCSV, err := reporter.RenderSummaryCSV(reporter.Summarize(report.Customers))
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao gerar o resumo por segmento")
	}
	summaryPath := filepath.Join(*output, "rfm_summary.csv")
	if err := os.WriteFile(summaryPath, summaryCSV, 0o644); err != nil {
		logrus.WithError(err).Fatal("Erro ao gravar o resumo por segmento")
	}
	_ = bar.Add(1)

	logrus.WithFields(logrus.Fields{
		"run_id":      report.RunID,
		"customers":   len(report.Customers),
		"segments":    segmentsPath,
		"summary":     summaryPath,
		"duration_ms": time.Since(started).Milliseconds(),
	}).Info("Relatório RFM gerado com sucesso")
}
