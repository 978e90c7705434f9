package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/database/postgres"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/dataset"
	"github.com/vfg2006/customer-segmentation-api/infrastructure/repository"
	"github.com/vfg2006/customer-segmentation-api/internal/api"
	"github.com/vfg2006/customer-segmentation-api/internal/config"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/reporting"
	"github.com/vfg2006/customer-segmentation-api/internal/usecases/segmenting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source, cleanup := defaultSource(ctx, cfg)
	defer cleanup()

	// O dataset padrão é carregado uma única vez e vale pela vida do processo
	cache := dataset.NewCache(source)

	segmenter := segmenting.NewService(cache)
	reporter := reporting.NewService()

	server, err := api.New(cfg, segmenter, reporter)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// defaultSource monta a fonte do dataset padrão conforme a configuração
func defaultSource(ctx context.Context, cfg *config.Config) (dataset.Source, func()) {
	switch cfg.Dataset.Source {
	case "postgres":
		conn := pgconn(ctx, cfg.Database)
		return repository.NewTransactionRepository(conn), func() { conn.Close() }
	case "xlsx":
		logrus.Infof("Dataset padrão: planilha %s", cfg.Dataset.Path)
		return dataset.NewXLSXSource(cfg.Dataset.Path, cfg.Dataset.Sheet), func() {}
	default:
		logrus.Infof("Dataset padrão: arquivo CSV %s", cfg.Dataset.Path)
		return dataset.NewCSVSource(cfg.Dataset.Path), func() {}
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
