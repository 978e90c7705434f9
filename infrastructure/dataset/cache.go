package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/customer-segmentation-api/internal/domain"
	"github.com/vfg2006/customer-segmentation-api/pkg/log"
)

// Cache envolve uma Source e materializa o resultado uma única vez por
// processo. O conteúdo vale pela vida inteira do processo e só é invalidado
// por restart; execuções subsequentes leem a mesma fatia, que nunca é mutada
// pelos consumidores (o pré-processamento constrói fatias novas).
type Cache struct {
	source Source

	once         sync.Once
	transactions []domain.Transaction
	err          error
	loadedAt     time.Time
}

// NewCache cria o cache de leitura única sobre a fonte informada
func NewCache(source Source) *Cache {
	return &Cache{source: source}
}

// Load carrega da fonte na primeira chamada e serve o resultado memorizado nas
// demais. Um erro de carga também é memorizado: a fonte padrão é configuração
// do processo, não algo que se resolve sozinho entre requisições.
func (c *Cache) Load(ctx context.Context) ([]domain.Transaction, error) {
	c.once.Do(func() {
		started := time.Now()
		c.transactions, c.err = c.source.Load(ctx)
		c.loadedAt = time.Now()

		if c.err != nil {
			log.ForContext(ctx).WithError(c.err).Error("dataset: failed to load default dataset")
			return
		}

		log.ForContext(ctx).WithFields(log.Fields{
			"rows":        len(c.transactions),
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("dataset: default dataset loaded and cached")
	})

	return c.transactions, c.err
}
