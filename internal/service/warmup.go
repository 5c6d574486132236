package service

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/ibeloyar/oilcheckout/internal/model"
)

const (
	warmupAttempts = 2
	maxWarmupPause = 30 * time.Second
)

// Warmup заранее загружает конфигурации магазинов в кэш. На 429 весь пул
// встаёт на паузу по Retry-After. Возвращает число загруженных конфигураций.
func (s *Service) Warmup(ctx context.Context, shopIDs []string) int {
	if len(shopIDs) == 0 {
		return 0
	}

	var loaded atomic.Int64

	wp := NewWorkerPool(min(runtime.NumCPU(), len(shopIDs)))
	wp.run(shopIDs, func(shopID string) {
		for attempt := 0; attempt < warmupAttempts; attempt++ {
			if ctx.Err() != nil {
				return
			}
			if attempt > 0 {
				wp.waitIfPaused()
			}

			_, err := s.loadShopConfig(ctx, shopID)
			if err == nil {
				loaded.Add(1)
				return
			}

			var remoteErr *model.RemoteError
			if errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusTooManyRequests {
				pause := min(remoteErr.RetryAfter, maxWarmupPause)
				s.lg.Warnf("warmup rate limited on shop %s, pausing for %s", shopID, pause)
				wp.pausePoolWithTimer(pause)
				continue
			}

			s.lg.Errorf("warmup shop config %s error: %v", shopID, err)
			return
		}
	})

	s.lg.Infof("warmup finished: %d of %d shop configs cached", loaded.Load(), len(shopIDs))

	return int(loaded.Load())
}
