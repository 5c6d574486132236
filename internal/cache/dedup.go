package cache

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Deduplicator склеивает одновременные запросы с одинаковым ключом в один.
// Ключ освобождается, как только запрос завершился (успешно или с ошибкой).
type Deduplicator struct {
	group singleflight.Group
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Do выполняет fn один раз на ключ среди одновременных вызовов; все ждущие
// получают один и тот же результат или ошибку. Отмена ctx освобождает только
// текущего вызывающего: общий запрос работает на контексте без отмены и
// доводится до конца.
func Do[T any](ctx context.Context, d *Deduplicator, key string, fn func(ctx context.Context) (T, error)) (T, bool, error) {
	var zero T

	detached := context.WithoutCancel(ctx)
	ch := d.group.DoChan(key, func() (any, error) {
		return fn(detached)
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Shared, res.Err
		}
		if res.Val == nil {
			return zero, res.Shared, nil
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, res.Shared, fmt.Errorf("dedup %q: unexpected result type %T", key, res.Val)
		}
		return v, res.Shared, nil
	}
}

// Forget отвязывает ключ: следующий вызов начнёт новый запрос.
func (d *Deduplicator) Forget(key string) {
	d.group.Forget(key)
}
