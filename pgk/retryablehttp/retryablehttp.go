package retryablehttp

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultRetryAfter = 60 * time.Second
	DefaultMaxRetries = 3
)

var ErrRetriesExhausted = errors.New("last attempt failed")

type RetryConfig struct {
	MaxRetries int           // Максимум повторов: 0 - без повторов, < 0 - по умолчанию 3
	BaseDelay  time.Duration // Базовая задержка (по умолчанию 100ms)
	MaxDelay   time.Duration // Максимальная задержка (по умолчанию 5s)
	MaxJitter  time.Duration // Максимальный jitter (по умолчанию 100ms)
	Timeout    time.Duration // Таймаут одной попытки, 0 - без таймаута
}

type RetryableClient struct {
	client      *http.Client
	retryConfig RetryConfig
}

func NewRetryableClient(config RetryConfig) *RetryableClient {
	if config.MaxRetries < 0 {
		config.MaxRetries = DefaultMaxRetries
	}
	if config.BaseDelay == 0 {
		config.BaseDelay = 100 * time.Millisecond
	}
	if config.MaxDelay == 0 {
		config.MaxDelay = 5 * time.Second
	}
	if config.MaxJitter == 0 {
		config.MaxJitter = 100 * time.Millisecond
	}

	return &RetryableClient{
		client:      &http.Client{Timeout: config.Timeout},
		retryConfig: config,
	}
}

// HTTPClient - клиент без повторов, для неидемпотентных запросов.
func (c *RetryableClient) HTTPClient() *http.Client {
	return c.client
}

// isRetryable определяет, нужно ли делать retry.
// Ошибки транспорта не повторяются: в браузере их не отличить от CORS-блокировки,
// и оформление заказа показывает их пользователю сразу.
func (c *RetryableClient) isRetryable(resp *http.Response, err error) bool {
	if err != nil {
		return false
	}

	if resp == nil {
		return false
	}

	// Retry для серверных ошибок и rate limiting. 401 не повторяем никогда.
	statusCode := resp.StatusCode
	return statusCode == 0 || // Неизвестная ошибка
		(statusCode >= 500 && statusCode <= 599) || // 5xx, 502 Bad Gateway, 503 Service Unavailable, 504 Gateway Timeout etc
		statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout
}

// Do выполняет запрос с повторами. Если все попытки исчерпаны, возвращается
// последний ответ (с закрытым телом) и ErrRetriesExhausted.
func (c *RetryableClient) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	req = req.WithContext(ctx)

	for attempt := 0; attempt <= c.retryConfig.MaxRetries; attempt++ {
		// Проверка отмены контекста
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		resp, err = c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}

		// Успех или ошибка, которую повторять бессмысленно
		if !c.isRetryable(resp, nil) {
			return resp, nil
		}

		// Закрываем тело ответа при retry
		if resp.Body != nil {
			resp.Body.Close()
		}

		// Последняя попытка - возвращаем ошибку
		if attempt == c.retryConfig.MaxRetries {
			return resp, fmt.Errorf("%w: %s", ErrRetriesExhausted, resp.Status)
		}

		// Exponential backoff + jitter, Retry-After для 429
		delay := c.backoffDelay(attempt)
		if resp.StatusCode == http.StatusTooManyRequests && resp.Header.Get("Retry-After") != "" {
			delay = min(RetryAfter(resp), c.retryConfig.MaxDelay)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return nil, fmt.Errorf("unexpected error")
}

// backoffDelay вычисляет задержку с экспоненциальным ростом и jitter
func (c *RetryableClient) backoffDelay(attempt int) time.Duration {
	backoff := time.Duration(1<<uint(attempt)) * c.retryConfig.BaseDelay
	if backoff > c.retryConfig.MaxDelay {
		backoff = c.retryConfig.MaxDelay
	}

	jitter := time.Duration(rand.Int63n(int64(c.retryConfig.MaxJitter)))
	return backoff + jitter
}

// RetryAfter читает заголовок Retry-After (в секундах).
func RetryAfter(resp *http.Response) time.Duration {
	if resp == nil {
		return DefaultRetryAfter
	}
	if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
		if seconds, err := strconv.ParseInt(retryAfter, 10, 64); err == nil && seconds >= 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return DefaultRetryAfter // дефолт
}
