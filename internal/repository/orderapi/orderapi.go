package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/ibeloyar/oilcheckout/pgk/retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/ibeloyar/oilcheckout/internal/repository/orderapi"

	orderPath  = "/api/checkout/order"
	submitPath = "/api/orders"
	shopsPath  = "/api/shops/"

	// сколько байт тела ошибки попадает в сообщение
	maxErrorBody = 512
)

// Client - REST-клиент внешнего API заказов.
// GET-запросы идут через RetryableClient, отправка заказа выполняется один раз.
type Client struct {
	address     string
	retryClient *retryablehttp.RetryableClient
	tracer      trace.Tracer
}

func New(address string, retryClient *retryablehttp.RetryableClient) *Client {
	return &Client{
		address:     strings.TrimRight(address, "/"),
		retryClient: retryClient,
		tracer:      otel.Tracer(tracerName),
	}
}

// FetchOrder - получить данные заказа по токену из ссылки на оформление.
func (c *Client) FetchOrder(ctx context.Context, bearer string) (map[string]any, error) {
	return c.getJSON(ctx, "orderapi.FetchOrder", c.address+orderPath, bearer)
}

func (c *Client) FetchShopConfig(ctx context.Context, shopID string) (map[string]any, error) {
	return c.getJSON(ctx, "orderapi.FetchShopConfig", c.shopURL(shopID, "config"), "")
}

func (c *Client) FetchBankData(ctx context.Context, shopID string) (map[string]any, error) {
	return c.getJSON(ctx, "orderapi.FetchBankData", c.shopURL(shopID, "bank-data"), "")
}

// SubmitOrder - отправка заказа. Ответ сервера возвращается как есть (без конверта data).
func (c *Client) SubmitOrder(ctx context.Context, bearer string, payload model.OrderSubmission) (map[string]any, error) {
	ctx, span := c.startSpan(ctx, "orderapi.SubmitOrder", c.address+submitPath)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fail(span, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address+submitPath, bytes.NewReader(body))
	if err != nil {
		return nil, fail(span, err)
	}
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, bearer)

	response, err := c.retryClient.HTTPClient().Do(req)
	if err != nil {
		return nil, fail(span, transportError(ctx, err))
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	if !isSuccess(response.StatusCode) {
		return nil, fail(span, statusError(response.StatusCode, readMessage(response.Body)))
	}

	result, err := decodeObject(response)
	if err != nil {
		return nil, fail(span, err)
	}

	return result, nil
}

func (c *Client) getJSON(ctx context.Context, spanName, target, bearer string) (map[string]any, error) {
	ctx, span := c.startSpan(ctx, spanName, target)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fail(span, err)
	}
	req.Header.Set("Accept", "application/json")
	setBearer(req, bearer)

	response, err := c.retryClient.Do(ctx, req)
	if err != nil {
		// все попытки исчерпаны, тело ответа уже закрыто
		if response != nil && errors.Is(err, retryablehttp.ErrRetriesExhausted) {
			span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))
			remoteErr := statusError(response.StatusCode, response.Status)
			if response.StatusCode == http.StatusTooManyRequests {
				remoteErr.RetryAfter = retryablehttp.RetryAfter(response)
			}
			return nil, fail(span, remoteErr)
		}
		return nil, fail(span, transportError(ctx, err))
	}
	defer response.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", response.StatusCode))

	if !isSuccess(response.StatusCode) {
		return nil, fail(span, statusError(response.StatusCode, readMessage(response.Body)))
	}

	result, err := decodeObject(response)
	if err != nil {
		return nil, fail(span, err)
	}

	return unwrapData(result), nil
}

func (c *Client) shopURL(shopID, resource string) string {
	return c.address + shopsPath + url.PathEscape(shopID) + "/" + resource
}

func (c *Client) startSpan(ctx context.Context, name, target string) (context.Context, trace.Span) {
	return c.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.url", target)),
	)
}

func setBearer(req *http.Request, bearer string) {
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func isSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}

// statusError раскладывает не-2xx ответ по категориям ошибок.
func statusError(statusCode int, message string) *model.RemoteError {
	kind := model.KindAPI
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = model.KindTokenExpired
	case statusCode == http.StatusBadRequest:
		kind = model.KindValidation
	case statusCode >= 500 && statusCode <= 599:
		kind = model.KindServer
	}

	if message == "" {
		message = http.StatusText(statusCode)
	}

	return &model.RemoteError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

// transportError - ответа нет вовсе. Для браузера такой отказ неотличим от CORS.
// Отмена контекста вызывающей стороной возвращается без изменений.
func transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	return &model.RemoteError{
		Kind:    model.KindNetwork,
		Message: model.ErrNetworkMessage,
		Err:     err,
	}
}

// readMessage достаёт поле message из JSON-тела ошибки, иначе берёт текст как есть.
func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	return strings.TrimSpace(string(raw))
}

func decodeObject(response *http.Response) (map[string]any, error) {
	var result map[string]any
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]any{}, nil
		}
		return nil, &model.RemoteError{
			Kind:       model.KindAPI,
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
	}

	if result == nil {
		result = map[string]any{}
	}

	return result, nil
}

// unwrapData снимает конверт {"data": {...}}, если он есть.
func unwrapData(payload map[string]any) map[string]any {
	if len(payload) == 1 {
		if data, ok := payload["data"].(map[string]any); ok {
			return data
		}
	}
	return payload
}
