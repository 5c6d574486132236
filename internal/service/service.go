package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/ibeloyar/oilcheckout/internal/cache"
	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/ibeloyar/oilcheckout/internal/normalizer"
	"github.com/ibeloyar/oilcheckout/pgk/auth"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	warningShopConfig = "shop configuration unavailable, defaults applied"
	warningBankData   = "bank data unavailable"
)

type OrderAPI interface {
	FetchOrder(ctx context.Context, bearer string) (map[string]any, error)
	FetchShopConfig(ctx context.Context, shopID string) (map[string]any, error)
	FetchBankData(ctx context.Context, shopID string) (map[string]any, error)
	SubmitOrder(ctx context.Context, bearer string, payload model.OrderSubmission) (map[string]any, error)
}

type ConfirmationRepo interface {
	SaveConfirmation(ctx context.Context, sessionID string, blob []byte) error
	GetConfirmation(ctx context.Context, sessionID string) ([]byte, error)
	DeleteConfirmation(ctx context.Context, sessionID string) error
}

type Service struct {
	api           OrderAPI
	confirmations ConfirmationRepo
	cache         *cache.Cache
	dedup         *cache.Deduplicator
	lg            *zap.SugaredLogger

	tokenSecret string
	tokenExp    time.Duration

	now func() time.Time
}

func New(api OrderAPI, c ConfirmationRepo, requestCache *cache.Cache, lg *zap.SugaredLogger, tokenExp time.Duration, tokenSecret string) *Service {
	return &Service{
		api:           api,
		confirmations: c,
		cache:         requestCache,
		dedup:         cache.NewDeduplicator(),
		lg:            lg,

		tokenExp:    tokenExp,
		tokenSecret: tokenSecret,

		now: time.Now,
	}
}

// LoadCheckout - две фазы: сначала заказ (нужен shop_id), затем параллельно
// конфигурация магазина и банковские реквизиты. Ошибки второй фазы не фатальны.
func (s *Service) LoadCheckout(ctx context.Context, bearer string) (*model.CheckoutView, *model.APIError) {
	if bearer == "" {
		return nil, &model.APIError{
			Code:    http.StatusUnauthorized,
			Kind:    model.KindUnauthorized,
			Message: model.ErrTokenRequiredMessage,
		}
	}

	order, apiErr := s.loadOrder(ctx, bearer)
	if apiErr != nil {
		return nil, apiErr
	}

	var (
		shopConfig model.ShopConfigRecord
		bankData   *model.BankData
		warnings   [2]string
	)

	var g errgroup.Group
	g.Go(func() error {
		cfg, err := s.loadShopConfig(ctx, order.ShopID)
		if err != nil {
			s.lg.Warnf("shop config for %s unavailable, using defaults: %v", order.ShopID, err)
			shopConfig = normalizer.DefaultShopConfig(order.ShopID)
			warnings[0] = warningShopConfig
			return nil
		}
		shopConfig = cfg
		return nil
	})
	g.Go(func() error {
		data, err := s.loadBankData(ctx, order.ShopID)
		if err != nil {
			s.lg.Warnf("bank data for %s unavailable: %v", order.ShopID, err)
			warnings[1] = warningBankData
			return nil
		}
		bankData = data
		return nil
	})
	_ = g.Wait()

	token, err := auth.GenerateBearerToken(model.SessionInfo{
		SessionID: uuid.NewString(),
		ShopID:    order.ShopID,
	}, s.tokenExp, s.tokenSecret)
	if err != nil {
		s.lg.Errorf("generate session token error: %v", err)
		return nil, internalError()
	}

	view := &model.CheckoutView{
		Order:        order,
		ShopConfig:   shopConfig,
		BankData:     bankData,
		SessionToken: token,
	}
	for _, w := range warnings {
		if w != "" {
			view.Warnings = append(view.Warnings, w)
		}
	}

	return view, nil
}

func (s *Service) SubmitOrder(ctx context.Context, bearer string, session *model.SessionInfo, input model.SubmitOrderDTO) (*model.SubmitOrderResponse, *model.APIError) {
	if bearer == "" {
		return nil, &model.APIError{
			Code:    http.StatusUnauthorized,
			Kind:    model.KindUnauthorized,
			Message: model.ErrTokenRequiredMessage,
		}
	}
	if session == nil || session.SessionID == "" {
		return nil, &model.APIError{
			Code:    http.StatusUnauthorized,
			Kind:    model.KindUnauthorized,
			Message: http.StatusText(http.StatusUnauthorized),
		}
	}

	if apiErr := validateSubmitOrderDTO(input); apiErr != nil {
		return nil, apiErr
	}

	order, apiErr := s.loadOrder(ctx, bearer)
	if apiErr != nil {
		return nil, apiErr
	}

	if session.ShopID != order.ShopID {
		return nil, &model.APIError{
			Code:    http.StatusForbidden,
			Kind:    model.KindUnauthorized,
			Message: model.ErrSessionMismatchMessage,
		}
	}

	shopConfig, err := s.loadShopConfig(ctx, order.ShopID)
	if err != nil {
		s.lg.Warnf("shop config for %s unavailable, using defaults: %v", order.ShopID, err)
		shopConfig = normalizer.DefaultShopConfig(order.ShopID)
	}

	if !shopConfig.AcceptsPayment(input.PaymentMethod) {
		return nil, &model.APIError{
			Code:    http.StatusUnprocessableEntity,
			Kind:    model.KindPaymentMethod,
			Message: fmt.Sprintf(model.ErrPaymentNotAllowedFormat, input.PaymentMethod),
		}
	}

	result, err := s.api.SubmitOrder(ctx, bearer, buildSubmission(order, input))
	if err != nil {
		s.lg.Errorf("submit order for shop %s error: %v", order.ShopID, err)
		return nil, remoteAPIError(err)
	}

	confirmation := model.Confirmation{
		OrderNumber:   orderNumber(result),
		Order:         order,
		Customer:      input.Customer,
		PaymentMethod: input.PaymentMethod,
		ShopConfig:    shopConfig,
		CreatedAt:     s.now().UTC(),
	}

	// реквизиты для перевода нужны только при мгновенном оформлении с предоплатой
	if shopConfig.CheckoutMode == model.CheckoutModeInstant && input.PaymentMethod == model.PaymentMethodVorkasse {
		bankData, err := s.loadBankData(ctx, order.ShopID)
		if err != nil {
			s.lg.Warnf("bank data for %s unavailable: %v", order.ShopID, err)
		}
		confirmation.BankData = bankData
	}

	// заказ уже принят внешним API, ошибка сохранения не должна привести к повторной отправке
	blob, err := json.Marshal(confirmation)
	if err != nil {
		s.lg.Errorf("marshal confirmation error: %v", err)
	} else if err := s.confirmations.SaveConfirmation(ctx, session.SessionID, blob); err != nil {
		s.lg.Errorf("save confirmation for session %s error: %v", session.SessionID, err)
	}

	return &model.SubmitOrderResponse{OrderNumber: confirmation.OrderNumber}, nil
}

// GetConfirmation - JSON подтверждения без изменений. Отсутствие или битый JSON - 404 с редиректом на главную.
func (s *Service) GetConfirmation(ctx context.Context, session *model.SessionInfo) (model.ConfirmationBlob, *model.APIError) {
	notFound := &model.APIError{
		Code:     http.StatusNotFound,
		Kind:     model.KindNotFound,
		Message:  model.ErrConfirmationMessage,
		Redirect: "/",
	}

	if session == nil || session.SessionID == "" {
		return nil, notFound
	}

	blob, err := s.confirmations.GetConfirmation(ctx, session.SessionID)
	if err != nil {
		if !errors.Is(err, model.ErrConfirmationNotFound) {
			s.lg.Errorf("get confirmation for session %s error: %v", session.SessionID, err)
		}
		return nil, notFound
	}

	if !json.Valid(blob) {
		s.lg.Warnf("confirmation for session %s is not valid JSON", session.SessionID)
		return nil, notFound
	}

	return model.ConfirmationBlob(blob), nil
}

// ResetSession сбрасывает только данные вызывающей сессии:
// её подтверждение и закэшированную конфигурацию её магазина.
func (s *Service) ResetSession(ctx context.Context, session *model.SessionInfo) *model.APIError {
	if session == nil || session.SessionID == "" {
		return &model.APIError{
			Code:    http.StatusUnauthorized,
			Kind:    model.KindUnauthorized,
			Message: http.StatusText(http.StatusUnauthorized),
		}
	}

	if err := s.confirmations.DeleteConfirmation(ctx, session.SessionID); err != nil {
		s.lg.Errorf("delete confirmation for session %s error: %v", session.SessionID, err)
		return internalError()
	}

	if session.ShopID != "" {
		key := cache.ShopConfigKey(session.ShopID)
		s.cache.Delete(key)
		s.dedup.Forget(key)
	}

	return nil
}

func (s *Service) loadOrder(ctx context.Context, bearer string) (model.OrderRecord, *model.APIError) {
	raw, err := s.api.FetchOrder(ctx, bearer)
	if err != nil {
		s.lg.Errorf("fetch order error: %v", err)
		return model.OrderRecord{}, remoteAPIError(err)
	}

	order, err := normalizer.NormalizeOrder(raw)
	if err != nil {
		return model.OrderRecord{}, &model.APIError{
			Code:    http.StatusUnprocessableEntity,
			Kind:    model.KindValidation,
			Message: err.Error(),
		}
	}

	if !normalizer.ValidateOrderData(order) {
		s.lg.Warnf("order for shop %s failed validation: %+v", order.ShopID, order)
		return model.OrderRecord{}, &model.APIError{
			Code:    http.StatusUnprocessableEntity,
			Kind:    model.KindValidation,
			Message: "order data is incomplete or inconsistent",
		}
	}

	return order, nil
}

// loadShopConfig: кэш -> общий запрос в полёте -> внешний API -> нормализация -> кэш.
func (s *Service) loadShopConfig(ctx context.Context, shopID string) (model.ShopConfigRecord, error) {
	if cfg, ok := s.cache.GetCachedShopConfig(shopID); ok {
		return cfg, nil
	}

	cfg, _, err := cache.Do(ctx, s.dedup, cache.ShopConfigKey(shopID), func(ctx context.Context) (model.ShopConfigRecord, error) {
		raw, err := s.api.FetchShopConfig(ctx, shopID)
		if err != nil {
			return model.ShopConfigRecord{}, err
		}

		cfg := normalizer.NormalizeShopConfig(raw)
		if cfg.ShopID == normalizer.UnknownShopID {
			cfg.ShopID = shopID
		}

		s.cache.SetCachedShopConfig(shopID, cfg)
		return cfg, nil
	})

	return cfg, err
}

func (s *Service) loadBankData(ctx context.Context, shopID string) (*model.BankData, error) {
	raw, err := s.api.FetchBankData(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return normalizer.NormalizeBankData(raw), nil
}

func buildSubmission(order model.OrderRecord, input model.SubmitOrderDTO) model.OrderSubmission {
	return model.OrderSubmission{
		Customer: input.Customer,
		Order: model.OrderSubmissionLine{
			ShopID:         order.ShopID,
			ProductName:    order.ProductName,
			ProductType:    order.ProductType,
			QuantityLiters: order.QuantityLiters,
			PricePerLiter:  order.PricePerLiter,
			DeliveryFee:    order.DeliveryFee,
			TaxRate:        order.TaxRate,
			Currency:       order.Currency,
			TotalNet:       order.TotalNet,
			TotalTax:       order.TotalTax,
			TotalGross:     order.TotalGross,
			PaymentMethod:  input.PaymentMethod,
			DeliveryDate:   input.DeliveryDate,
			Notes:          input.Notes,
		},
	}
}

// orderNumber - номер заказа из ответа внешнего API, поле называется по-разному.
func orderNumber(result map[string]any) string {
	for _, key := range []string{"order_number", "orderNumber", "order_id", "id"} {
		switch v := result[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}

	if data, ok := result["data"].(map[string]any); ok {
		return orderNumber(data)
	}

	return ""
}

// remoteAPIError переводит ошибку внешнего API в ответ для фронтенда.
func remoteAPIError(err error) *model.APIError {
	var remoteErr *model.RemoteError
	if !errors.As(err, &remoteErr) {
		return internalError()
	}

	switch remoteErr.Kind {
	case model.KindTokenExpired:
		return &model.APIError{
			Code:     http.StatusUnauthorized,
			Kind:     model.KindTokenExpired,
			Message:  model.ErrTokenExpiredMessage,
			Redirect: "/",
		}
	case model.KindValidation:
		return &model.APIError{
			Code:    http.StatusBadRequest,
			Kind:    model.KindValidation,
			Message: remoteErr.Message,
		}
	case model.KindServer:
		return &model.APIError{
			Code:      http.StatusBadGateway,
			Kind:      model.KindServer,
			Message:   model.ErrServerMessage,
			Retryable: true,
		}
	case model.KindNetwork:
		return &model.APIError{
			Code:      http.StatusBadGateway,
			Kind:      model.KindNetwork,
			Message:   model.ErrNetworkMessage,
			Retryable: true,
		}
	default:
		return &model.APIError{
			Code:    http.StatusBadGateway,
			Kind:    model.KindAPI,
			Message: fmt.Sprintf("order service error (status %d)", remoteErr.StatusCode),
		}
	}
}

func internalError() *model.APIError {
	return &model.APIError{
		Code:    http.StatusInternalServerError,
		Kind:    model.KindInternal,
		Message: model.ErrInternalServerMessage,
	}
}
