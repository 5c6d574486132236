package http

import (
	"context"
	"net/http"

	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/ibeloyar/oilcheckout/pgk/auth"
	"go.uber.org/zap"
)

// SessionHeader - заголовок с токеном сессии оформления, выданным в LoadCheckout.
const SessionHeader = "X-Checkout-Session"

type Service interface {
	LoadCheckout(ctx context.Context, bearer string) (*model.CheckoutView, *model.APIError)
	SubmitOrder(ctx context.Context, bearer string, session *model.SessionInfo, input model.SubmitOrderDTO) (*model.SubmitOrderResponse, *model.APIError)
	GetConfirmation(ctx context.Context, session *model.SessionInfo) (model.ConfirmationBlob, *model.APIError)
	ResetSession(ctx context.Context, session *model.SessionInfo) *model.APIError
}

type Pinger interface {
	Ping() error
}

type Controller struct {
	service Service
	storage Pinger
	lg      *zap.SugaredLogger
}

func New(s Service, p Pinger, lg *zap.SugaredLogger) *Controller {
	return &Controller{
		lg:      lg,
		service: s,
		storage: p,
	}
}

func (c *Controller) Ping(w http.ResponseWriter, r *http.Request) {
	if err := c.storage.Ping(); err != nil {
		c.lg.Errorf("storage ping error: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (c *Controller) LoadCheckout(w http.ResponseWriter, r *http.Request) {
	view, apiErr := c.service.LoadCheckout(r.Context(), orderToken(r))
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	w.Header().Set(SessionHeader, view.SessionToken)
	writeJSON(w, view, http.StatusOK)
}

func (c *Controller) SubmitOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody[model.SubmitOrderDTO](r)
	if err != nil {
		c.lg.Errorf("failed to parse request body: %v", err)
		writeAPIError(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Kind:    model.KindValidation,
			Message: "invalid request body",
		})
		return
	}

	session := auth.GetTokenInfo[model.SessionInfo](r)

	resp, apiErr := c.service.SubmitOrder(r.Context(), orderToken(r), session, body)
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	writeJSON(w, resp, http.StatusCreated)
}

// GetConfirmation отдаёт сохранённый JSON как есть.
func (c *Controller) GetConfirmation(w http.ResponseWriter, r *http.Request) {
	blob, apiErr := c.service.GetConfirmation(r.Context(), auth.GetTokenInfo[model.SessionInfo](r))
	if apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// ResetSession - сессия берётся из токена, чужие данные не затрагиваются.
func (c *Controller) ResetSession(w http.ResponseWriter, r *http.Request) {
	if apiErr := c.service.ResetSession(r.Context(), auth.GetTokenInfo[model.SessionInfo](r)); apiErr != nil {
		writeAPIError(w, apiErr)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// orderToken - токен заказа из Authorization или из параметра token ссылки на оформление.
func orderToken(r *http.Request) string {
	if token, ok := auth.BearerValue(r.Header.Get("Authorization")); ok {
		return token
	}

	return r.URL.Query().Get("token")
}
