package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ibeloyar/oilcheckout/internal/model"
	"github.com/ibeloyar/oilcheckout/pgk/auth"
)

type MetricHandlers interface {
	Ping(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandlers interface {
	LoadCheckout(w http.ResponseWriter, r *http.Request)
	SubmitOrder(w http.ResponseWriter, r *http.Request)
	GetConfirmation(w http.ResponseWriter, r *http.Request)
	ResetSession(w http.ResponseWriter, r *http.Request)
}

func InitRoutes(r *chi.Mux, metricHandlers MetricHandlers, checkoutHandlers CheckoutHandlers, secret string) *chi.Mux {
	sessionAuth := auth.AuthBearerMiddlewareInit[model.SessionInfo](secret, SessionHeader)

	r.Get("/ping", metricHandlers.Ping)

	r.Get("/api/checkout", checkoutHandlers.LoadCheckout)

	r.With(sessionAuth).Post("/api/checkout/orders", checkoutHandlers.SubmitOrder)
	r.With(sessionAuth).Get("/api/checkout/confirmation", checkoutHandlers.GetConfirmation)
	r.With(sessionAuth).Post("/api/checkout/reset", checkoutHandlers.ResetSession)

	return r
}
