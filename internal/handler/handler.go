// Package handler exposes the storefront's JSON API: product browsing,
// cart operations, and the checkout wizard. Sessions are tracked with an
// opaque cookie; a request without one gets a fresh session transparently.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/markethub/storefront/internal/delivery"
	"github.com/markethub/storefront/internal/domain"
	"github.com/markethub/storefront/internal/middleware"
	"github.com/markethub/storefront/internal/session"
)

// SessionCookieName carries the session token.
const SessionCookieName = "storefront_session"

type sessionTokenKey struct{}

// Handler serves the storefront API.
type Handler struct {
	catalog  domain.ProductRepository
	cart     domain.CartService
	checkout domain.CheckoutService
	options  delivery.Provider
	sessions *session.Store
	logger   *slog.Logger
}

// New creates the API handler.
func New(
	catalog domain.ProductRepository,
	cart domain.CartService,
	checkout domain.CheckoutService,
	options delivery.Provider,
	sessions *session.Store,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		options:  options,
		sessions: sessions,
		logger:   logger,
	}
}

// Routes mounts the API route tree.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Get("/delivery-options", h.ListDeliveryOptions)

	// Everything below needs a session.
	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddCartItem)
			r.Put("/items/{id}", h.SetCartItemQuantity)
			r.Delete("/items/{id}", h.RemoveCartItem)
			r.Post("/items/{id}/wishlist", h.MoveCartItemToWishlist)
			r.Post("/promo", h.ApplyPromo)
			r.Delete("/promo", h.RemovePromo)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.BeginCheckout)
			r.Get("/", h.CheckoutState)
			r.Post("/shipping", h.SubmitShipping)
			r.Post("/delivery", h.SelectDelivery)
			r.Post("/payment", h.SubmitPayment)
			r.Post("/back", h.StepBack)
			r.Post("/order", h.PlaceOrder)
			r.Get("/order", h.GetOrder)
		})
	})

	return r
}

// withSession resolves the session cookie, creating a session (and
// setting the cookie) when the request has none or names a session the
// store no longer knows. The token lands in the request context.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(SessionCookieName); err == nil && h.sessions.Exists(c.Value) {
			token = c.Value
		} else {
			created, err := h.sessions.Create()
			if err != nil {
				ErrorResponse(w, r, err)
				return
			}
			token = created
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    token,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			middleware.GetLogger(r.Context(), h.logger).Debug("session created")
		}

		ctx := context.WithValue(r.Context(), sessionTokenKey{}, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionToken returns the token placed in the context by withSession.
func sessionToken(r *http.Request) string {
	if token, ok := r.Context().Value(sessionTokenKey{}).(string); ok {
		return token
	}
	return ""
}
