package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/pizzeria/internal/api/middleware"
	"github.com/mcoot/pizzeria/internal/api/request"
	"github.com/mcoot/pizzeria/internal/api/response"
	"github.com/mcoot/pizzeria/internal/model"
	"github.com/mcoot/pizzeria/internal/services/address"
	"github.com/mcoot/pizzeria/internal/services/payment"
)

// UserHandler handles the caller's own addresses and payment methods.
// Every route is scoped to the bound account.
type UserHandler struct {
	addresses *address.Service
	payments  *payment.Service
	logger    *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(addresses *address.Service, payments *payment.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		addresses: addresses,
		payments:  payments,
		logger:    logger,
	}
}

// ListAddresses handles GET /api/users/address
func (h *UserHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	addresses, err := h.addresses.List(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ListFromModels(addresses, response.AddressFromModel))
}

// CreateAddress handles POST /api/users/address
func (h *UserHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.CreateAddressRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.addresses.Create(r.Context(), account.ID, model.Address{
		Name:        req.Name,
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AddressFromModel(created))
}

// DeleteAddress handles DELETE /api/users/address/{id}
func (h *UserHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.addresses.Delete(r.Context(), account.ID, model.AddressID(id)); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}

// ListPayments handles GET /api/users/payment. Cards are always masked.
func (h *UserHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	payments, err := h.payments.List(r.Context(), account.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	resp := make([]response.Payment, 0, len(payments))
	for i := range payments {
		resp = append(resp, response.PaymentFromProjection(&payments[i]))
	}
	response.JSON(w, http.StatusOK, resp)
}

// CreatePayment handles POST /api/users/payment
func (h *UserHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	var req request.CreatePaymentRequest
	if err := request.Decode(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	created, err := h.payments.Create(r.Context(), account.ID, model.Payment{
		Type:         model.CardType(req.Type),
		Bank:         req.Bank,
		Number:       req.Number,
		Name:         req.Name,
		Expiration:   req.Expiration,
		SecurityCode: req.SecurityCode,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PaymentFromProjection(created))
}

// DeletePayment handles DELETE /api/users/payment/{id}
func (h *UserHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	account := middleware.MustGetAccount(r.Context())

	id, err := pathID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.payments.Delete(r.Context(), account.ID, model.PaymentID(id)); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}
