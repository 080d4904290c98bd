package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpro/fitpro-system/internal/middleware"
	"github.com/fitpro/fitpro-system/internal/model"
	"github.com/fitpro/fitpro-system/internal/pricing"
	"github.com/fitpro/fitpro-system/internal/repository"
	"github.com/fitpro/fitpro-system/internal/service"
)

// GetRegistrations возвращает заявки клиентов с необязательным фильтром по статусу.
func (h *Handler) GetRegistrations(w http.ResponseWriter, r *http.Request) {
	status := model.RegistrationStatus(r.URL.Query().Get("status"))

	regs, err := h.service.ListRegistrations(r.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("list registrations error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(regs) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]registrationResponse, 0, len(regs))
	for _, reg := range regs {
		resp = append(resp, toRegistrationResponse(reg))
	}

	h.writeJSON(w, resp)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateRegistrationStatus изменяет статус заявки клиента.
func (h *Handler) UpdateRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err = h.service.UpdateRegistrationStatus(r.Context(), id, model.RegistrationStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, repository.ErrRegistrationNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("update registration status error", zap.Error(err), zap.String("id", id.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

type offerRequest struct {
	PricingPlanID string  `json:"pricing_plan_id"`
	OriginalPrice float64 `json:"original_price"`
	OfferPrice    float64 `json:"offer_price"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
}

func (req offerRequest) toParams() (service.OfferParams, error) {
	planID, err := uuid.Parse(req.PricingPlanID)
	if err != nil {
		return service.OfferParams{}, err
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return service.OfferParams{}, err
	}

	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return service.OfferParams{}, err
	}

	return service.OfferParams{
		PricingPlanID: planID,
		OriginalPrice: req.OriginalPrice,
		OfferPrice:    req.OfferPrice,
		StartDate:     start,
		EndDate:       end,
	}, nil
}

type offerResponse struct {
	ID                 string  `json:"id"`
	PricingPlanID      string  `json:"pricing_plan_id"`
	OriginalPrice      float64 `json:"original_price"`
	OfferPrice         float64 `json:"offer_price"`
	DiscountPercentage int     `json:"discount_percentage"`
	StartDate          string  `json:"start_date"`
	EndDate            string  `json:"end_date"`
	PausedAt           *string `json:"paused_at,omitempty"`
	Status             string  `json:"status"`
	CreatedAt          string  `json:"created_at"`
}

func toOfferResponse(o model.PriceOffer, status model.OfferStatus) offerResponse {
	resp := offerResponse{
		ID:                 o.ID.String(),
		PricingPlanID:      o.PricingPlanID.String(),
		OriginalPrice:      egp(o.OriginalPriceCents),
		OfferPrice:         egp(o.OfferPriceCents),
		DiscountPercentage: o.DiscountPercentage,
		StartDate:          o.StartDate.Format(time.RFC3339),
		EndDate:            o.EndDate.Format(time.RFC3339),
		Status:             string(status),
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
	if o.PausedAt != nil {
		v := o.PausedAt.Format(time.RFC3339)
		resp.PausedAt = &v
	}
	return resp
}

// GetOffers возвращает все акции, новые первыми, со статусом на текущий момент.
func (h *Handler) GetOffers(w http.ResponseWriter, r *http.Request) {
	offers, err := h.service.ListOffers(r.Context())
	if err != nil {
		h.logger.Error("list offers error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(offers) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	now := time.Now()
	resp := make([]offerResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, toOfferResponse(o, pricing.StatusAt(o, now)))
	}

	h.writeJSON(w, resp)
}

// CreateOffer создаёт новую акцию.
func (h *Handler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := h.service.CreateOffer(r.Context(), params)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOffer) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("create offer error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(idResponse{ID: id.String()}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// UpdateOffer изменяет акцию.
func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req offerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	params, err := req.toParams()
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err = h.service.UpdateOffer(r.Context(), id, params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOffer):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, repository.ErrOfferNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("update offer error", zap.Error(err), zap.String("id", id.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// DeleteOffer удаляет акцию.
func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteOffer(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("delete offer error", zap.Error(err), zap.String("id", id.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type pauseResponse struct {
	Status string `json:"status"`
}

// TogglePauseOffer приостанавливает акцию либо снимает приостановку.
func (h *Handler) TogglePauseOffer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	status, err := h.service.TogglePauseOffer(r.Context(), id, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("toggle pause offer error", zap.Error(err), zap.String("id", id.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, pauseResponse{Status: string(status)})
}

// GetPurchases возвращает все покупки программ для проверки тренером.
func (h *Handler) GetPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.service.ListPurchases(r.Context())
	if err != nil {
		h.logger.Error("list purchases error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(purchases) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]purchaseResponse, 0, len(purchases))
	for _, p := range purchases {
		resp = append(resp, toPurchaseResponse(p))
	}

	h.writeJSON(w, resp)
}

type reviewRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// ReviewPurchase фиксирует решение тренера по покупке программы.
func (h *Handler) ReviewPurchase(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err = h.service.ReviewPurchase(r.Context(), id, model.PurchaseStatus(req.Status), req.AdminNotes, reviewerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, repository.ErrPurchaseNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("review purchase error", zap.Error(err), zap.String("id", id.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
