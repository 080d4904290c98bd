package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpro/fitpro-system/internal/middleware"
	"github.com/fitpro/fitpro-system/internal/model"
	"github.com/fitpro/fitpro-system/internal/repository"
	"github.com/fitpro/fitpro-system/internal/service"
)

const maxProofSize = 10 << 20

type registrationResponse struct {
	ID                string   `json:"id"`
	FullName          string   `json:"full_name"`
	Email             string   `json:"email"`
	Phone             string   `json:"phone"`
	Age               int      `json:"age"`
	Weight            float64  `json:"weight"`
	Height            float64  `json:"height"`
	GoalWeight        *float64 `json:"goal_weight,omitempty"`
	FitnessGoal       string   `json:"fitness_goal"`
	ActivityLevel     string   `json:"activity_level"`
	DietaryPrefs      string   `json:"dietary_prefs"`
	MedicalConditions string   `json:"medical_conditions"`
	Status            string   `json:"status"`
	CreatedAt         string   `json:"created_at"`
}

func toRegistrationResponse(reg model.ClientRegistration) registrationResponse {
	return registrationResponse{
		ID:                reg.ID.String(),
		FullName:          reg.FullName,
		Email:             reg.Email,
		Phone:             reg.Phone,
		Age:               reg.Age,
		Weight:            reg.Weight,
		Height:            reg.Height,
		GoalWeight:        reg.GoalWeight,
		FitnessGoal:       reg.FitnessGoal,
		ActivityLevel:     reg.ActivityLevel,
		DietaryPrefs:      reg.DietaryPrefs,
		MedicalConditions: reg.MedicalConditions,
		Status:            string(reg.Status),
		CreatedAt:         reg.CreatedAt.Format(time.RFC3339),
	}
}

// GetMyRegistration возвращает заявку текущего пользователя.
func (h *Handler) GetMyRegistration(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	reg, err := h.service.GetRegistrationByUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.logger.Error("get registration error", zap.Error(err), zap.String("userID", userID.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, toRegistrationResponse(*reg))
}

type progressRequest struct {
	Weight float64 `json:"weight"`
	Notes  string  `json:"notes"`
}

type progressResponse struct {
	ID         string  `json:"id"`
	Weight     float64 `json:"weight"`
	Notes      string  `json:"notes,omitempty"`
	RecordedAt string  `json:"recorded_at"`
}

// AddProgress сохраняет запись о весе текущего пользователя.
func (h *Handler) AddProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	id, err := h.service.AddProgress(r.Context(), userID, req.Weight, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRegistration) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("add progress error", zap.Error(err), zap.String("userID", userID.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(idResponse{ID: id.String()}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// GetProgress возвращает записи прогресса текущего пользователя.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entries, err := h.service.ListProgress(r.Context(), userID)
	if err != nil {
		h.logger.Error("list progress error", zap.Error(err), zap.String("userID", userID.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]progressResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, progressResponse{
			ID:         e.ID.String(),
			Weight:     e.Weight,
			Notes:      e.Notes,
			RecordedAt: e.RecordedAt.Format(time.RFC3339),
		})
	}

	h.writeJSON(w, resp)
}

// GetProgressSummary возвращает сводку прогресса относительно целевого веса.
func (h *Handler) GetProgressSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	summary, err := h.service.GetProgressSummary(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("progress summary error", zap.Error(err), zap.String("userID", userID.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, summary)
}

type purchaseResponse struct {
	ID              string  `json:"id"`
	ProgramID       string  `json:"program_id"`
	ProgramName     string  `json:"program_name"`
	Amount          float64 `json:"amount"`
	PaymentMethod   string  `json:"payment_method"`
	PaymentProofURL string  `json:"payment_proof_url"`
	Status          string  `json:"status"`
	AdminNotes      string  `json:"admin_notes,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toPurchaseResponse(p model.ProgramPurchase) purchaseResponse {
	return purchaseResponse{
		ID:              p.ID.String(),
		ProgramID:       p.ProgramID.String(),
		ProgramName:     p.ProgramName,
		Amount:          egp(p.AmountCents),
		PaymentMethod:   string(p.PaymentMethod),
		PaymentProofURL: p.PaymentProofURL,
		Status:          string(p.Status),
		AdminNotes:      p.AdminNotes,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
	}
}

// SubmitPurchase принимает multipart-форму с подтверждением оплаты программы:
// поля program_id, payment_method и файл proof.
func (h *Handler) SubmitPurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxProofSize); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	programID, err := uuid.Parse(r.FormValue("program_id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	method := model.PaymentMethod(r.FormValue("payment_method"))

	file, header, err := r.FormFile("proof")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	defer file.Close()

	id, err := h.service.SubmitPurchase(r.Context(), userID, programID, method, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPurchase):
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		case errors.Is(err, repository.ErrProgramNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		default:
			h.logger.Error("submit purchase error", zap.Error(err),
				zap.String("userID", userID.String()), zap.String("programID", programID.String()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(idResponse{ID: id.String()}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

// GetMyPurchases возвращает покупки текущего пользователя.
func (h *Handler) GetMyPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	purchases, err := h.service.ListPurchasesByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list purchases error", zap.Error(err), zap.String("userID", userID.String()))
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
