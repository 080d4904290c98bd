// Package handler содержит HTTP-обработчики API сервиса fitpro.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitpro/fitpro-system/internal/calories"
	"github.com/fitpro/fitpro-system/internal/meals"
	"github.com/fitpro/fitpro-system/internal/middleware"
	"github.com/fitpro/fitpro-system/internal/model"
	"github.com/fitpro/fitpro-system/internal/pricing"
	"github.com/fitpro/fitpro-system/internal/repository"
	"github.com/fitpro/fitpro-system/internal/service"
)

// Service определяет контракт бизнес-логики, используемой HTTP-обработчиками.
type Service interface {
	RegisterUser(ctx context.Context, email, password, fullName string, role model.Role) (uuid.UUID, error)
	AuthenticateUser(ctx context.Context, email, password string) (*model.Profile, error)
	EstimateCalories(in calories.Input) (calories.Result, error)
	ListSports(ctx context.Context) ([]model.Sport, error)
	ListCategories(ctx context.Context) ([]model.AthleteCategory, error)
	ListPlans(ctx context.Context) ([]model.PricingPlan, error)
	GetQuote(ctx context.Context, sportID, categoryID uuid.UUID, now time.Time) (*pricing.Quote, error)
	CreateOffer(ctx context.Context, params service.OfferParams) (uuid.UUID, error)
	UpdateOffer(ctx context.Context, id uuid.UUID, params service.OfferParams) error
	DeleteOffer(ctx context.Context, id uuid.UUID) error
	ListOffers(ctx context.Context) ([]model.PriceOffer, error)
	TogglePauseOffer(ctx context.Context, id uuid.UUID, now time.Time) (model.OfferStatus, error)
	SubmitRegistration(ctx context.Context, reg model.ClientRegistration) (uuid.UUID, error)
	GetRegistrationByUser(ctx context.Context, userID uuid.UUID) (*model.ClientRegistration, error)
	ListRegistrations(ctx context.Context, status model.RegistrationStatus) ([]model.ClientRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error
	AddProgress(ctx context.Context, clientID uuid.UUID, weight float64, notes string) (uuid.UUID, error)
	ListProgress(ctx context.Context, clientID uuid.UUID) ([]model.ProgressEntry, error)
	GetProgressSummary(ctx context.Context, clientID uuid.UUID) (*service.ProgressSummary, error)
	ListPrograms(ctx context.Context, gender string, category model.ProgramCategory) ([]model.AthleteProgram, error)
	SubmitPurchase(ctx context.Context, userID, programID uuid.UUID, method model.PaymentMethod, proofName string, proof io.Reader) (uuid.UUID, error)
	ListPurchases(ctx context.Context) ([]model.ProgramPurchase, error)
	ListPurchasesByUser(ctx context.Context, userID uuid.UUID) ([]model.ProgramPurchase, error)
	ReviewPurchase(ctx context.Context, id uuid.UUID, status model.PurchaseStatus, notes string, reviewerID uuid.UUID) error
}

// Handler реализует HTTP-обработчики API сервиса fitpro.
type Handler struct {
	service        Service
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
	uploadDir      string
	uploadBaseURL  string
}

// NewHandler создаёт новый экземпляр обработчика HTTP-запросов.
// uploadDir и uploadBaseURL задают раздачу загруженных подтверждений оплаты.
func NewHandler(s Service, logger *zap.Logger, auth *middleware.AuthMiddleware, uploadDir, uploadBaseURL string) *Handler {
	return &Handler{
		service:        s,
		logger:         logger,
		authMiddleware: auth,
		uploadDir:      uploadDir,
		uploadBaseURL:  uploadBaseURL,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// egp переводит пиастры в EGP для JSON-ответов.
func egp(cents int64) float64 {
	return float64(cents) / 100
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type profileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Register обрабатывает регистрацию нового пользователя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	role := model.Role(req.Role)
	userID, err := h.service.RegisterUser(r.Context(), req.Email, req.Password, req.FullName, role)
	if err != nil {
		if errors.Is(err, repository.ErrProfileExists) {
			http.Error(w, http.StatusText(http.StatusConflict), http.StatusConflict)
			return
		}
		h.logger.Error("register user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if role != model.RoleTrainer {
		role = model.RoleClient
	}

	h.authMiddleware.SetAuthCookie(w, userID, role)
	w.WriteHeader(http.StatusOK)
}

// Login выполняет аутентификацию пользователя и установку cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	profile, err := h.service.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h.logger.Error("login user error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.authMiddleware.SetAuthCookie(w, profile.ID, profile.Role)
	h.writeJSON(w, profileResponse{
		ID:       profile.ID.String(),
		Email:    profile.Email,
		FullName: profile.FullName,
		Role:     string(profile.Role),
	})
}

type sportResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Icon string `json:"icon"`
}

// GetSports возвращает активные виды спорта.
func (h *Handler) GetSports(w http.ResponseWriter, r *http.Request) {
	sports, err := h.service.ListSports(r.Context())
	if err != nil {
		h.logger.Error("list sports error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]sportResponse, 0, len(sports))
	for _, s := range sports {
		resp = append(resp, sportResponse{
			ID:   s.ID.String(),
			Name: s.Name,
			Slug: s.Slug,
			Icon: s.Icon,
		})
	}

	h.writeJSON(w, resp)
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// GetCategories возвращает уровни подготовки в порядке отображения.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("list categories error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
		})
	}

	h.writeJSON(w, resp)
}

type planResponse struct {
	ID           string   `json:"id"`
	SportID      string   `json:"sport_id"`
	CategoryID   string   `json:"category_id"`
	SportName    string   `json:"sport_name"`
	CategoryName string   `json:"category_name"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	Features     []string `json:"features"`
}

func toPlanResponse(p model.PricingPlan) planResponse {
	return planResponse{
		ID:           p.ID.String(),
		SportID:      p.SportID.String(),
		CategoryID:   p.CategoryID.String(),
		SportName:    p.SportName,
		CategoryName: p.CategoryName,
		Price:        egp(p.PriceCents),
		Currency:     p.Currency,
		Features:     p.Features,
	}
}

// GetPlans возвращает активные тарифы.
func (h *Handler) GetPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.service.ListPlans(r.Context())
	if err != nil {
		h.logger.Error("list plans error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]planResponse, 0, len(plans))
	for _, p := range plans {
		resp = append(resp, toPlanResponse(p))
	}

	h.writeJSON(w, resp)
}

type quoteResponse struct {
	Plan               planResponse      `json:"plan"`
	Price              float64           `json:"price"`
	Discounted         bool              `json:"discounted"`
	DiscountPercentage int               `json:"discount_percentage"`
	Status             string            `json:"status"`
	Remaining          pricing.Countdown `json:"remaining"`
	Conflict           bool              `json:"conflict,omitempty"`
	Offer              *offerResponse    `json:"offer,omitempty"`
}

// GetQuote возвращает действующую цену тарифа для пары (спорт, уровень).
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	sportID, err := uuid.Parse(r.URL.Query().Get("sport_id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	categoryID, err := uuid.Parse(r.URL.Query().Get("category_id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	quote, err := h.service.GetQuote(r.Context(), sportID, categoryID, time.Now())
	if err != nil {
		if errors.Is(err, pricing.ErrPlanNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		h.logger.Error("get quote error", zap.Error(err),
			zap.String("sportID", sportID.String()), zap.String("categoryID", categoryID.String()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if quote.Conflict {
		h.logger.Warn("multiple active offers for plan", zap.String("planID", quote.Plan.ID.String()))
	}

	resp := quoteResponse{
		Plan:               toPlanResponse(quote.Plan),
		Price:              egp(quote.PriceCents),
		Discounted:         quote.Discounted,
		DiscountPercentage: quote.DiscountPercentage,
		Status:             string(quote.Status),
		Remaining:          quote.Remaining,
		Conflict:           quote.Conflict,
	}
	if quote.Offer != nil {
		o := toOfferResponse(*quote.Offer, quote.Status)
		resp.Offer = &o
	}

	h.writeJSON(w, resp)
}

type caloriesRequest struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	AgeYears      int     `json:"age_years"`
	Sex           string  `json:"sex"`
	ActivityLevel string  `json:"activity_level"`
}

type caloriesResponse struct {
	Maintenance int `json:"maintenance"`
	Cutting     int `json:"cutting"`
	Bulking     int `json:"bulking"`
}

// EstimateCalories вычисляет суточные нормы калорий по анкете.
func (h *Handler) EstimateCalories(w http.ResponseWriter, r *http.Request) {
	var req caloriesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	result, err := h.service.EstimateCalories(calories.Input{
		WeightKg: req.WeightKg,
		HeightCm: req.HeightCm,
		AgeYears: req.AgeYears,
		Sex:      calories.Sex(req.Sex),
		Activity: calories.ActivityLevel(req.ActivityLevel),
	})
	if err != nil {
		if errors.Is(err, calories.ErrInvalidInput) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("estimate calories error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, caloriesResponse{
		Maintenance: result.Maintenance,
		Cutting:     result.Cutting,
		Bulking:     result.Bulking,
	})
}

// GetMeals возвращает статический план питания для цели из URL.
func (h *Handler) GetMeals(w http.ResponseWriter, r *http.Request) {
	goal := meals.Goal(chi.URLParam(r, "goal"))

	plan, ok := meals.ForGoal(goal)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	h.writeJSON(w, plan)
}

type programResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Gender        string   `json:"gender"`
	Category      string   `json:"category"`
	DurationWeeks int      `json:"duration_weeks"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	OfferPrice    *float64 `json:"offer_price,omitempty"`
}

// GetPrograms возвращает готовые программы с фильтрами по полу и категории.
func (h *Handler) GetPrograms(w http.ResponseWriter, r *http.Request) {
	gender := r.URL.Query().Get("gender")
	category := model.ProgramCategory(r.URL.Query().Get("category"))

	programs, err := h.service.ListPrograms(r.Context(), gender, category)
	if err != nil {
		h.logger.Error("list programs error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	resp := make([]programResponse, 0, len(programs))
	for _, p := range programs {
		pr := programResponse{
			ID:            p.ID.String(),
			Name:          p.Name,
			Gender:        p.Gender,
			Category:      string(p.Category),
			DurationWeeks: p.DurationWeeks,
			Description:   p.Description,
			Price:         egp(p.PriceCents),
		}
		if p.OfferPriceCents != nil {
			v := egp(*p.OfferPriceCents)
			pr.OfferPrice = &v
		}
		resp = append(resp, pr)
	}

	h.writeJSON(w, resp)
}

type registrationRequest struct {
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
}

type idResponse struct {
	ID string `json:"id"`
}

// SubmitRegistration принимает анкету нового клиента. Авторизация не
// требуется, но при наличии валидного cookie заявка привязывается к
// пользователю.
func (h *Handler) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	reg := model.ClientRegistration{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Age:               req.Age,
		Weight:            req.Weight,
		Height:            req.Height,
		GoalWeight:        req.GoalWeight,
		FitnessGoal:       req.FitnessGoal,
		ActivityLevel:     req.ActivityLevel,
		DietaryPrefs:      req.DietaryPrefs,
		MedicalConditions: req.MedicalConditions,
	}

	if userID, _, ok := h.authMiddleware.UserFromRequest(r); ok {
		reg.UserID = &userID
	}

	id, err := h.service.SubmitRegistration(r.Context(), reg)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRegistration) {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		h.logger.Error("submit registration error", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(idResponse{ID: id.String()}); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}
