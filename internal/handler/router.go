package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/fitpro/fitpro-system/internal/middleware"
	"github.com/fitpro/fitpro-system/internal/model"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса fitpro.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/register", h.Register)
		r.Post("/user/login", h.Login)

		r.Get("/sports", h.GetSports)
		r.Get("/categories", h.GetCategories)
		r.Get("/plans", h.GetPlans)
		r.Get("/quote", h.GetQuote)
		r.Post("/calories", h.EstimateCalories)
		r.Get("/meals/{goal}", h.GetMeals)
		r.Get("/programs", h.GetPrograms)
		r.Post("/registrations", h.SubmitRegistration)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Get("/user/registration", h.GetMyRegistration)
			r.Get("/user/progress", h.GetProgress)
			r.Post("/user/progress", h.AddProgress)
			r.Get("/user/progress/summary", h.GetProgressSummary)
			r.Post("/user/purchases", h.SubmitPurchase)
			r.Get("/user/purchases", h.GetMyPurchases)
		})

		r.Route("/trainer", func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)
			r.Use(h.authMiddleware.RequireRole(model.RoleTrainer))

			r.Get("/registrations", h.GetRegistrations)
			r.Patch("/registrations/{id}/status", h.UpdateRegistrationStatus)

			r.Get("/offers", h.GetOffers)
			r.Post("/offers", h.CreateOffer)
			r.Put("/offers/{id}", h.UpdateOffer)
			r.Delete("/offers/{id}", h.DeleteOffer)
			r.Post("/offers/{id}/pause", h.TogglePauseOffer)

			r.Get("/purchases", h.GetPurchases)
			r.Patch("/purchases/{id}", h.ReviewPurchase)
		})
	})

	if h.uploadDir != "" && h.uploadBaseURL != "" {
		fs := http.StripPrefix(h.uploadBaseURL+"/", http.FileServer(http.Dir(h.uploadDir)))
		r.Get(h.uploadBaseURL+"/*", fs.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
