package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitpro/fitpro-system/internal/model"
	"github.com/fitpro/fitpro-system/internal/repository"
)

type stubRepo struct {
	createProfileID  uuid.UUID
	createProfileErr error

	profile    *model.Profile
	profileErr error

	plans    []model.PricingPlan
	plansErr error

	offers    []model.PriceOffer
	offersErr error

	offer    *model.PriceOffer
	offerErr error

	createOfferID  uuid.UUID
	createOfferErr error
	updateOfferErr error
	deleteOfferErr error

	pausedAt     *time.Time
	setPausedErr error
	pausedCalled bool

	createRegID  uuid.UUID
	createRegErr error
	createdReg   model.ClientRegistration

	registration    *model.ClientRegistration
	registrationErr error

	registrations    []model.ClientRegistration
	registrationsErr error
	updateRegErr     error

	addProgressID  uuid.UUID
	addProgressErr error

	progress    []model.ProgressEntry
	progressErr error

	programs    []model.AthleteProgram
	programsErr error

	program    *model.AthleteProgram
	programErr error

	createPurchaseID  uuid.UUID
	createPurchaseErr error
	createdPurchase   model.ProgramPurchase

	purchases    []model.ProgramPurchase
	purchasesErr error
	reviewErr    error
}

func (r *stubRepo) Close() error { return nil }

func (r *stubRepo) CreateProfile(ctx context.Context, email, fullName string, role model.Role, passwordHash []byte) (uuid.UUID, error) {
	return r.createProfileID, r.createProfileErr
}

func (r *stubRepo) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.profile, r.profileErr
}

func (r *stubRepo) ListSports(ctx context.Context) ([]model.Sport, error) { return nil, nil }

func (r *stubRepo) ListCategories(ctx context.Context) ([]model.AthleteCategory, error) {
	return nil, nil
}

func (r *stubRepo) ListPricingPlans(ctx context.Context) ([]model.PricingPlan, error) {
	return r.plans, r.plansErr
}

func (r *stubRepo) ListOffers(ctx context.Context) ([]model.PriceOffer, error) {
	return r.offers, r.offersErr
}

func (r *stubRepo) ListOffersByPlans(ctx context.Context, planIDs []uuid.UUID) ([]model.PriceOffer, error) {
	return r.offers, r.offersErr
}

func (r *stubRepo) GetOffer(ctx context.Context, id uuid.UUID) (*model.PriceOffer, error) {
	return r.offer, r.offerErr
}

func (r *stubRepo) CreateOffer(ctx context.Context, o model.PriceOffer) (uuid.UUID, error) {
	return r.createOfferID, r.createOfferErr
}

func (r *stubRepo) UpdateOffer(ctx context.Context, o model.PriceOffer) error {
	return r.updateOfferErr
}

func (r *stubRepo) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return r.deleteOfferErr
}

func (r *stubRepo) SetOfferPaused(ctx context.Context, id uuid.UUID, pausedAt *time.Time) error {
	r.pausedCalled = true
	r.pausedAt = pausedAt
	return r.setPausedErr
}

func (r *stubRepo) CreateRegistration(ctx context.Context, reg model.ClientRegistration) (uuid.UUID, error) {
	r.createdReg = reg
	return r.createRegID, r.createRegErr
}

func (r *stubRepo) GetRegistrationByUser(ctx context.Context, userID uuid.UUID) (*model.ClientRegistration, error) {
	return r.registration, r.registrationErr
}

func (r *stubRepo) ListRegistrations(ctx context.Context, status model.RegistrationStatus) ([]model.ClientRegistration, error) {
	return r.registrations, r.registrationsErr
}

func (r *stubRepo) UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error {
	return r.updateRegErr
}

func (r *stubRepo) AddProgress(ctx context.Context, clientID uuid.UUID, weight float64, notes string) (uuid.UUID, error) {
	return r.addProgressID, r.addProgressErr
}

func (r *stubRepo) ListProgressByClient(ctx context.Context, clientID uuid.UUID) ([]model.ProgressEntry, error) {
	return r.progress, r.progressErr
}

func (r *stubRepo) ListPrograms(ctx context.Context, gender string, category model.ProgramCategory) ([]model.AthleteProgram, error) {
	return r.programs, r.programsErr
}

func (r *stubRepo) GetProgram(ctx context.Context, id uuid.UUID) (*model.AthleteProgram, error) {
	return r.program, r.programErr
}

func (r *stubRepo) CreatePurchase(ctx context.Context, p model.ProgramPurchase) (uuid.UUID, error) {
	r.createdPurchase = p
	return r.createPurchaseID, r.createPurchaseErr
}

func (r *stubRepo) ListPurchases(ctx context.Context) ([]model.ProgramPurchase, error) {
	return r.purchases, r.purchasesErr
}

func (r *stubRepo) ListPurchasesByUser(ctx context.Context, userID uuid.UUID) ([]model.ProgramPurchase, error) {
	return r.purchases, r.purchasesErr
}

func (r *stubRepo) UpdatePurchaseReview(ctx context.Context, id uuid.UUID, status model.PurchaseStatus, notes string, reviewerID uuid.UUID) error {
	return r.reviewErr
}

type stubProofs struct {
	url string
	err error

	savedName string
}

func (s *stubProofs) Save(originalName string, r io.Reader) (string, error) {
	s.savedName = originalName
	return s.url, s.err
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := &stubRepo{
		createProfileErr: repository.ErrProfileExists,
	}
	svc := NewService(repo, &stubProofs{})

	_, err := svc.RegisterUser(context.Background(), "user@example.com", "pass", "User", model.RoleClient)
	if !errors.Is(err, repository.ErrProfileExists) {
		t.Fatalf("err = %v, want ErrProfileExists", err)
	}
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("generate hash: %v", err)
	}

	profile := &model.Profile{
		ID:           uuid.New(),
		Email:        "user@example.com",
		Role:         model.RoleClient,
		PasswordHash: hash,
	}

	tests := []struct {
		name     string
		repo     *stubRepo
		password string
		wantErr  error
	}{
		{
			name:     "valid credentials",
			repo:     &stubRepo{profile: profile},
			password: "secret",
		},
		{
			name:     "wrong password",
			repo:     &stubRepo{profile: profile},
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			repo:     &stubRepo{profileErr: repository.ErrProfileNotFound},
			password: "secret",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.repo, &stubProofs{})

			got, err := svc.AuthenticateUser(context.Background(), "user@example.com", tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != profile.ID {
				t.Fatalf("profile id = %s, want %s", got.ID, profile.ID)
			}
		})
	}
}

func TestCreateOffer_Validation(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		params OfferParams
	}{
		{
			name: "offer above original",
			params: OfferParams{
				PricingPlanID: uuid.New(),
				OriginalPrice: 1000,
				OfferPrice:    1500,
				StartDate:     now,
				EndDate:       now.Add(24 * time.Hour),
			},
		},
		{
			name: "zero prices",
			params: OfferParams{
				PricingPlanID: uuid.New(),
				StartDate:     now,
				EndDate:       now.Add(24 * time.Hour),
			},
		},
		{
			name: "end before start",
			params: OfferParams{
				PricingPlanID: uuid.New(),
				OriginalPrice: 1500,
				OfferPrice:    1000,
				StartDate:     now.Add(24 * time.Hour),
				EndDate:       now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubRepo{}, &stubProofs{})

			_, err := svc.CreateOffer(context.Background(), tt.params)
			if !errors.Is(err, ErrInvalidOffer) {
				t.Fatalf("err = %v, want ErrInvalidOffer", err)
			}
		})
	}
}

func TestTogglePauseOffer(t *testing.T) {
	now := time.Now()
	offer := &model.PriceOffer{
		ID:        uuid.New(),
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	repo := &stubRepo{offer: offer}
	svc := NewService(repo, &stubProofs{})

	status, err := svc.TogglePauseOffer(context.Background(), offer.ID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != model.OfferStatusPaused {
		t.Fatalf("status = %s, want paused", status)
	}
	if !repo.pausedCalled || repo.pausedAt == nil {
		t.Fatalf("SetOfferPaused was not called with a timestamp")
	}

	// Повторное переключение снимает приостановку.
	paused := now
	offer.PausedAt = &paused

	status, err = svc.TogglePauseOffer(context.Background(), offer.ID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != model.OfferStatusActive {
		t.Fatalf("status = %s, want active", status)
	}
	if repo.pausedAt != nil {
		t.Fatalf("pausedAt = %v, want nil", repo.pausedAt)
	}
}

func TestSubmitRegistration_Validation(t *testing.T) {
	negative := -5.0

	tests := []struct {
		name string
		reg  model.ClientRegistration
	}{
		{name: "empty name", reg: model.ClientRegistration{Email: "a@b.c", Phone: "1", Age: 30, Weight: 80, Height: 180}},
		{name: "zero age", reg: model.ClientRegistration{FullName: "A", Email: "a@b.c", Phone: "1", Weight: 80, Height: 180}},
		{name: "negative goal weight", reg: model.ClientRegistration{FullName: "A", Email: "a@b.c", Phone: "1", Age: 30, Weight: 80, Height: 180, GoalWeight: &negative}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&stubRepo{}, &stubProofs{})

			_, err := svc.SubmitRegistration(context.Background(), tt.reg)
			if !errors.Is(err, ErrInvalidRegistration) {
				t.Fatalf("err = %v, want ErrInvalidRegistration", err)
			}
		})
	}
}

func TestSubmitRegistration_ForcesPendingStatus(t *testing.T) {
	repo := &stubRepo{createRegID: uuid.New()}
	svc := NewService(repo, &stubProofs{})

	_, err := svc.SubmitRegistration(context.Background(), model.ClientRegistration{
		FullName: "Client",
		Email:    "client@example.com",
		Phone:    "+201000000000",
		Age:      30,
		Weight:   80,
		Height:   180,
		Status:   model.RegistrationStatusActive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.createdReg.Status != model.RegistrationStatusPending {
		t.Fatalf("status = %s, want pending", repo.createdReg.Status)
	}
}

func TestListRegistrations_UnknownStatus(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubProofs{})

	_, err := svc.ListRegistrations(context.Background(), model.RegistrationStatus("archived"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestGetProgressSummary(t *testing.T) {
	goal := 75.0
	reg := &model.ClientRegistration{
		Weight:     85,
		GoalWeight: &goal,
	}

	repo := &stubRepo{
		registration: reg,
		progress: []model.ProgressEntry{
			{Weight: 80, RecordedAt: time.Now()},
			{Weight: 83, RecordedAt: time.Now().Add(-24 * time.Hour)},
		},
	}
	svc := NewService(repo, &stubProofs{})

	summary, err := svc.GetProgressSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.InitialWeight != 85 {
		t.Fatalf("initial = %v, want 85", summary.InitialWeight)
	}
	if summary.LatestWeight != 80 {
		t.Fatalf("latest = %v, want 80", summary.LatestWeight)
	}
	if summary.WeightChange != -5 {
		t.Fatalf("change = %v, want -5", summary.WeightChange)
	}
	if summary.ProgressPercentage != 50 {
		t.Fatalf("progress = %v, want 50", summary.ProgressPercentage)
	}
	if summary.Entries != 2 {
		t.Fatalf("entries = %d, want 2", summary.Entries)
	}
}

func TestGetProgressSummary_NoEntries(t *testing.T) {
	repo := &stubRepo{
		registration: &model.ClientRegistration{Weight: 85},
	}
	svc := NewService(repo, &stubProofs{})

	summary, err := svc.GetProgressSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.LatestWeight != 85 || summary.WeightChange != 0 {
		t.Fatalf("summary = %+v, want latest 85 and zero change", summary)
	}
	if summary.ProgressPercentage != 0 {
		t.Fatalf("progress = %v, want 0 without goal", summary.ProgressPercentage)
	}
}

func TestSubmitPurchase(t *testing.T) {
	offerPrice := int64(65000)
	program := &model.AthleteProgram{
		ID:              uuid.New(),
		PriceCents:      80000,
		OfferPriceCents: &offerPrice,
	}

	repo := &stubRepo{
		program:          program,
		createPurchaseID: uuid.New(),
	}
	proofs := &stubProofs{url: "/uploads/abc.png"}
	svc := NewService(repo, proofs)

	id, err := svc.SubmitPurchase(context.Background(), uuid.New(), program.ID,
		model.PaymentMethodInstapay, "receipt.png", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != repo.createPurchaseID {
		t.Fatalf("id = %s, want %s", id, repo.createPurchaseID)
	}

	if proofs.savedName != "receipt.png" {
		t.Fatalf("saved name = %q, want receipt.png", proofs.savedName)
	}
	if repo.createdPurchase.AmountCents != offerPrice {
		t.Fatalf("amount = %d, want offer price %d", repo.createdPurchase.AmountCents, offerPrice)
	}
	if repo.createdPurchase.PaymentProofURL != "/uploads/abc.png" {
		t.Fatalf("proof url = %q", repo.createdPurchase.PaymentProofURL)
	}
	if repo.createdPurchase.Status != model.PurchaseStatusPending {
		t.Fatalf("status = %s, want pending", repo.createdPurchase.Status)
	}
}

func TestSubmitPurchase_UnknownMethod(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubProofs{})

	_, err := svc.SubmitPurchase(context.Background(), uuid.New(), uuid.New(),
		model.PaymentMethod("cash"), "receipt.png", strings.NewReader("img"))
	if !errors.Is(err, ErrInvalidPurchase) {
		t.Fatalf("err = %v, want ErrInvalidPurchase", err)
	}
}

func TestReviewPurchase_InvalidStatus(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubProofs{})

	err := svc.ReviewPurchase(context.Background(), uuid.New(), model.PurchaseStatusPending, "", uuid.New())
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("err = %v, want ErrInvalidStatus", err)
	}
}

func TestGetQuote_ActiveOffer(t *testing.T) {
	now := time.Now()
	sportID := uuid.New()
	categoryID := uuid.New()
	planID := uuid.New()

	repo := &stubRepo{
		plans: []model.PricingPlan{
			{ID: planID, SportID: sportID, CategoryID: categoryID, PriceCents: 150000},
		},
		offers: []model.PriceOffer{
			{
				ID:                 uuid.New(),
				PricingPlanID:      planID,
				OriginalPriceCents: 150000,
				OfferPriceCents:    100000,
				DiscountPercentage: 33,
				StartDate:          now.Add(-time.Hour),
				EndDate:            now.Add(time.Hour),
			},
		},
	}
	svc := NewService(repo, &stubProofs{})

	quote, err := svc.GetQuote(context.Background(), sportID, categoryID, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !quote.Discounted || quote.PriceCents != 100000 {
		t.Fatalf("quote = %+v, want discounted price 100000", quote)
	}
	if quote.Status != model.OfferStatusActive {
		t.Fatalf("status = %s, want active", quote.Status)
	}
}
