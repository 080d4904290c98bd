// Package service реализует бизнес-логику сервиса fitpro.
package service

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fitpro/fitpro-system/internal/calories"
	"github.com/fitpro/fitpro-system/internal/model"
	"github.com/fitpro/fitpro-system/internal/pricing"
	"github.com/fitpro/fitpro-system/internal/repository"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRegistration возвращается при некорректных полях заявки.
	ErrInvalidRegistration = errors.New("invalid registration")
	// ErrInvalidOffer возвращается при нарушении инвариантов акции.
	ErrInvalidOffer = errors.New("invalid offer")
	// ErrInvalidStatus возвращается при неизвестном значении статуса.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidPurchase возвращается при некорректных параметрах покупки.
	ErrInvalidPurchase = errors.New("invalid purchase")
)

// dummyHash используется при неизвестном email, чтобы время ответа
// не выдавало существование аккаунта.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	CreateProfile(ctx context.Context, email, fullName string, role model.Role, passwordHash []byte) (uuid.UUID, error)
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	ListSports(ctx context.Context) ([]model.Sport, error)
	ListCategories(ctx context.Context) ([]model.AthleteCategory, error)
	ListPricingPlans(ctx context.Context) ([]model.PricingPlan, error)
	ListOffers(ctx context.Context) ([]model.PriceOffer, error)
	ListOffersByPlans(ctx context.Context, planIDs []uuid.UUID) ([]model.PriceOffer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*model.PriceOffer, error)
	CreateOffer(ctx context.Context, o model.PriceOffer) (uuid.UUID, error)
	UpdateOffer(ctx context.Context, o model.PriceOffer) error
	DeleteOffer(ctx context.Context, id uuid.UUID) error
	SetOfferPaused(ctx context.Context, id uuid.UUID, pausedAt *time.Time) error
	CreateRegistration(ctx context.Context, reg model.ClientRegistration) (uuid.UUID, error)
	GetRegistrationByUser(ctx context.Context, userID uuid.UUID) (*model.ClientRegistration, error)
	ListRegistrations(ctx context.Context, status model.RegistrationStatus) ([]model.ClientRegistration, error)
	UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error
	AddProgress(ctx context.Context, clientID uuid.UUID, weight float64, notes string) (uuid.UUID, error)
	ListProgressByClient(ctx context.Context, clientID uuid.UUID) ([]model.ProgressEntry, error)
	ListPrograms(ctx context.Context, gender string, category model.ProgramCategory) ([]model.AthleteProgram, error)
	GetProgram(ctx context.Context, id uuid.UUID) (*model.AthleteProgram, error)
	CreatePurchase(ctx context.Context, p model.ProgramPurchase) (uuid.UUID, error)
	ListPurchases(ctx context.Context) ([]model.ProgramPurchase, error)
	ListPurchasesByUser(ctx context.Context, userID uuid.UUID) ([]model.ProgramPurchase, error)
	UpdatePurchaseReview(ctx context.Context, id uuid.UUID, status model.PurchaseStatus, notes string, reviewerID uuid.UUID) error
}

// ProofStorage описывает хранилище загруженных подтверждений оплаты.
type ProofStorage interface {
	Save(originalName string, r io.Reader) (string, error)
}

// Service содержит бизнес-логику сервиса fitpro.
type Service struct {
	repo   Repository
	proofs ProofStorage
}

// NewService создаёт новый сервис с указанным репозиторием и хранилищем файлов.
func NewService(repo Repository, proofs ProofStorage) *Service {
	return &Service{
		repo:   repo,
		proofs: proofs,
	}
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// RegisterUser регистрирует нового пользователя с хешированием пароля.
func (s *Service) RegisterUser(ctx context.Context, email, password, fullName string, role model.Role) (uuid.UUID, error) {
	if role != model.RoleClient && role != model.RoleTrainer {
		role = model.RoleClient
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := s.repo.CreateProfile(ctx, email, fullName, role, hash)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// AuthenticateUser проверяет email и пароль и возвращает профиль пользователя.
// Сравнение с bcrypt выполняется и для неизвестного email, чтобы время ответа
// не зависело от существования аккаунта.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (*model.Profile, error) {
	p, err := s.repo.GetProfileByEmail(ctx, email)

	hashToCheck := dummyHash
	if err == nil {
		hashToCheck = p.PasswordHash
	} else if !errors.Is(err, repository.ErrProfileNotFound) {
		return nil, err
	}

	compareErr := bcrypt.CompareHashAndPassword(hashToCheck, []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return p, nil
}

// EstimateCalories вычисляет суточные нормы калорий.
func (s *Service) EstimateCalories(in calories.Input) (calories.Result, error) {
	return calories.Estimate(in)
}

// ListSports возвращает активные виды спорта.
func (s *Service) ListSports(ctx context.Context) ([]model.Sport, error) {
	return s.repo.ListSports(ctx)
}

// ListCategories возвращает уровни подготовки.
func (s *Service) ListCategories(ctx context.Context) ([]model.AthleteCategory, error) {
	return s.repo.ListCategories(ctx)
}

// ListPlans возвращает активные тарифы.
func (s *Service) ListPlans(ctx context.Context) ([]model.PricingPlan, error) {
	return s.repo.ListPricingPlans(ctx)
}

// GetQuote вычисляет действующую цену тарифа для пары (спорт, уровень) на момент now.
func (s *Service) GetQuote(ctx context.Context, sportID, categoryID uuid.UUID, now time.Time) (*pricing.Quote, error) {
	plans, err := s.repo.ListPricingPlans(ctx)
	if err != nil {
		return nil, err
	}

	planIDs := make([]uuid.UUID, 0, len(plans))
	for _, p := range plans {
		planIDs = append(planIDs, p.ID)
	}

	offers, err := s.repo.ListOffersByPlans(ctx, planIDs)
	if err != nil {
		return nil, err
	}

	return pricing.Resolve(plans, offers, pricing.Selection{SportID: sportID, CategoryID: categoryID}, now)
}

// OfferParams содержит параметры создания или изменения акции. Цены в EGP.
type OfferParams struct {
	PricingPlanID uuid.UUID
	OriginalPrice float64
	OfferPrice    float64
	StartDate     time.Time
	EndDate       time.Time
}

func (p OfferParams) toModel() (model.PriceOffer, error) {
	originalCents := int64(p.OriginalPrice * 100)
	offerCents := int64(p.OfferPrice * 100)

	if originalCents <= 0 || offerCents <= 0 || offerCents >= originalCents {
		return model.PriceOffer{}, ErrInvalidOffer
	}
	if !p.EndDate.After(p.StartDate) {
		return model.PriceOffer{}, ErrInvalidOffer
	}

	return model.PriceOffer{
		PricingPlanID:      p.PricingPlanID,
		OriginalPriceCents: originalCents,
		OfferPriceCents:    offerCents,
		DiscountPercentage: pricing.DiscountPercentage(originalCents, offerCents),
		StartDate:          p.StartDate,
		EndDate:            p.EndDate,
	}, nil
}

// CreateOffer создаёт акцию после проверки инвариантов цен и дат.
func (s *Service) CreateOffer(ctx context.Context, params OfferParams) (uuid.UUID, error) {
	o, err := params.toModel()
	if err != nil {
		return uuid.Nil, err
	}
	return s.repo.CreateOffer(ctx, o)
}

// UpdateOffer обновляет акцию после проверки инвариантов цен и дат.
func (s *Service) UpdateOffer(ctx context.Context, id uuid.UUID, params OfferParams) error {
	o, err := params.toModel()
	if err != nil {
		return err
	}
	o.ID = id
	return s.repo.UpdateOffer(ctx, o)
}

// DeleteOffer удаляет акцию.
func (s *Service) DeleteOffer(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOffer(ctx, id)
}

// ListOffers возвращает все акции, новые первыми.
func (s *Service) ListOffers(ctx context.Context) ([]model.PriceOffer, error) {
	return s.repo.ListOffers(ctx)
}

// TogglePauseOffer приостанавливает акцию либо снимает приостановку
// и возвращает производный статус на момент now.
func (s *Service) TogglePauseOffer(ctx context.Context, id uuid.UUID, now time.Time) (model.OfferStatus, error) {
	o, err := s.repo.GetOffer(ctx, id)
	if err != nil {
		return "", err
	}

	var pausedAt *time.Time
	if o.PausedAt == nil {
		pausedAt = &now
	}

	if err := s.repo.SetOfferPaused(ctx, id, pausedAt); err != nil {
		return "", err
	}

	o.PausedAt = pausedAt
	return pricing.StatusAt(*o, now), nil
}

// SubmitRegistration принимает заявку клиента, проверяя анкетные данные.
func (s *Service) SubmitRegistration(ctx context.Context, reg model.ClientRegistration) (uuid.UUID, error) {
	if reg.FullName == "" || reg.Email == "" || reg.Phone == "" {
		return uuid.Nil, ErrInvalidRegistration
	}
	if reg.Age <= 0 || reg.Weight <= 0 || reg.Height <= 0 {
		return uuid.Nil, ErrInvalidRegistration
	}
	if reg.GoalWeight != nil && *reg.GoalWeight <= 0 {
		return uuid.Nil, ErrInvalidRegistration
	}

	reg.Status = model.RegistrationStatusPending
	return s.repo.CreateRegistration(ctx, reg)
}

// GetRegistrationByUser возвращает заявку пользователя.
func (s *Service) GetRegistrationByUser(ctx context.Context, userID uuid.UUID) (*model.ClientRegistration, error) {
	return s.repo.GetRegistrationByUser(ctx, userID)
}

var validRegistrationStatuses = map[model.RegistrationStatus]struct{}{
	model.RegistrationStatusPending:  {},
	model.RegistrationStatusApproved: {},
	model.RegistrationStatusActive:   {},
	model.RegistrationStatusInactive: {},
}

// ListRegistrations возвращает заявки клиентов с необязательным фильтром по статусу.
func (s *Service) ListRegistrations(ctx context.Context, status model.RegistrationStatus) ([]model.ClientRegistration, error) {
	if status != "" {
		if _, ok := validRegistrationStatuses[status]; !ok {
			return nil, ErrInvalidStatus
		}
	}
	return s.repo.ListRegistrations(ctx, status)
}

// UpdateRegistrationStatus изменяет статус заявки клиента.
func (s *Service) UpdateRegistrationStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus) error {
	if _, ok := validRegistrationStatuses[status]; !ok {
		return ErrInvalidStatus
	}
	return s.repo.UpdateRegistrationStatus(ctx, id, status)
}

// AddProgress сохраняет запись о прогрессе клиента.
func (s *Service) AddProgress(ctx context.Context, clientID uuid.UUID, weight float64, notes string) (uuid.UUID, error) {
	if weight <= 0 {
		return uuid.Nil, ErrInvalidRegistration
	}
	return s.repo.AddProgress(ctx, clientID, weight, notes)
}

// ListProgress возвращает записи прогресса клиента.
func (s *Service) ListProgress(ctx context.Context, clientID uuid.UUID) ([]model.ProgressEntry, error) {
	return s.repo.ListProgressByClient(ctx, clientID)
}

// ProgressSummary содержит сводку прогресса клиента относительно целевого веса.
type ProgressSummary struct {
	InitialWeight      float64  `json:"initial_weight"`
	LatestWeight       float64  `json:"latest_weight"`
	GoalWeight         *float64 `json:"goal_weight,omitempty"`
	WeightChange       float64  `json:"weight_change"`
	ProgressPercentage float64  `json:"progress_percentage"`
	Entries            int      `json:"entries"`
}

// GetProgressSummary вычисляет сводку прогресса клиента.
// Процент считается как доля пройденного пути от начального веса к целевому
// и ограничивается сверху 100.
func (s *Service) GetProgressSummary(ctx context.Context, clientID uuid.UUID) (*ProgressSummary, error) {
	reg, err := s.repo.GetRegistrationByUser(ctx, clientID)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListProgressByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		InitialWeight: reg.Weight,
		LatestWeight:  reg.Weight,
		GoalWeight:    reg.GoalWeight,
		Entries:       len(entries),
	}

	if len(entries) > 0 {
		summary.LatestWeight = entries[0].Weight
	}
	summary.WeightChange = summary.LatestWeight - summary.InitialWeight

	if reg.GoalWeight != nil && reg.Weight != *reg.GoalWeight {
		pct := abs(reg.Weight-summary.LatestWeight) / abs(reg.Weight-*reg.GoalWeight) * 100
		if pct > 100 {
			pct = 100
		}
		summary.ProgressPercentage = pct
	}

	return summary, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// ListPrograms возвращает программы с фильтрами по полу и категории.
func (s *Service) ListPrograms(ctx context.Context, gender string, category model.ProgramCategory) ([]model.AthleteProgram, error) {
	return s.repo.ListPrograms(ctx, gender, category)
}

var validPaymentMethods = map[model.PaymentMethod]struct{}{
	model.PaymentMethodInstapay:     {},
	model.PaymentMethodVodafoneCash: {},
	model.PaymentMethodBankTransfer: {},
}

// SubmitPurchase сохраняет подтверждение оплаты и создаёт покупку программы.
// Сумма берётся из акционной цены программы, если она задана.
func (s *Service) SubmitPurchase(ctx context.Context, userID, programID uuid.UUID, method model.PaymentMethod, proofName string, proof io.Reader) (uuid.UUID, error) {
	if _, ok := validPaymentMethods[method]; !ok {
		return uuid.Nil, ErrInvalidPurchase
	}

	program, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		return uuid.Nil, err
	}

	amount := program.PriceCents
	if program.OfferPriceCents != nil {
		amount = *program.OfferPriceCents
	}

	proofURL, err := s.proofs.Save(proofName, proof)
	if err != nil {
		return uuid.Nil, err
	}

	return s.repo.CreatePurchase(ctx, model.ProgramPurchase{
		UserID:          userID,
		ProgramID:       programID,
		AmountCents:     amount,
		PaymentMethod:   method,
		PaymentProofURL: proofURL,
		Status:          model.PurchaseStatusPending,
	})
}

// ListPurchases возвращает все покупки.
func (s *Service) ListPurchases(ctx context.Context) ([]model.ProgramPurchase, error) {
	return s.repo.ListPurchases(ctx)
}

// ListPurchasesByUser возвращает покупки пользователя.
func (s *Service) ListPurchasesByUser(ctx context.Context, userID uuid.UUID) ([]model.ProgramPurchase, error) {
	return s.repo.ListPurchasesByUser(ctx, userID)
}

// ReviewPurchase фиксирует решение тренера по покупке.
func (s *Service) ReviewPurchase(ctx context.Context, id uuid.UUID, status model.PurchaseStatus, notes string, reviewerID uuid.UUID) error {
	if status != model.PurchaseStatusApproved && status != model.PurchaseStatusRejected {
		return ErrInvalidStatus
	}
	return s.repo.UpdatePurchaseReview(ctx, id, status, notes, reviewerID)
}
