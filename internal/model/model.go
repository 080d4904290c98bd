// Package model содержит доменные сущности сервиса fitpro.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Role определяет роль пользователя в системе.
type Role string

const (
	RoleClient  Role = "client"
	RoleTrainer Role = "trainer"
)

// Profile представляет зарегистрированного пользователя сервиса.
type Profile struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	Role         Role
	PasswordHash []byte
	CreatedAt    time.Time
}

// Sport описывает вид спорта, доступный для записи.
type Sport struct {
	ID       uuid.UUID
	Name     string
	Slug     string
	Icon     string
	IsActive bool
}

// AthleteCategory описывает уровень подготовки спортсмена.
type AthleteCategory struct {
	ID           uuid.UUID
	Name         string
	Slug         string
	Description  string
	DisplayOrder int
}

// PricingPlan описывает тариф для пары (вид спорта, уровень).
// Цена хранится в пиастрах (минорные единицы EGP).
type PricingPlan struct {
	ID           uuid.UUID
	SportID      uuid.UUID
	CategoryID   uuid.UUID
	PriceCents   int64
	Currency     string
	Features     []string
	SportName    string
	CategoryName string
	IsActive     bool
}

// OfferStatus описывает состояние жизненного цикла акции.
type OfferStatus string

const (
	OfferStatusScheduled OfferStatus = "scheduled"
	OfferStatusActive    OfferStatus = "active"
	OfferStatusExpired   OfferStatus = "expired"
	OfferStatusPaused    OfferStatus = "paused"
)

// PriceOffer описывает акционное снижение цены тарифа на ограниченный срок.
// Статус выводится из временных меток при чтении; в хранилище он не обновляется.
type PriceOffer struct {
	ID                 uuid.UUID
	PricingPlanID      uuid.UUID
	OriginalPriceCents int64
	OfferPriceCents    int64
	DiscountPercentage int
	StartDate          time.Time
	EndDate            time.Time
	PausedAt           *time.Time
	CreatedAt          time.Time
}

// RegistrationStatus описывает состояние заявки клиента.
type RegistrationStatus string

const (
	RegistrationStatusPending  RegistrationStatus = "pending"
	RegistrationStatusApproved RegistrationStatus = "approved"
	RegistrationStatusActive   RegistrationStatus = "active"
	RegistrationStatusInactive RegistrationStatus = "inactive"
)

// ClientRegistration описывает заявку клиента на тренировки.
type ClientRegistration struct {
	ID                uuid.UUID
	UserID            *uuid.UUID
	FullName          string
	Email             string
	Phone             string
	Age               int
	Weight            float64
	Height            float64
	GoalWeight        *float64
	FitnessGoal       string
	ActivityLevel     string
	DietaryPrefs      string
	MedicalConditions string
	Status            RegistrationStatus
	CreatedAt         time.Time
}

// ProgressEntry описывает одну запись о прогрессе клиента.
type ProgressEntry struct {
	ID         uuid.UUID
	ClientID   uuid.UUID
	Weight     float64
	Notes      string
	RecordedAt time.Time
}

// ProgramCategory описывает уровень готовой тренировочной программы.
type ProgramCategory string

const (
	ProgramCategoryNormal   ProgramCategory = "normal"
	ProgramCategoryAdvanced ProgramCategory = "advanced"
	ProgramCategoryPremium  ProgramCategory = "premium"
)

// AthleteProgram описывает готовую тренировочную программу для покупки.
// OfferPriceCents, если задана, имеет приоритет над базовой ценой.
type AthleteProgram struct {
	ID              uuid.UUID
	Name            string
	Gender          string
	Category        ProgramCategory
	DurationWeeks   int
	Description     string
	PriceCents      int64
	OfferPriceCents *int64
	FileURL         string
	IsActive        bool
}

// PaymentMethod описывает способ оплаты покупки программы.
type PaymentMethod string

const (
	PaymentMethodInstapay     PaymentMethod = "instapay"
	PaymentMethodVodafoneCash PaymentMethod = "vodafone_cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
)

// PurchaseStatus описывает состояние проверки оплаты.
type PurchaseStatus string

const (
	PurchaseStatusPending  PurchaseStatus = "pending"
	PurchaseStatusApproved PurchaseStatus = "approved"
	PurchaseStatusRejected PurchaseStatus = "rejected"
)

// ProgramPurchase описывает покупку программы с ручным подтверждением оплаты.
type ProgramPurchase struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ProgramID       uuid.UUID
	ProgramName     string
	AmountCents     int64
	PaymentMethod   PaymentMethod
	PaymentProofURL string
	Status          PurchaseStatus
	AdminNotes      string
	ReviewedBy      *uuid.UUID
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}
