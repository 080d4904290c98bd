// Package pricing вычисляет действующую цену тарифа с учётом акционных предложений.
//
// Статус акции — чистая функция от временных меток и момента чтения.
// Сохранённый статус не используется и фоновым процессом не обновляется:
// корректность нужна только в момент чтения.
package pricing

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fitpro/fitpro-system/internal/model"
)

// ErrPlanNotFound возвращается, если для выбранной пары (спорт, уровень) нет тарифа.
var ErrPlanNotFound = errors.New("pricing plan not found")

// Selection задаёт выбор пользователя: вид спорта и уровень подготовки.
type Selection struct {
	SportID    uuid.UUID
	CategoryID uuid.UUID
}

// Quote содержит действующую цену тарифа и состояние связанной акции.
type Quote struct {
	Plan               model.PricingPlan
	PriceCents         int64
	Discounted         bool
	DiscountPercentage int
	Offer              *model.PriceOffer
	Status             model.OfferStatus
	Remaining          Countdown
	// Conflict выставляется, если активных акций на тариф оказалось несколько.
	// Победитель выбран детерминированно, но данные требуют внимания.
	Conflict bool
}

// StatusAt выводит статус акции на момент now.
// Приостановка приоритетнее временного окна.
func StatusAt(offer model.PriceOffer, now time.Time) model.OfferStatus {
	if offer.PausedAt != nil {
		return model.OfferStatusPaused
	}
	if now.Before(offer.StartDate) {
		return model.OfferStatusScheduled
	}
	if now.After(offer.EndDate) {
		return model.OfferStatusExpired
	}
	return model.OfferStatusActive
}

// DiscountPercentage вычисляет процент скидки, округлённый до целого.
func DiscountPercentage(originalCents, offerCents int64) int {
	if originalCents <= 0 {
		return 0
	}
	return int((float64(originalCents-offerCents)/float64(originalCents))*100 + 0.5)
}

// Resolve определяет тариф для выбранной пары (спорт, уровень) и его действующую цену.
//
// Скидка применяется только при наличии активной акции. Если активных акций
// несколько, побеждает созданная последней; этот случай помечается в Quote.Conflict.
// Без активной акции возвращается базовая цена и статус последней созданной акции.
func Resolve(plans []model.PricingPlan, offers []model.PriceOffer, sel Selection, now time.Time) (*Quote, error) {
	var plan *model.PricingPlan
	for i := range plans {
		if plans[i].SportID == sel.SportID && plans[i].CategoryID == sel.CategoryID {
			plan = &plans[i]
			break
		}
	}
	if plan == nil {
		return nil, ErrPlanNotFound
	}

	q := &Quote{
		Plan:       *plan,
		PriceCents: plan.PriceCents,
	}

	var (
		active      *model.PriceOffer
		activeCount int
		latest      *model.PriceOffer
	)

	for i := range offers {
		o := &offers[i]
		if o.PricingPlanID != plan.ID {
			continue
		}

		if latest == nil || newerThan(o, latest) {
			latest = o
		}

		if StatusAt(*o, now) != model.OfferStatusActive {
			continue
		}
		activeCount++
		if active == nil || newerThan(o, active) {
			active = o
		}
	}

	if active != nil {
		q.Offer = active
		q.PriceCents = active.OfferPriceCents
		q.Discounted = true
		q.DiscountPercentage = DiscountPercentage(active.OriginalPriceCents, active.OfferPriceCents)
		q.Status = model.OfferStatusActive
		q.Remaining = RemainingAt(active.EndDate, now)
		q.Conflict = activeCount > 1
		return q, nil
	}

	if latest != nil {
		q.Status = StatusAt(*latest, now)
	}

	return q, nil
}

// newerThan сравнивает акции по времени создания, при равенстве — по идентификатору.
func newerThan(a, b *model.PriceOffer) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID.String() > b.ID.String()
}
