// Package calories вычисляет суточные нормы калорий по формуле Миффлина-Сан Жеора.
package calories

import (
	"errors"
	"math"
)

// ErrInvalidInput возвращается при неположительных значениях веса, роста или возраста.
var ErrInvalidInput = errors.New("invalid estimator input")

// Sex описывает биологический пол для расчёта BMR.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel описывает уровень физической активности.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// defaultMultiplier применяется для неизвестного уровня активности.
const defaultMultiplier = 1.55

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// Input содержит параметры для расчёта калорийности.
type Input struct {
	WeightKg float64
	HeightCm float64
	AgeYears int
	Sex      Sex
	Activity ActivityLevel
}

// Result содержит три целевых значения калорий в день.
type Result struct {
	Maintenance int `json:"maintenance"`
	Cutting     int `json:"cutting"`
	Bulking     int `json:"bulking"`
}

// Estimate вычисляет нормы калорий для поддержания, снижения и набора веса.
// Неизвестный уровень активности трактуется как умеренный.
func Estimate(in Input) (Result, error) {
	if in.WeightKg <= 0 || in.HeightCm <= 0 || in.AgeYears <= 0 {
		return Result{}, ErrInvalidInput
	}
	if in.Sex != SexMale && in.Sex != SexFemale {
		return Result{}, ErrInvalidInput
	}

	bmr := 10*in.WeightKg + 6.25*in.HeightCm - 5*float64(in.AgeYears)
	if in.Sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}

	mult, ok := activityMultipliers[in.Activity]
	if !ok {
		mult = defaultMultiplier
	}

	maintenance := int(math.Round(bmr * mult))

	return Result{
		Maintenance: maintenance,
		Cutting:     maintenance - 500,
		Bulking:     maintenance + 300,
	}, nil
}
