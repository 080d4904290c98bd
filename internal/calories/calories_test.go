package calories

import (
	"errors"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want Result
	}{
		{
			name: "male moderate",
			in: Input{
				WeightKg: 70,
				HeightCm: 175,
				AgeYears: 25,
				Sex:      SexMale,
				Activity: ActivityModerate,
			},
			// bmr = 10*70 + 6.25*175 - 5*25 + 5 = 1742.5
			want: Result{Maintenance: 2701, Cutting: 2201, Bulking: 3001},
		},
		{
			name: "female sedentary",
			in: Input{
				WeightKg: 60,
				HeightCm: 165,
				AgeYears: 30,
				Sex:      SexFemale,
				Activity: ActivitySedentary,
			},
			// bmr = 10*60 + 6.25*165 - 5*30 - 161 = 959.25
			want: Result{Maintenance: 1151, Cutting: 651, Bulking: 1451},
		},
		{
			name: "unknown activity falls back to moderate",
			in: Input{
				WeightKg: 70,
				HeightCm: 175,
				AgeYears: 25,
				Sex:      SexMale,
				Activity: ActivityLevel("crossfit"),
			},
			want: Result{Maintenance: 2701, Cutting: 2201, Bulking: 3001},
		},
		{
			name: "very active male",
			in: Input{
				WeightKg: 80,
				HeightCm: 180,
				AgeYears: 20,
				Sex:      SexMale,
				Activity: ActivityVeryActive,
			},
			// bmr = 800 + 1125 - 100 + 5 = 1830; 1830*1.9 = 3477
			want: Result{Maintenance: 3477, Cutting: 2977, Bulking: 3777},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Estimate(tt.in)
			if err != nil {
				t.Fatalf("Estimate error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Estimate = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEstimate_OffsetsExact(t *testing.T) {
	inputs := []Input{
		{WeightKg: 55.5, HeightCm: 160, AgeYears: 40, Sex: SexFemale, Activity: ActivityLight},
		{WeightKg: 95, HeightCm: 190, AgeYears: 35, Sex: SexMale, Activity: ActivityActive},
		{WeightKg: 70.2, HeightCm: 171.5, AgeYears: 28, Sex: SexMale, Activity: ActivityModerate},
	}

	for _, in := range inputs {
		res, err := Estimate(in)
		if err != nil {
			t.Fatalf("Estimate(%+v) error: %v", in, err)
		}
		if res.Cutting != res.Maintenance-500 {
			t.Fatalf("Cutting = %d, want maintenance-500 = %d", res.Cutting, res.Maintenance-500)
		}
		if res.Bulking != res.Maintenance+300 {
			t.Fatalf("Bulking = %d, want maintenance+300 = %d", res.Bulking, res.Maintenance+300)
		}
	}
}

func TestEstimate_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{
			name: "zero weight",
			in:   Input{WeightKg: 0, HeightCm: 175, AgeYears: 25, Sex: SexMale, Activity: ActivityModerate},
		},
		{
			name: "negative height",
			in:   Input{WeightKg: 70, HeightCm: -1, AgeYears: 25, Sex: SexMale, Activity: ActivityModerate},
		},
		{
			name: "zero age",
			in:   Input{WeightKg: 70, HeightCm: 175, AgeYears: 0, Sex: SexFemale, Activity: ActivityModerate},
		},
		{
			name: "unknown sex",
			in:   Input{WeightKg: 70, HeightCm: 175, AgeYears: 25, Sex: Sex("other"), Activity: ActivityModerate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Estimate(tt.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Estimate error = %v, want ErrInvalidInput", err)
			}
			if res != (Result{}) {
				t.Fatalf("expected zero result on error, got %+v", res)
			}
		})
	}
}
