package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Income frequencies.
const (
	FrequencyHourly  = "HOURLY"
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

// Income is one recurring income source. MonthlyAmount and DailyAmount are
// normalized from Amount+Frequency at write time so dashboard reads never
// repeat the conversion.
type Income struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name              string             `bson:"name" json:"name"`
	Amount            float64            `bson:"amount" json:"amount"`
	Frequency         string             `bson:"frequency" json:"frequency"`
	MonthlyAmount     float64            `bson:"monthly_amount" json:"monthly_amount"`
	DailyAmount       float64            `bson:"daily_amount" json:"daily_amount"`
	ReliabilityRating *int               `bson:"reliability_rating,omitempty" json:"reliability_rating,omitempty"`
	IsActive          bool               `bson:"is_active" json:"is_active"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// NormalizeToMonthly converts an amount at the given frequency to a monthly
// figure. Hourly income assumes a 40-hour week over four weeks.
func NormalizeToMonthly(amount float64, frequency string) (float64, error) {
	switch frequency {
	case FrequencyHourly:
		return amount * 160, nil
	case FrequencyDaily:
		return amount * 30, nil
	case FrequencyWeekly:
		return amount * 4.33, nil
	case FrequencyMonthly:
		return amount, nil
	case FrequencyYearly:
		return amount / 12, nil
	}
	return 0, fmt.Errorf("unknown frequency %q", frequency)
}

// NormalizeToDaily converts an amount at the given frequency to a daily
// figure. Hourly income assumes an 8-hour day.
func NormalizeToDaily(amount float64, frequency string) (float64, error) {
	switch frequency {
	case FrequencyHourly:
		return amount * 8, nil
	case FrequencyDaily:
		return amount, nil
	case FrequencyWeekly:
		return amount / 7, nil
	case FrequencyMonthly:
		return amount / 30, nil
	case FrequencyYearly:
		return amount / 365, nil
	}
	return 0, fmt.Errorf("unknown frequency %q", frequency)
}
