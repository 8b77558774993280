package payment

import (
	"math"

	"errandly/config"
)

// DefaultCommissionPercent applies when the configuration does not set a
// platform commission.
const DefaultCommissionPercent = 15.0

func commissionPercent() float64 {
	if config.AppConfig.CommissionPercent > 0 {
		return config.AppConfig.CommissionPercent
	}
	return DefaultCommissionPercent
}

// CalculateFees splits a gross client price into the platform fee and
// the provider earning. Both are rounded to cents; the earning is the
// remainder after the rounded fee, so fee + earning always equals the
// price to the cent.
func CalculateFees(clientPrice float64) (platformFee, providerEarning float64) {
	platformFee = roundCents(clientPrice * commissionPercent() / 100)
	providerEarning = roundCents(clientPrice - platformFee)
	return platformFee, providerEarning
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
