package service

import (
	"time"

	"github.com/shopspring/decimal"

	model "tabletennis_backend/internals/features/finance/payments/model"
	"tabletennis_backend/internals/helpers/dbtime"
)

// GracePeriodDays is how long an unpaid payment stays pending after its date.
const GracePeriodDays = 30

// Amounts are compared in minor units (cents), never as raw floats.
func minorUnits(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// AmountsEqual reports whether a and b are the same amount to the cent.
func AmountsEqual(a, b float64) bool {
	return minorUnits(a).Equal(minorUnits(b))
}

// CoversTotal reports whether paid reaches total to the cent.
func CoversTotal(paid, total float64) bool {
	return minorUnits(paid).GreaterThanOrEqual(minorUnits(total))
}

// SumAmounts adds payment amounts exactly and rounds once at the end.
func SumAmounts(payments []model.PaymentModel) float64 {
	sum := decimal.Zero
	for _, p := range payments {
		sum = sum.Add(decimal.NewFromFloat(p.Amount))
	}
	f, _ := sum.Round(2).Float64()
	return f
}

// IsOverdue: today is strictly after paymentDate + grace period. Exactly on
// the last grace day is still pending.
func IsOverdue(paymentDate, today time.Time) bool {
	due := dbtime.DateOf(paymentDate).AddDate(0, 0, GracePeriodDays)
	return dbtime.DateOf(today).After(due)
}

// CurrentStatus is the read-time status: a stored "paid" wins, otherwise the
// payment date decides between overdue and pending. Nothing is persisted.
func CurrentStatus(stored model.PaymentStatus, paymentDate, today time.Time) model.PaymentStatus {
	if stored == model.PaymentStatusPaid {
		return model.PaymentStatusPaid
	}
	if IsOverdue(paymentDate, today) {
		return model.PaymentStatusOverdue
	}
	return model.PaymentStatusPending
}

// ReconciledStatus is the status written to an existing payment when the
// student's running paid amount is reconciled against the total.
func ReconciledStatus(running, total float64, paymentDate, today time.Time) model.PaymentStatus {
	if CoversTotal(running, total) {
		return model.PaymentStatusPaid
	}
	if IsOverdue(paymentDate, today) {
		return model.PaymentStatusOverdue
	}
	return model.PaymentStatusPending
}

// SyntheticStatus is the status of the first payment created by
// reconciliation: paid only when the amount matches the total exactly.
func SyntheticStatus(amount, total float64) model.PaymentStatus {
	if AmountsEqual(amount, total) {
		return model.PaymentStatusPaid
	}
	return model.PaymentStatusPending
}
