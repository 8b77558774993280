package memory

import (
	"sort"
	"time"

	paymentRepo "errandly/database/repository/payment"
	"errandly/models"
)

// PaymentRepo is the in-memory PaymentRepository.
type PaymentRepo struct {
	s *Store
}

var _ paymentRepo.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(payment *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	payment.CreatedAt = now
	payment.UpdatedAt = now
	r.s.payments[payment.ID] = clonePayment(payment)
	return nil
}

func (r *PaymentRepo) GetByID(id string) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.payments[id]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	return clonePayment(p), nil
}

func (r *PaymentRepo) GetByMissionID(missionID string) (*models.Payment, error) {
	return r.find(func(p *models.Payment) bool { return p.MissionID == missionID })
}

func (r *PaymentRepo) GetByStripeID(stripePaymentID string) (*models.Payment, error) {
	return r.find(func(p *models.Payment) bool { return p.StripePaymentID == stripePaymentID })
}

func (r *PaymentRepo) find(match func(*models.Payment) bool) (*models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.payments {
		if match(p) {
			return clonePayment(p), nil
		}
	}
	return nil, paymentRepo.ErrNotFound
}

func (r *PaymentRepo) SetStatus(id string, status models.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.payments[id]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	return nil
}

func (r *PaymentRepo) ListForUser(userID string) ([]models.Payment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var payments []models.Payment
	for _, p := range r.s.payments {
		if p.UserID == userID {
			payments = append(payments, *clonePayment(p))
		}
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	return payments, nil
}
