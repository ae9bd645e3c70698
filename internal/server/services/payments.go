package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/tiredaf123/fitflow--G3-sub000/internal/common"
	"github.com/tiredaf123/fitflow--G3-sub000/internal/server/config"
)

var (
	ErrUnknownPlan  = errors.New("unknown plan")
	ErrCardDeclined = errors.New("card declined")
)

// Settlement states reported by Confirm.
const (
	StateProcessing = "processing"
	StateSucceeded  = "succeeded"
	StateFailed     = "failed"
)

type Subscription struct {
	ID           string
	Owner        string
	PlanID       string
	ClientSecret string
	State        string

	// pendingRounds is how many more Confirm calls answer processing.
	pendingRounds int
}

// PaymentService simulates a payment provider: every subscription stays
// "processing" for a configured number of confirmation calls, then settles.
type PaymentService struct {
	plans            map[string]bool
	declinedPlan     string
	processingRounds int

	mu   sync.Mutex
	subs map[string]*Subscription
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	plans := make(map[string]bool, len(cfg.Plans))
	for _, p := range cfg.Plans {
		plans[p] = true
	}
	return &PaymentService{
		plans:            plans,
		declinedPlan:     cfg.DeclinedPlan,
		processingRounds: cfg.ProcessingRounds,
		subs:             map[string]*Subscription{},
	}
}

// CreateIntent registers a subscription for owner on planID.
func (s *PaymentService) CreateIntent(ctx context.Context, owner, planID string) (*Subscription, error) {
	if !s.plans[planID] && planID != s.declinedPlan {
		return nil, ErrUnknownPlan
	}

	id := "sub_" + uuid.NewString()
	secret, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, common.ErrorInternal
	}

	sub := &Subscription{
		ID:            id,
		Owner:         owner,
		PlanID:        planID,
		ClientSecret:  id + "_secret_" + secret,
		State:         StateProcessing,
		pendingRounds: s.processingRounds,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = sub
	cp := *sub
	return &cp, nil
}

// Confirm advances the settlement of a subscription by one poll.
// A subscription on the declined plan fails with ErrCardDeclined.
func (s *PaymentService) Confirm(ctx context.Context, owner, id string) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[id]
	if !ok || sub.Owner != owner {
		return nil, common.ErrorNotFound
	}

	switch {
	case sub.PlanID == s.declinedPlan:
		sub.State = StateFailed
		return nil, ErrCardDeclined
	case sub.State == StateSucceeded:
	case sub.pendingRounds > 0:
		sub.pendingRounds--
	default:
		sub.State = StateSucceeded
	}

	cp := *sub
	return &cp, nil
}

// SetProcessingRounds overrides the rounds of one of owner's subscriptions.
func (s *PaymentService) SetProcessingRounds(owner, id string, n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.subs[id]
	if !ok || sub.Owner != owner {
		return common.ErrorNotFound
	}
	sub.pendingRounds = n
	return nil
}
