package queries

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
	"github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// GetSubscriptionQuery asks for a subscription's usage against its quotas.
type GetSubscriptionQuery struct {
	SubscriptionID uuid.UUID
}

func (GetSubscriptionQuery) QueryName() string { return "get_subscription" }

// Usage is a count next to its quota. Max is -1 when the tier sets no limit.
type Usage struct {
	Used int
	Max  int
}

// SubscriptionDTO is a read model of a subscription.
type SubscriptionDTO struct {
	ID       uuid.UUID
	Type     string
	Price    int
	Active   bool
	GymIDs   []uuid.UUID
	Gyms     Usage
	Rooms    Usage
	Sessions Usage
}

// GetSubscriptionHandler handles the GetSubscriptionQuery.
type GetSubscriptionHandler struct {
	subscriptionRepo domain.SubscriptionRepository
}

// NewGetSubscriptionHandler creates a new GetSubscriptionHandler.
func NewGetSubscriptionHandler(subscriptionRepo domain.SubscriptionRepository) *GetSubscriptionHandler {
	return &GetSubscriptionHandler{subscriptionRepo: subscriptionRepo}
}

// Handle executes the GetSubscriptionQuery.
func (h *GetSubscriptionHandler) Handle(ctx context.Context, query GetSubscriptionQuery) (*SubscriptionDTO, error) {
	s, err := h.subscriptionRepo.FindByID(ctx, query.SubscriptionID)
	if err != nil {
		return nil, err
	}

	return &SubscriptionDTO{
		ID:       s.ID(),
		Type:     s.Type().Name(),
		Price:    s.Price(),
		Active:   s.Active(),
		GymIDs:   s.GymIDs(),
		Gyms:     usage(s.GymCount(), s.MaxGyms()),
		Rooms:    usage(s.GymRoomCount(), s.MaxRooms()),
		Sessions: usage(s.TrainingSessionCount(), s.MaxDailySessions()),
	}, nil
}

func usage(used, quota int) Usage {
	if quota == sharedDomain.Unlimited {
		quota = -1
	}
	return Usage{Used: used, Max: quota}
}
