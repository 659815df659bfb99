package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/Flinnker/Gym/internal/facilities/domain"
	sharedApplication "github.com/Flinnker/Gym/internal/shared/application"
	subscriptionDomain "github.com/Flinnker/Gym/internal/subscriptions/domain"
)

// lockGymAndSubscription locks a gym together with the subscription it
// belongs to and any extra keys, all in one sorted pass. A gym never changes subscription, so reading the id before
// taking the locks is safe.
func lockGymAndSubscription(
	ctx context.Context,
	locker sharedApplication.Locker,
	gymRepo domain.GymRepository,
	gymID uuid.UUID,
	extraKeys []string,
	fn func(ctx context.Context) error,
) error {
	gym, err := gymRepo.FindByID(ctx, gymID)
	if err != nil {
		return err
	}

	keys := append([]string{
		sharedApplication.LockKey(domain.GymAggregateType, gym.ID()),
		sharedApplication.LockKey(subscriptionDomain.SubscriptionAggregateType, gym.SubscriptionID()),
	}, extraKeys...)
	return sharedApplication.WithLocks(ctx, locker, keys, fn)
}
