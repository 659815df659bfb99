package domain

import (
	"fmt"
	"strings"

	sharedDomain "github.com/Flinnker/Gym/internal/shared/domain"
)

// SubscriptionType is a pricing tier and the quotas it grants. The set of
// tiers is fixed; aggregates only ever read from it.
type SubscriptionType struct {
	name                 string
	maxGymCount          int
	maxGymRoomCount      int
	maxDailySessionCount int
	price                int
}

var (
	Free = SubscriptionType{name: "Free", maxGymCount: 1, maxGymRoomCount: 1, maxDailySessionCount: 4, price: 0}
	Base = SubscriptionType{name: "Base", maxGymCount: 1, maxGymRoomCount: 3, maxDailySessionCount: sharedDomain.Unlimited, price: 299}
	Pro  = SubscriptionType{name: "Pro", maxGymCount: 3, maxGymRoomCount: sharedDomain.Unlimited, maxDailySessionCount: sharedDomain.Unlimited, price: 599}
)

// SubscriptionTypes lists every tier, cheapest first.
func SubscriptionTypes() []SubscriptionType {
	return []SubscriptionType{Free, Base, Pro}
}

// SubscriptionTypeByName looks a tier up by name, ignoring case.
func SubscriptionTypeByName(name string) (SubscriptionType, error) {
	for _, t := range SubscriptionTypes() {
		if strings.EqualFold(t.name, name) {
			return t, nil
		}
	}
	return SubscriptionType{}, fmt.Errorf("%w: %q", ErrUnknownSubscriptionType, name)
}

func (t SubscriptionType) Name() string              { return t.name }
func (t SubscriptionType) MaxGymCount() int          { return t.maxGymCount }
func (t SubscriptionType) MaxGymRoomCount() int      { return t.maxGymRoomCount }
func (t SubscriptionType) MaxDailySessionCount() int { return t.maxDailySessionCount }
func (t SubscriptionType) Price() int                { return t.price }
func (t SubscriptionType) IsZero() bool              { return t.name == "" }
func (t SubscriptionType) String() string            { return t.name }

func (t SubscriptionType) MarshalText() ([]byte, error) {
	return []byte(t.name), nil
}

func (t *SubscriptionType) UnmarshalText(text []byte) error {
	parsed, err := SubscriptionTypeByName(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
