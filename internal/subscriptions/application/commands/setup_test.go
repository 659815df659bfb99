package commands

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Flinnker/Gym/internal/shared/infrastructure/database"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/database/sqlite"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/lock"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/migrations"
	"github.com/Flinnker/Gym/internal/shared/infrastructure/outbox"
	"github.com/Flinnker/Gym/internal/subscriptions/infrastructure/persistence"
)

type fixture struct {
	subscriptions  *persistence.SubscriptionRepository
	administrators *persistence.AdministratorRepository
	outbox         *outbox.SQLRepository
	uow            *database.UnitOfWork
	locker         *lock.MemoryLocker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "gym.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, migrations.Run(ctx, conn))

	return &fixture{
		subscriptions:  persistence.NewSubscriptionRepository(conn),
		administrators: persistence.NewAdministratorRepository(conn),
		outbox:         outbox.NewSQLRepository(conn),
		uow:            database.NewUnitOfWork(conn),
		locker:         lock.NewMemoryLocker(lock.DefaultConfig()),
	}
}

// outboxKeys returns the routing keys waiting in the outbox, oldest first.
func (f *fixture) outboxKeys(t *testing.T) []string {
	t.Helper()
	msgs, err := f.outbox.GetUnpublished(context.Background(), 100)
	require.NoError(t, err)
	keys := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		keys = append(keys, msg.RoutingKey)
	}
	return keys
}
