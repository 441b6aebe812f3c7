package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories
// obtained after Begin share its transaction. Status transitions recorded
// through TransitionRepository are announced to the EventPublisher only
// after a successful Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TransitionRepository() TransitionRepository
	ModificationRepository() ModificationRepository
	CancellationRepository() CancellationRepository
	ScheduledOrderRepository() ScheduledOrderRepository
}
