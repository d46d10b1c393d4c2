package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically. Repository calls made
// with the ctx passed to fn join the transaction.
type TransactionManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
