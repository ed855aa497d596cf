package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside a database transaction.
// The transaction travels in the context handed to fn; repository calls made
// with that context join it. Nested calls reuse the outer transaction.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
