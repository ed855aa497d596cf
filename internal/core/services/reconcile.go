package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
)

// identifiable is implemented by child rows reconciled against their stored set.
type identifiable interface {
	GetID() int64
}

// childStore writes one child collection of a parent record.
type childStore[T identifiable] struct {
	label  string
	insert func(ctx context.Context, item *T) error
	update func(ctx context.Context, item *T) error
	remove func(ctx context.Context, ids []int64) error
}

// reconcile makes the stored collection match desired: items with a known ID
// are updated, items without an ID are inserted and stored items missing from
// desired are deleted. IDs that do not belong to the parent are rejected
// before anything is written. Deletes run first so that freed unique keys can
// be reused by the new items.
func reconcile[T identifiable](ctx context.Context, existing, desired []T, store childStore[T]) error {
	known := make(map[int64]bool, len(existing))
	for _, item := range existing {
		known[item.GetID()] = true
	}
	kept := make(map[int64]bool, len(desired))
	for _, item := range desired {
		id := item.GetID()
		if id == 0 {
			continue
		}
		if !known[id] {
			return apperrors.NewValidationError(fmt.Sprintf("Unknown %s id %d", store.label, id))
		}
		if kept[id] {
			return apperrors.NewValidationError(fmt.Sprintf("Duplicate %s id %d", store.label, id))
		}
		kept[id] = true
	}

	var removed []int64
	for _, item := range existing {
		if !kept[item.GetID()] {
			removed = append(removed, item.GetID())
		}
	}
	if len(removed) > 0 {
		if err := store.remove(ctx, removed); err != nil {
			return err
		}
	}
	for i := range desired {
		var err error
		if desired[i].GetID() == 0 {
			err = store.insert(ctx, &desired[i])
		} else {
			err = store.update(ctx, &desired[i])
		}
		if err != nil {
			return err
		}
	}
	return nil
}
