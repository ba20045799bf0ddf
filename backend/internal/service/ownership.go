package service

import (
	"fmt"

	"github.com/itchan-dev/blogapi/shared/domain"
	"github.com/itchan-dev/blogapi/shared/errors"
)

type Action string

const (
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// OwnershipGuard is the single authorization point for blog mutations.
// Callers resolve the blog first; a missing blog never reaches the guard.
type OwnershipGuard struct{}

// Authorize allows action only when principalId owns blog. The denial names
// the action and nothing about the real owner.
func (OwnershipGuard) Authorize(principalId domain.UserId, blog domain.Blog, action Action) error {
	if principalId != "" && blog.Owner == principalId {
		return nil
	}
	ownershipDenialsTotal.WithLabelValues(string(action)).Inc()
	return errors.Forbidden(fmt.Sprintf("Not authorized to %s this blog.", action))
}
