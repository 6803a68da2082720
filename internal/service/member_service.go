package service

import (
	"context"
	"strings"

	"github.com/ujjiboni/dashboard/internal/backend"
	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/internal/validation"
)

type MemberService struct {
	api       backend.API
	store     *session.Store
	cache     cache.QueryCache
	guard     guard.Guard
	validator *validation.Validator
}

func NewMemberService(
	api backend.API,
	store *session.Store,
	queryCache cache.QueryCache,
	submissions guard.Guard,
	validator *validation.Validator,
) *MemberService {
	return &MemberService{
		api:       api,
		store:     store,
		cache:     queryCache,
		guard:     submissions,
		validator: validator,
	}
}

// ListMembers returns the cooperative's members and keeps the session's
// member list in step with it.
func (s *MemberService) ListMembers(ctx context.Context) ([]domain.User, error) {
	members, err := cache.Fetch(ctx, s.cache, cache.NewKey(cache.Members), s.api.ListMembers)
	if err != nil {
		return nil, err
	}
	if err := s.store.SetMembers(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MemberService) InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}

	release, err := s.guard.Acquire(ctx, guard.Key("invite-member", req.Email))
	if err != nil {
		return "", err
	}
	defer release()

	message, err := s.api.InviteMember(ctx, req)
	if err != nil {
		return "", err
	}
	invalidateAfterWrite(ctx, s.cache, cache.Members)
	return message, nil
}
