package service

import (
	"context"
	"testing"
	"time"

	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/domain"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/mocks"
	"github.com/ujjiboni/dashboard/internal/repository"
	"github.com/ujjiboni/dashboard/internal/session"
	"github.com/ujjiboni/dashboard/internal/validation"
	customError "github.com/ujjiboni/dashboard/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMemberService(t *testing.T) (*MemberService, *mocks.MockBackend, *session.Store) {
	t.Helper()
	store, err := session.NewStore(context.Background(), repository.NewMemoryStateRepository(), "test")
	require.NoError(t, err)

	api := mocks.NewMockBackend()
	svc := NewMemberService(api, store, cache.NewMemoryCache(time.Minute), guard.NewMemoryGuard(), validation.New())
	return svc, api, store
}

func TestListMembers_UpdatesSession(t *testing.T) {
	svc, api, store := newMemberService(t)

	api.On("ListMembers", mock.Anything).Return([]domain.User{
		{ID: "m1", FullName: "Rahim"},
		{ID: "m2", FullName: "Karim"},
	}, nil).Once()

	members, err := svc.ListMembers(context.Background())
	require.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Len(t, store.Snapshot().Members, 2)

	_, err = svc.ListMembers(context.Background())
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestInviteMember(t *testing.T) {
	svc, api, _ := newMemberService(t)
	ctx := context.Background()

	api.On("ListMembers", mock.Anything).Return([]domain.User{}, nil).Twice()
	api.On("InviteMember", mock.Anything, domain.InviteMemberRequest{
		FullName: "Nasrin Akter",
		Email:    "nasrin@example.com",
	}).Return("Invitation sent", nil)

	_, err := svc.ListMembers(ctx)
	require.NoError(t, err)

	msg, err := svc.InviteMember(ctx, domain.InviteMemberRequest{
		FullName: " Nasrin Akter ",
		Email:    "Nasrin@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Invitation sent", msg)

	_, err = svc.ListMembers(ctx)
	require.NoError(t, err)
	api.AssertNumberOfCalls(t, "ListMembers", 2)
}

func TestInviteMember_Validation(t *testing.T) {
	svc, api, _ := newMemberService(t)

	_, err := svc.InviteMember(context.Background(), domain.InviteMemberRequest{FullName: "N", Email: "nasrin@example"})
	assert.ErrorIs(t, err, customError.ErrValidation)
	api.AssertNotCalled(t, "InviteMember", mock.Anything, mock.Anything)
}
