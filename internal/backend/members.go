package backend

import (
	"context"
	"net/url"

	"github.com/ujjiboni/dashboard/internal/domain"
)

type usersResponse struct {
	Envelope
	Users []domain.User `json:"users"`
}

// ListMembers returns users with the MEMBER role.
func (c *Client) ListMembers(ctx context.Context) ([]domain.User, error) {
	query := url.Values{}
	query.Set("role", string(domain.RoleMember))

	var resp usersResponse
	if err := c.get(ctx, "/users", query, &resp); err != nil {
		return nil, err
	}
	if resp.Users == nil {
		return []domain.User{}, nil
	}
	return resp.Users, nil
}

func (c *Client) InviteMember(ctx context.Context, req domain.InviteMemberRequest) (string, error) {
	var resp Envelope
	if err := c.post(ctx, "/users", req, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
