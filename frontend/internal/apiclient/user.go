package apiclient

import (
	"context"
	"net/http"

	"github.com/studentcollab/collabhub/shared/api"
	"github.com/studentcollab/collabhub/shared/domain"
)

func (c *APIClient) GetUser(ctx context.Context, username string) (domain.Profile, error) {
	var resp api.UserResponse
	if err := c.call(ctx, http.MethodGet, "/users/"+pathEscape(username), nil, &resp, "get user"); err != nil {
		return domain.Profile{}, err
	}
	return resp.ToDomain(), nil
}

func (c *APIClient) UpdateUser(ctx context.Context, username string, req api.UpdateProfileRequest) (domain.Profile, error) {
	if req.Skills == nil {
		req.Skills = []string{}
	}
	var resp api.UserResponse
	if err := c.call(ctx, http.MethodPut, "/users/"+pathEscape(username), req, &resp, "update user"); err != nil {
		return domain.Profile{}, err
	}
	return resp.ToDomain(), nil
}
