package upstream

import (
	"context"
	"fmt"
	"net/http"

	"doorsteps/internal/domain"
)

type addFavoriteRequest struct {
	ProfessionalID        *int64 `json:"professional_id,omitempty"`
	ProfessionalServiceID *int64 `json:"professional_service_id,omitempty"`
}

func (c *Client) Favorites(ctx context.Context) ([]domain.Favorite, error) {
	var out []domain.Favorite
	if err := c.do(ctx, http.MethodGet, "/api/v1/favorites", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddFavorite creates a professional- or service-level favorite
// depending on which id is set.
func (c *Client) AddFavorite(ctx context.Context, professionalID, professionalServiceID *int64) (*domain.Favorite, error) {
	var out domain.Favorite
	req := addFavoriteRequest{ProfessionalID: professionalID, ProfessionalServiceID: professionalServiceID}
	if err := c.do(ctx, http.MethodPost, "/api/v1/favorites", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", id), nil, nil)
}
