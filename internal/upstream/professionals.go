package upstream

import (
	"context"
	"fmt"
	"net/http"

	"doorsteps/internal/domain"
)

type RegisterProfessionalRequest struct {
	Profession string  `json:"profession"`
	Bio        string  `json:"bio,omitempty"`
	AreaIDs    []int64 `json:"area_ids,omitempty"`
}

func (c *Client) RegisterProfessional(ctx context.Context, req RegisterProfessionalRequest) (*domain.Professional, error) {
	var out domain.Professional
	if err := c.do(ctx, http.MethodPost, "/api/v1/professionals/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error) {
	var out domain.Professional
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/professionals/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Professionals(ctx context.Context) ([]domain.Professional, error) {
	var out []domain.Professional
	if err := c.do(ctx, http.MethodGet, "/api/v1/professionals", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProfessionalServices(ctx context.Context, professionalID int64) ([]domain.ProfessionalService, error) {
	var out []domain.ProfessionalService
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/v1/professionals/%d/services", professionalID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateServiceAreas(ctx context.Context, areaIDs []int64) (*domain.Professional, error) {
	var out domain.Professional
	if err := c.do(ctx, http.MethodPut, "/api/v1/professionals/me/service-areas", map[string]any{"area_ids": areaIDs}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
