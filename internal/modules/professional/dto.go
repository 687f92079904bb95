package professional

import (
	"time"

	"doorsteps/internal/domain"
	"doorsteps/internal/pkg/l10n"
)

type ProfessionalResponse struct {
	ID          int64          `json:"id"`
	FullName    string         `json:"full_name"`
	Profession  string         `json:"profession"`
	Bio         string         `json:"bio,omitempty"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	IsVerified  bool           `json:"is_verified"`
	Areas       []AreaResponse `json:"service_areas,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type AreaResponse struct {
	ID       int64  `json:"id"`
	District string `json:"district"`
	City     string `json:"city"`
}

type ServiceResponse struct {
	ID              int64   `json:"id"`
	ProfessionalID  int64   `json:"professional_id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
	Unit            string  `json:"unit,omitempty"`
}

func toResponse(p domain.Professional, loc l10n.Locale) ProfessionalResponse {
	areas := make([]AreaResponse, 0, len(p.Areas))
	for _, a := range p.Areas {
		areas = append(areas, AreaResponse{
			ID:       a.ID,
			District: l10n.Pick(loc, a.DistrictEN, a.DistrictNP),
			City:     l10n.Pick(loc, a.CityEN, a.CityNP),
		})
	}
	return ProfessionalResponse{
		ID:          p.ID,
		FullName:    l10n.Pick(loc, p.FullNameEN, p.FullNameNP),
		Profession:  p.Profession,
		Bio:         p.Bio,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		IsVerified:  p.IsVerified,
		Areas:       areas,
		CreatedAt:   p.CreatedAt,
	}
}
