package domain

import "time"

type Professional struct {
	ID          int64         `json:"id"`
	UserID      int64         `json:"user_id"`
	FullNameEN  string        `json:"full_name_en"`
	FullNameNP  string        `json:"full_name_np"`
	Profession  string        `json:"profession"`
	Bio         string        `json:"bio,omitempty"`
	Rating      float64       `json:"rating"`
	ReviewCount int           `json:"review_count"`
	IsVerified  bool          `json:"is_verified"`
	Areas       []ServiceArea `json:"service_areas,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// ServiceArea is a district/municipality a professional serves.
type ServiceArea struct {
	ID         int64  `json:"id"`
	DistrictEN string `json:"district_en"`
	DistrictNP string `json:"district_np"`
	CityEN     string `json:"city_en"`
	CityNP     string `json:"city_np"`
}

// ProfessionalService is a single offered service with its price card.
type ProfessionalService struct {
	ID              int64   `json:"id"`
	ProfessionalID  int64   `json:"professional_id"`
	NameEN          string  `json:"name_en"`
	NameNP          string  `json:"name_np"`
	Price           float64 `json:"price"`
	DiscountedPrice float64 `json:"discounted_price"`
	Unit            string  `json:"unit,omitempty"`
}
