package domain

import "time"

// Favorite pairs the user with either a professional or a single
// professional service, never both. Presence of ProfessionalServiceID
// is the discriminator.
type Favorite struct {
	ID                    int64     `json:"id"`
	UserID                int64     `json:"user_id"`
	ProfessionalID        *int64    `json:"professional_id,omitempty"`
	ProfessionalServiceID *int64    `json:"professional_service_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Matches reports whether the favorite refers to the given target.
// A service-level favorite only matches the exact service; a
// professional-level favorite matches the professional when no
// service id is asked for.
func (f Favorite) Matches(professionalID int64, professionalServiceID *int64) bool {
	if professionalServiceID != nil {
		return f.ProfessionalServiceID != nil && *f.ProfessionalServiceID == *professionalServiceID
	}
	return f.ProfessionalServiceID == nil &&
		f.ProfessionalID != nil && *f.ProfessionalID == professionalID
}
