package domain

// UserMode is the dashboard view a user is currently operating in.
// Switching mode does not change the account, only which dashboards
// and notifications are surfaced.
type UserMode string

const (
	ModeCustomer     UserMode = "customer"
	ModeProfessional UserMode = "professional"
)

func (m UserMode) Valid() bool {
	return m == ModeCustomer || m == ModeProfessional
}

type User struct {
	ID              int64    `json:"id"`
	FullName        string   `json:"full_name"`
	PhoneNumber     string   `json:"phone_number"`
	Email           string   `json:"email"`
	ProfileImage    string   `json:"profile_image,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	AgeGroup        string   `json:"age_group,omitempty"`
	Mode            UserMode `json:"mode"`
	ProfessionalID  *int64   `json:"professional_id,omitempty"`
	IsSetupComplete bool     `json:"is_setup_complete"`
}
