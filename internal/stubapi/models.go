package stubapi

import (
	"encoding/json"
	"time"

	"doorsteps/internal/domain"
)

type userRow struct {
	ID              int64  `gorm:"primaryKey"`
	FullName        string
	PhoneNumber     string `gorm:"uniqueIndex"`
	Email           string
	Gender          string
	AgeGroup        string
	Mode            string
	ProfessionalID  *int64
	IsSetupComplete bool
	CreatedAt       time.Time
}

func (userRow) TableName() string { return "users" }

func (u userRow) toDomain() *domain.User {
	return &domain.User{
		ID:              u.ID,
		FullName:        u.FullName,
		PhoneNumber:     u.PhoneNumber,
		Email:           u.Email,
		Gender:          u.Gender,
		AgeGroup:        u.AgeGroup,
		Mode:            domain.UserMode(u.Mode),
		ProfessionalID:  u.ProfessionalID,
		IsSetupComplete: u.IsSetupComplete,
	}
}

// otpRow keeps only a bcrypt hash of the code, never the code itself.
type otpRow struct {
	ID          int64  `gorm:"primaryKey"`
	PhoneNumber string `gorm:"index"`
	CodeHash    string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

func (otpRow) TableName() string { return "otps" }

type orderRow struct {
	ID              int64 `gorm:"primaryKey"`
	Status          string
	PaymentStatus   string
	ScheduledDate   string
	ScheduledTime   string
	CustomerID      int64 `gorm:"index"`
	ProfessionalID  int64 `gorm:"index"`
	ServiceNameEN   string
	ServiceNameNP   string
	Address         string
	Price           float64
	DiscountedPrice float64
	Quantity        int
	TotalPrice      float64
	Notes           string
	CreatedAt       time.Time
}

func (orderRow) TableName() string { return "orders" }

func (o orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:              o.ID,
		Status:          domain.OrderStatus(o.Status),
		PaymentStatus:   domain.PaymentStatus(o.PaymentStatus),
		ScheduledDate:   o.ScheduledDate,
		ScheduledTime:   o.ScheduledTime,
		CustomerID:      o.CustomerID,
		ProfessionalID:  o.ProfessionalID,
		ServiceNameEN:   o.ServiceNameEN,
		ServiceNameNP:   o.ServiceNameNP,
		Address:         o.Address,
		Price:           o.Price,
		DiscountedPrice: o.DiscountedPrice,
		Quantity:        o.Quantity,
		TotalPrice:      o.TotalPrice,
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
	}
}

type notificationRow struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"index"`
	Type        string
	MessageEN   string
	MessageNP   string
	IsRead      bool
	ActionRoute string
	CustomData  string
	CreatedAt   time.Time
}

func (notificationRow) TableName() string { return "notifications" }

func (n notificationRow) toDomain() domain.Notification {
	var custom map[string]any
	if n.CustomData != "" {
		_ = json.Unmarshal([]byte(n.CustomData), &custom)
	}
	return domain.Notification{
		ID:          n.ID,
		Type:        n.Type,
		MessageEN:   n.MessageEN,
		MessageNP:   n.MessageNP,
		IsRead:      n.IsRead,
		ActionRoute: n.ActionRoute,
		CustomData:  custom,
		CreatedAt:   n.CreatedAt,
	}
}

type favoriteRow struct {
	ID                    int64 `gorm:"primaryKey"`
	UserID                int64 `gorm:"index"`
	ProfessionalID        *int64
	ProfessionalServiceID *int64
	CreatedAt             time.Time
}

func (favoriteRow) TableName() string { return "favorites" }

func (f favoriteRow) toDomain() domain.Favorite {
	return domain.Favorite{
		ID:                    f.ID,
		UserID:                f.UserID,
		ProfessionalID:        f.ProfessionalID,
		ProfessionalServiceID: f.ProfessionalServiceID,
		CreatedAt:             f.CreatedAt,
	}
}

type professionalRow struct {
	ID          int64 `gorm:"primaryKey"`
	UserID      int64 `gorm:"index"`
	FullNameEN  string
	FullNameNP  string
	Profession  string
	Bio         string
	Rating      float64
	ReviewCount int
	IsVerified  bool
	CreatedAt   time.Time
}

func (professionalRow) TableName() string { return "professionals" }

func (p professionalRow) toDomain(areas []domain.ServiceArea) domain.Professional {
	return domain.Professional{
		ID:          p.ID,
		UserID:      p.UserID,
		FullNameEN:  p.FullNameEN,
		FullNameNP:  p.FullNameNP,
		Profession:  p.Profession,
		Bio:         p.Bio,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		IsVerified:  p.IsVerified,
		Areas:       areas,
		CreatedAt:   p.CreatedAt,
	}
}

type serviceAreaRow struct {
	ID             int64 `gorm:"primaryKey"`
	ProfessionalID int64 `gorm:"index"`
	DistrictEN     string
	DistrictNP     string
	CityEN         string
	CityNP         string
}

func (serviceAreaRow) TableName() string { return "service_areas" }

func (a serviceAreaRow) toDomain() domain.ServiceArea {
	return domain.ServiceArea{
		ID:         a.ID,
		DistrictEN: a.DistrictEN,
		DistrictNP: a.DistrictNP,
		CityEN:     a.CityEN,
		CityNP:     a.CityNP,
	}
}

type serviceRow struct {
	ID              int64 `gorm:"primaryKey"`
	ProfessionalID  int64 `gorm:"index"`
	NameEN          string
	NameNP          string
	Price           float64
	DiscountedPrice float64
	Unit            string
}

func (serviceRow) TableName() string { return "professional_services" }

func (s serviceRow) toDomain() domain.ProfessionalService {
	return domain.ProfessionalService{
		ID:              s.ID,
		ProfessionalID:  s.ProfessionalID,
		NameEN:          s.NameEN,
		NameNP:          s.NameNP,
		Price:           s.Price,
		DiscountedPrice: s.DiscountedPrice,
		Unit:            s.Unit,
	}
}

type paymentRow struct {
	ID        int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"index"`
	OrderID   int64
	Amount    float64
	Method    string
	Status    string
	CreatedAt time.Time
}

func (paymentRow) TableName() string { return "payments" }

func (p paymentRow) toDomain() domain.Payment {
	return domain.Payment{
		ID:        p.ID,
		OrderID:   p.OrderID,
		Amount:    p.Amount,
		Method:    p.Method,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
}

type withdrawalRow struct {
	ID             int64 `gorm:"primaryKey"`
	ProfessionalID int64 `gorm:"index"`
	Amount         float64
	Status         string
	Remarks        string
	CreatedAt      time.Time
}

func (withdrawalRow) TableName() string { return "withdrawals" }

func (w withdrawalRow) toDomain() domain.Withdrawal {
	return domain.Withdrawal{
		ID:             w.ID,
		ProfessionalID: w.ProfessionalID,
		Amount:         w.Amount,
		Status:         domain.WithdrawalStatus(w.Status),
		Remarks:        w.Remarks,
		CreatedAt:      w.CreatedAt,
	}
}
