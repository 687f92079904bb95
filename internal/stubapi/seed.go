package stubapi

import (
	"time"

	"doorsteps/internal/domain"
)

// Seed loads a small demo dataset so the gateway has something to
// browse against a fresh database. Idempotent: a non-empty
// professionals table skips seeding.
func (s *Server) Seed() error {
	var count int64
	if err := s.db.Model(&professionalRow{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	pros := []professionalRow{
		{FullNameEN: "Ram Bahadur Thapa", FullNameNP: "राम बहादुर थापा", Profession: "plumber", Rating: 4.7, ReviewCount: 52, IsVerified: true, CreatedAt: time.Now()},
		{FullNameEN: "Sita Sharma", FullNameNP: "सीता शर्मा", Profession: "electrician", Rating: 4.9, ReviewCount: 88, IsVerified: true, CreatedAt: time.Now()},
		{FullNameEN: "Hari Prasad Koirala", FullNameNP: "हरि प्रसाद कोइराला", Profession: "cleaner", Rating: 4.2, ReviewCount: 17, CreatedAt: time.Now()},
	}
	if err := s.db.Create(&pros).Error; err != nil {
		return err
	}

	areas := []serviceAreaRow{
		{ProfessionalID: pros[0].ID, DistrictEN: "Kathmandu", DistrictNP: "काठमाडौं", CityEN: "Baneshwor", CityNP: "बानेश्वर"},
		{ProfessionalID: pros[0].ID, DistrictEN: "Lalitpur", DistrictNP: "ललितपुर", CityEN: "Patan", CityNP: "पाटन"},
		{ProfessionalID: pros[1].ID, DistrictEN: "Kathmandu", DistrictNP: "काठमाडौं", CityEN: "Kalanki", CityNP: "कलंकी"},
	}
	if err := s.db.Create(&areas).Error; err != nil {
		return err
	}

	services := []serviceRow{
		{ProfessionalID: pros[0].ID, NameEN: "Tap repair", NameNP: "धारा मर्मत", Price: 800, DiscountedPrice: 650, Unit: "visit"},
		{ProfessionalID: pros[0].ID, NameEN: "Pipe installation", NameNP: "पाइप जडान", Price: 2500, DiscountedPrice: 2200, Unit: "job"},
		{ProfessionalID: pros[1].ID, NameEN: "Wiring inspection", NameNP: "तार निरीक्षण", Price: 1200, DiscountedPrice: 1000, Unit: "visit"},
		{ProfessionalID: pros[2].ID, NameEN: "Deep cleaning", NameNP: "गहिरो सफाई", Price: 3000, DiscountedPrice: 2700, Unit: "room"},
	}
	if err := s.db.Create(&services).Error; err != nil {
		return err
	}

	withdrawals := []withdrawalRow{
		{ProfessionalID: pros[0].ID, Amount: 5400, Status: string(domain.WithdrawalCompleted), CreatedAt: time.Now().Add(-72 * time.Hour)},
		{ProfessionalID: pros[0].ID, Amount: 2100, Status: string(domain.WithdrawalPending), CreatedAt: time.Now().Add(-2 * time.Hour)},
	}
	return s.db.Create(&withdrawals).Error
}
