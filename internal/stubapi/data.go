package stubapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"doorsteps/internal/domain"
)

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "VALIDATION", "Invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) listOrders(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}

	q := s.db.Order("created_at desc")
	if c.Query("role") == "professional" {
		if u.ProfessionalID == nil {
			ok(c, http.StatusOK, []domain.Order{})
			return
		}
		q = q.Where("professional_id = ?", *u.ProfessionalID)
	} else {
		q = q.Where("customer_id = ?", u.ID)
	}

	var rows []orderRow
	if err := q.Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Order, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) getOrder(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var row orderRow
	if err := s.db.First(&row, id).Error; err != nil {
		notFound(c, "order")
		return
	}
	ok(c, http.StatusOK, row.toDomain())
}

func (s *Server) createOrder(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var details domain.BookingDetails
	if err := c.ShouldBindJSON(&details); err != nil || details.ProfessionalServiceID <= 0 {
		fail(c, http.StatusBadRequest, "VALIDATION", "A service must be selected")
		return
	}

	var svc serviceRow
	if err := s.db.First(&svc, details.ProfessionalServiceID).Error; err != nil {
		notFound(c, "service")
		return
	}
	if details.Quantity < 1 {
		details.Quantity = 1
	}

	// Price is recomputed server-side; the submitted total is ignored.
	row := orderRow{
		Status:          string(domain.OrderPending),
		PaymentStatus:   string(domain.PaymentUnpaid),
		ScheduledDate:   details.ScheduledDate,
		ScheduledTime:   details.ScheduledTime,
		CustomerID:      u.ID,
		ProfessionalID:  svc.ProfessionalID,
		ServiceNameEN:   svc.NameEN,
		ServiceNameNP:   svc.NameNP,
		Address:         details.Address,
		Price:           svc.Price,
		DiscountedPrice: svc.DiscountedPrice,
		Quantity:        details.Quantity,
		TotalPrice:      svc.DiscountedPrice * float64(details.Quantity),
		Notes:           details.Notes,
		CreatedAt:       time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not create order")
		return
	}

	s.notify(u.ID, "New Order", fmt.Sprintf("New order #%d received", row.ID),
		fmt.Sprintf("नयाँ अर्डर #%d प्राप्त भयो", row.ID),
		fmt.Sprintf("/orders/%d", row.ID))

	ok(c, http.StatusCreated, row.toDomain())
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var row orderRow
	if err := s.db.First(&row, id).Error; err != nil {
		notFound(c, "order")
		return
	}
	if row.Status == string(domain.OrderCompleted) || row.Status == string(domain.OrderCancelled) {
		fail(c, http.StatusBadRequest, "ORDER_NOT_CANCELLABLE", "Order can no longer be cancelled")
		return
	}
	row.Status = string(domain.OrderCancelled)
	if err := s.db.Save(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not cancel order")
		return
	}
	ok(c, http.StatusOK, row.toDomain())
}

// notify persists a notification and pushes it over the websocket hub.
func (s *Server) notify(userID int64, typ, messageEN, messageNP, route string) {
	row := notificationRow{
		UserID:      userID,
		Type:        typ,
		MessageEN:   messageEN,
		MessageNP:   messageNP,
		ActionRoute: route,
		CreatedAt:   time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		return
	}
	s.hub.push(row.toDomain())
}

func (s *Server) listNotifications(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var rows []notificationRow
	if err := s.db.Where("user_id = ?", u.ID).Order("created_at desc").Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Notification, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) markNotificationRead(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	res := s.db.Model(&notificationRow{}).Where("id = ?", id).Update("is_read", true)
	if res.RowsAffected == 0 {
		notFound(c, "notification")
		return
	}
	ok(c, http.StatusOK, nil)
}

func (s *Server) markAllNotificationsRead(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	s.db.Model(&notificationRow{}).Where("user_id = ?", u.ID).Update("is_read", true)
	ok(c, http.StatusOK, nil)
}

func (s *Server) deleteNotification(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	res := s.db.Delete(&notificationRow{}, id)
	if res.RowsAffected == 0 {
		notFound(c, "notification")
		return
	}
	ok(c, http.StatusOK, nil)
}

func (s *Server) listFavorites(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var rows []favoriteRow
	if err := s.db.Where("user_id = ?", u.ID).Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Favorite, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

type addFavoriteRequest struct {
	ProfessionalID        *int64 `json:"professional_id"`
	ProfessionalServiceID *int64 `json:"professional_service_id"`
}

func (s *Server) addFavorite(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		(req.ProfessionalID == nil && req.ProfessionalServiceID == nil) {
		fail(c, http.StatusBadRequest, "VALIDATION", "A professional or service is required")
		return
	}

	row := favoriteRow{
		UserID:                u.ID,
		ProfessionalID:        req.ProfessionalID,
		ProfessionalServiceID: req.ProfessionalServiceID,
		CreatedAt:             time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not add favorite")
		return
	}
	ok(c, http.StatusCreated, row.toDomain())
}

func (s *Server) removeFavorite(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	res := s.db.Delete(&favoriteRow{}, id)
	if res.RowsAffected == 0 {
		notFound(c, "favorite")
		return
	}
	ok(c, http.StatusOK, nil)
}

func (s *Server) loadAreas(professionalID int64) []domain.ServiceArea {
	var rows []serviceAreaRow
	s.db.Where("professional_id = ?", professionalID).Find(&rows)
	out := make([]domain.ServiceArea, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}

func (s *Server) listProfessionals(c *gin.Context) {
	var rows []professionalRow
	if err := s.db.Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Professional, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain(s.loadAreas(r.ID)))
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) getProfessional(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var row professionalRow
	if err := s.db.First(&row, id).Error; err != nil {
		notFound(c, "professional")
		return
	}
	ok(c, http.StatusOK, row.toDomain(s.loadAreas(row.ID)))
}

func (s *Server) listServices(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var rows []serviceRow
	if err := s.db.Where("professional_id = ?", id).Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.ProfessionalService, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

type registerProfessionalRequest struct {
	Profession string  `json:"profession" binding:"required"`
	Bio        string  `json:"bio"`
	AreaIDs    []int64 `json:"area_ids"`
}

func (s *Server) registerProfessional(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	if u.ProfessionalID != nil {
		fail(c, http.StatusBadRequest, "ALREADY_REGISTERED", "Already a professional")
		return
	}
	var req registerProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "profession is required")
		return
	}

	row := professionalRow{
		UserID:     u.ID,
		FullNameEN: u.FullName,
		Profession: req.Profession,
		Bio:        req.Bio,
		CreatedAt:  time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not register")
		return
	}
	u.ProfessionalID = &row.ID
	s.db.Save(u)

	ok(c, http.StatusCreated, row.toDomain(nil))
}

type updateAreasRequest struct {
	AreaIDs []int64 `json:"area_ids" binding:"required"`
}

func (s *Server) updateServiceAreas(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	if u.ProfessionalID == nil {
		fail(c, http.StatusBadRequest, "NO_PROFESSIONAL_PROFILE", "Register as a professional first")
		return
	}
	var req updateAreasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "area_ids is required")
		return
	}

	s.db.Model(&serviceAreaRow{}).Where("id IN ?", req.AreaIDs).
		Update("professional_id", *u.ProfessionalID)

	var row professionalRow
	if err := s.db.First(&row, *u.ProfessionalID).Error; err != nil {
		notFound(c, "professional")
		return
	}
	ok(c, http.StatusOK, row.toDomain(s.loadAreas(row.ID)))
}

func (s *Server) listPayments(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var rows []paymentRow
	if err := s.db.Where("user_id = ?", u.ID).Order("created_at desc").Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Payment, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

type createPaymentRequest struct {
	OrderID int64   `json:"order_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
	Method  string  `json:"method" binding:"required"`
}

func (s *Server) createPayment(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "VALIDATION", "order_id, amount and method are required")
		return
	}
	var order orderRow
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		notFound(c, "order")
		return
	}

	row := paymentRow{
		UserID:    u.ID,
		OrderID:   req.OrderID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    "recorded",
		CreatedAt: time.Now(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Could not record payment")
		return
	}

	if req.Amount >= order.TotalPrice {
		order.PaymentStatus = string(domain.PaymentPaid)
	} else {
		order.PaymentStatus = string(domain.PaymentPartial)
	}
	s.db.Save(&order)

	s.notify(u.ID, "payment_received", fmt.Sprintf("Payment of Rs. %.0f received", req.Amount),
		fmt.Sprintf("रु. %.0f भुक्तानी प्राप्त भयो", req.Amount),
		fmt.Sprintf("/orders/%d", req.OrderID))

	ok(c, http.StatusCreated, row.toDomain())
}

func (s *Server) listWithdrawals(c *gin.Context) {
	u, authed := s.currentUser(c)
	if !authed {
		return
	}
	if u.ProfessionalID == nil {
		ok(c, http.StatusOK, []domain.Withdrawal{})
		return
	}
	var rows []withdrawalRow
	if err := s.db.Where("professional_id = ?", *u.ProfessionalID).Order("created_at desc").Find(&rows).Error; err != nil {
		fail(c, http.StatusInternalServerError, "INTERNAL", "Query failed")
		return
	}
	out := make([]domain.Withdrawal, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	ok(c, http.StatusOK, out)
}

func (s *Server) withdrawalReceipt(c *gin.Context) {
	id, valid := pathID(c)
	if !valid {
		return
	}
	var row withdrawalRow
	if err := s.db.First(&row, id).Error; err != nil {
		notFound(c, "withdrawal")
		return
	}

	receipt, _ := json.Marshal(gin.H{
		"withdrawal_id": row.ID,
		"amount":        row.Amount,
		"status":        row.Status,
		"issued_at":     time.Now().Format(time.RFC3339),
	})
	c.Data(http.StatusOK, "application/json", receipt)
}
