package notification

import "strings"

// professionalTypePrefixes is the static allow-list of notification
// types addressed to the professional side of an account. Everything
// else is customer-relevant.
var professionalTypePrefixes = []string{
	"New Order",
	"payment_received",
	"withdrawal_",
}

func IsProfessionalType(notificationType string) bool {
	for _, prefix := range professionalTypePrefixes {
		if strings.HasPrefix(notificationType, prefix) {
			return true
		}
	}
	return false
}

// HasOtherModeNotifications counts unread notifications addressed to
// the mode the user is NOT currently viewing, to drive the cross-mode
// banner. With professional mode active it counts unread customer
// notifications, and vice versa. The two counts partition the unread
// set.
func (s *Store) HasOtherModeNotifications(isProfessionalModeActive bool) int {
	n := 0
	for _, item := range s.Notifications() {
		if item.IsRead {
			continue
		}
		if IsProfessionalType(item.Type) != isProfessionalModeActive {
			n++
		}
	}
	return n
}
