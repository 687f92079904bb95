package session

import "errors"

var (
	ErrInvalidMode   = errors.New("mode must be customer or professional")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrOTPNotPending = errors.New("no OTP verification pending")
)
