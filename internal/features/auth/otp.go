package auth

import (
	"fmt"
	"math/rand/v2"
	"time"

	apperrors "github.com/plategenie/server/pkg/errors"
)

// OTPTTL is how long a verification code stays valid after issuance.
const OTPTTL = 5 * time.Minute

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() string {
	return fmt.Sprintf("%06d", rand.IntN(900000)+100000)
}

// ValidateOTP checks a submitted code against a pending registration.
// A wrong code and an expired one collapse into the same error so the
// response does not reveal which check failed.
func ValidateOTP(pending *PendingUser, code string, now time.Time) error {
	if pending.OTP != code || now.After(pending.OTPExpires) {
		return apperrors.ErrInvalidOTP
	}
	return nil
}
