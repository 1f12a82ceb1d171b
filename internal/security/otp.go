package security

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

const OTPTTL = 10 * time.Minute

var otpRange = big.NewInt(900000)

// GenerateOTP returns a 6-digit code drawn uniformly from 100000..999999.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func OTPExpiry() time.Time { return time.Now().Add(OTPTTL).UTC() }
