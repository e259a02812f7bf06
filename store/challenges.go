package store

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"gorm.io/gorm"

	"github.com/Imran-2020331101/evalia/apperr"
)

const challengeTTL = 10 * time.Minute

// Challenges stores one-time verification codes. Reissuing a code for the
// same email creates a new independent record; consumption deletes exactly
// one record.
type Challenges struct {
	Db *gorm.DB
}

// Issue generates a 4-digit code from a cryptographically strong source and
// persists it with a 10-minute expiry.
func (s *Challenges) Issue(email string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", apperr.Wrap(err, apperr.ErrInternal, "")
	}
	code := big.NewInt(0).Add(n, big.NewInt(1000)).String()

	challenge := Challenge{
		Code:      code,
		UserEmail: email,
		ExpiresAt: time.Now().Add(challengeTTL),
	}
	if err := s.Db.Create(&challenge).Error; err != nil {
		return "", apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return code, nil
}

// ByCode looks up an active challenge record.
func (s *Challenges) ByCode(code string) (*Challenge, error) {
	var challenge Challenge
	err := s.Db.Where("code = ?", code).First(&challenge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.WithMessage(apperr.ErrOTPInvalid, "invalid OTP, please check your OTP and try again")
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return &challenge, nil
}

// Delete consumes the challenge record. Expired and invalid codes are never
// resurrected, the caller must request a fresh one.
func (s *Challenges) Delete(challenge *Challenge) error {
	if err := s.Db.Unscoped().Delete(challenge).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}
