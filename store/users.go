package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Imran-2020331101/evalia/apperr"
)

// Users is the identity record store. Lookups are case-insensitive on email.
type Users struct {
	Db *gorm.DB
}

func (s *Users) ByEmail(email string) (*User, error) {
	var u User
	err := s.Db.Preload("Roles").Where("email = ?", strings.ToLower(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found with email: "+email)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return &u, nil
}

func (s *Users) ByID(id uint) (*User, error) {
	var u User
	err := s.Db.Preload("Roles").First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return &u, nil
}

func (s *Users) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := s.Db.Model(&User{}).Where("email = ?", strings.ToLower(email)).Count(&count).Error; err != nil {
		return false, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return count > 0, nil
}

func (s *Users) Create(u *User) error {
	u.Email = strings.ToLower(u.Email)
	if err := s.Db.Create(u).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}

func (s *Users) Save(u *User) error {
	if err := s.Db.Save(u).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}

// ReplaceRoles swaps the user's entire role set for the given roles.
func (s *Users) ReplaceRoles(u *User, roles []Role) error {
	if err := s.Db.Model(u).Association("Roles").Replace(roles); err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	u.Roles = roles
	return nil
}
