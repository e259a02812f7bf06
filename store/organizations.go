package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Imran-2020331101/evalia/apperr"
)

// Organizations stores the business profiles owned by recruiter accounts.
type Organizations struct {
	Db *gorm.DB
}

func (s *Organizations) Create(org *Organization) error {
	org.OwnerEmail = strings.ToLower(org.OwnerEmail)
	if err := s.Db.Create(org).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}

func (s *Organizations) ByID(id string) (*Organization, error) {
	var org Organization
	err := s.Db.Where("id = ?", id).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.WithMessage(apperr.ErrNotFound, "organization not found with id: "+id)
	}
	if err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return &org, nil
}

func (s *Organizations) ByOwnerEmail(email string) ([]Organization, error) {
	orgs := []Organization{}
	if err := s.Db.Where("owner_email = ?", strings.ToLower(email)).Find(&orgs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return orgs, nil
}

func (s *Organizations) Save(org *Organization) error {
	if err := s.Db.Save(org).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}

func (s *Organizations) Delete(org *Organization) error {
	if err := s.Db.Delete(org).Error; err != nil {
		return apperr.Wrap(err, apperr.ErrDatabase, "")
	}
	return nil
}
