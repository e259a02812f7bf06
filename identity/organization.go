package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Imran-2020331101/evalia/apperr"
	"github.com/Imran-2020331101/evalia/gateway"
	"github.com/Imran-2020331101/evalia/store"
)

type organizationRequest struct {
	OrganizationName       string `json:"organizationName" binding:"required"`
	OrganizationNameBangla string `json:"organizationNameBangla"`
	ProfileImageURL        string `json:"organizationProfileImageUrl"`
	YearOfEstablishment    string `json:"yearOfEstablishment" binding:"required"`
	NumberOfEmployees      string `json:"numberOfEmployees" binding:"required"`
	OrganizationAddress    string `json:"organizationAddress" binding:"required"`
	OrganizationAddrBangla string `json:"organizationAddressBangla"`
	IndustryType           string `json:"industryType" binding:"required"`
	BusinessDescription    string `json:"businessDescription" binding:"required"`
	BusinessLicenseNo      string `json:"businessLicenseNo"`
	RLNo                   string `json:"rlNo"`
	WebsiteURL             string `json:"websiteUrl"`
	EnableDisabilityCare   bool   `json:"enableDisabilityFacilities"`
	AcceptedPrivacyPolicy  bool   `json:"acceptPrivacyPolicy" binding:"required"`
}

// CreateOrganization registers a business profile owned by the caller and
// links it into the caller's organization list.
func (s *Service) CreateOrganization(c *gin.Context) {
	var req organizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, bindingError(err))
		return
	}
	user, ok := s.caller(c)
	if !ok {
		return
	}

	org := &store.Organization{
		OwnerEmail:             user.Email,
		OrganizationName:       req.OrganizationName,
		OrganizationNameBangla: req.OrganizationNameBangla,
		ProfileImageURL:        req.ProfileImageURL,
		YearOfEstablishment:    req.YearOfEstablishment,
		NumberOfEmployees:      req.NumberOfEmployees,
		OrganizationAddress:    req.OrganizationAddress,
		OrganizationAddrBangla: req.OrganizationAddrBangla,
		IndustryType:           req.IndustryType,
		BusinessDescription:    req.BusinessDescription,
		BusinessLicenseNo:      req.BusinessLicenseNo,
		RLNo:                   req.RLNo,
		WebsiteURL:             req.WebsiteURL,
		EnableDisabilityCare:   req.EnableDisabilityCare,
		AcceptedPrivacyPolicy:  req.AcceptedPrivacyPolicy,
	}
	if err := s.Organizations.Create(org); err != nil {
		abort(c, err)
		return
	}

	user.HasAnyOrganization = true
	user.OrganizationIDs = append(user.OrganizationIDs, org.ID)
	if err := s.Users.Save(user); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{
			"email":        user.Email,
			"organization": org.ID,
		}).Error("organization created but not linked to owner")
	}
	c.JSON(http.StatusCreated, org)
}

// MyOrganizations lists every organization owned by the caller.
func (s *Service) MyOrganizations(c *gin.Context) {
	orgs, err := s.Organizations.ByOwnerEmail(gateway.Email(c))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, orgs)
}

// OrganizationByID returns a single organization profile.
func (s *Service) OrganizationByID(c *gin.Context) {
	org, err := s.Organizations.ByID(c.Param("organizationId"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// PatchOrganization applies a sparse update to an organization the caller
// owns. Non-owners get a not-authorized error rather than a silent no-op.
func (s *Service) PatchOrganization(c *gin.Context) {
	var patch OrganizationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abort(c, bindingError(err))
		return
	}
	org, ok := s.ownedOrganization(c)
	if !ok {
		return
	}
	patch.Apply(org)
	if err := s.Organizations.Save(org); err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// DeleteOrganization removes an owned organization and unlinks it from the
// caller's record.
func (s *Service) DeleteOrganization(c *gin.Context) {
	org, ok := s.ownedOrganization(c)
	if !ok {
		return
	}
	if err := s.Organizations.Delete(org); err != nil {
		abort(c, err)
		return
	}

	user, ok := s.caller(c)
	if !ok {
		return
	}
	user.OrganizationIDs = user.OrganizationIDs.Without(org.ID)
	user.HasAnyOrganization = len(user.OrganizationIDs) > 0
	if err := s.Users.Save(user); err != nil {
		s.Logger.WithError(err).WithField("organization", org.ID).Error("organization deleted but owner record not updated")
	}
	c.JSON(http.StatusOK, gin.H{"message": "organization deleted"})
}

func (s *Service) ownedOrganization(c *gin.Context) (*store.Organization, bool) {
	org, err := s.Organizations.ByID(c.Param("organizationId"))
	if err != nil {
		abort(c, err)
		return nil, false
	}
	if org.OwnerEmail != gateway.Email(c) {
		abort(c, apperr.WithMessage(apperr.ErrNotAuthorized, "organization is owned by another account"))
		return nil, false
	}
	return org, true
}
