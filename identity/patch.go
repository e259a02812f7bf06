package identity

import "github.com/Imran-2020331101/evalia/store"

// ProfilePatch is a sparse update. Only the listed fields can change; a nil
// field leaves the stored value untouched, so identity and credential fields
// are unreachable from this payload by construction.
type ProfilePatch struct {
	Name              *string `json:"name"`
	Bio               *string `json:"bio"`
	Location          *string `json:"location"`
	AboutMe           *string `json:"aboutMe"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	CoverPictureURL   *string `json:"coverPictureUrl"`
	ResumeURL         *string `json:"resumeUrl"`
}

func (p ProfilePatch) Apply(u *store.User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Location != nil {
		u.Location = *p.Location
	}
	if p.AboutMe != nil {
		u.AboutMe = *p.AboutMe
	}
	if p.ProfilePictureURL != nil {
		u.ProfilePictureURL = *p.ProfilePictureURL
	}
	if p.CoverPictureURL != nil {
		u.CoverPictureURL = *p.CoverPictureURL
	}
	if p.ResumeURL != nil {
		u.ResumeURL = *p.ResumeURL
		u.HasResume = *p.ResumeURL != ""
	}
}

// OrganizationPatch mirrors ProfilePatch for organizations. Ownership and
// verification status are deliberately absent.
type OrganizationPatch struct {
	OrganizationName       *string `json:"organizationName"`
	OrganizationNameBangla *string `json:"organizationNameBangla"`
	ProfileImageURL        *string `json:"organizationProfileImageUrl"`
	YearOfEstablishment    *string `json:"yearOfEstablishment"`
	NumberOfEmployees      *string `json:"numberOfEmployees"`
	OrganizationAddress    *string `json:"organizationAddress"`
	OrganizationAddrBangla *string `json:"organizationAddressBangla"`
	IndustryType           *string `json:"industryType"`
	BusinessDescription    *string `json:"businessDescription"`
	BusinessLicenseNo      *string `json:"businessLicenseNo"`
	RLNo                   *string `json:"rlNo"`
	WebsiteURL             *string `json:"websiteUrl"`
	EnableDisabilityCare   *bool   `json:"enableDisabilityFacilities"`
}

func (p OrganizationPatch) Apply(o *store.Organization) {
	if p.OrganizationName != nil {
		o.OrganizationName = *p.OrganizationName
	}
	if p.OrganizationNameBangla != nil {
		o.OrganizationNameBangla = *p.OrganizationNameBangla
	}
	if p.ProfileImageURL != nil {
		o.ProfileImageURL = *p.ProfileImageURL
	}
	if p.YearOfEstablishment != nil {
		o.YearOfEstablishment = *p.YearOfEstablishment
	}
	if p.NumberOfEmployees != nil {
		o.NumberOfEmployees = *p.NumberOfEmployees
	}
	if p.OrganizationAddress != nil {
		o.OrganizationAddress = *p.OrganizationAddress
	}
	if p.OrganizationAddrBangla != nil {
		o.OrganizationAddrBangla = *p.OrganizationAddrBangla
	}
	if p.IndustryType != nil {
		o.IndustryType = *p.IndustryType
	}
	if p.BusinessDescription != nil {
		o.BusinessDescription = *p.BusinessDescription
	}
	if p.BusinessLicenseNo != nil {
		o.BusinessLicenseNo = *p.BusinessLicenseNo
	}
	if p.RLNo != nil {
		o.RLNo = *p.RLNo
	}
	if p.WebsiteURL != nil {
		o.WebsiteURL = *p.WebsiteURL
	}
	if p.EnableDisabilityCare != nil {
		o.EnableDisabilityCare = *p.EnableDisabilityCare
	}
}
