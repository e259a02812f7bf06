// Package store owns the gateway's persistent records and their
// repositories. The identity store is deliberately small: the gateway keeps
// only what it needs to authenticate users and reconcile downstream calls,
// the domain services own everything else.
package store

import (
	"database/sql/driver"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StringList is a json-serialized list column. Used for the per-user job id
// collections and the owned-organization references.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

func (l StringList) Without(id string) StringList {
	out := make(StringList, 0, len(l))
	for _, v := range l {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// User is the gateway's identity record. Email is the primary lookup key.
// Password-based accounts require EmailVerified before login; federated
// accounts (Provider set) are pre-verified and carry no local password.
type User struct {
	gorm.Model
	Name          string
	Email         string `gorm:"uniqueIndex"`
	Password      string `json:"-"`
	Roles         []Role `gorm:"many2many:user_roles"`
	EmailVerified bool
	Enabled       bool
	HasResume     bool
	ResumeURL     string

	// federated login linkage, empty for password accounts
	Provider   string
	ProviderID string

	Bio               string
	Location          string
	AboutMe           string
	ProfilePictureURL string
	CoverPictureURL   string

	HasAnyOrganization  bool
	OrganizationIDs     StringList `gorm:"type:text"`
	AppliedJobs         StringList `gorm:"type:text"`
	SavedJobs           StringList `gorm:"type:text"`
	NumberOfAppliedJobs int
}

// IsFederated reports whether the account was provisioned by an external
// identity provider.
func (u *User) IsFederated() bool {
	return u.Provider != ""
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), 8)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain))
}

func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Role is a name-keyed tag (e.g. "USER", "ADMIN") owned by a reference
// catalog.
type Role struct {
	gorm.Model
	Name string `gorm:"uniqueIndex"`
}

// Challenge is a short-lived one-time code bound to an email address. It is
// consumed (deleted) exactly once, on verification or on detected expiry.
type Challenge struct {
	gorm.Model
	Code      string `gorm:"index"`
	UserEmail string
	ExpiresAt time.Time
}

func (c *Challenge) Expired(now time.Time) bool {
	return c.ExpiresAt.Before(now)
}

// Organization is a business profile owned by exactly one user.
type Organization struct {
	ID         string `gorm:"primaryKey" json:"id"`
	OwnerEmail string `gorm:"index" json:"ownerEmail"`

	OrganizationName        string `json:"organizationName"`
	OrganizationNameBangla  string `json:"organizationNameBangla,omitempty"`
	ProfileImageURL         string `json:"organizationProfileImageUrl,omitempty"`
	YearOfEstablishment     string `json:"yearOfEstablishment"`
	NumberOfEmployees       string `json:"numberOfEmployees"`
	OrganizationAddress     string `json:"organizationAddress"`
	OrganizationAddrBangla  string `json:"organizationAddressBangla,omitempty"`
	IndustryType            string `json:"industryType"`
	BusinessDescription     string `json:"businessDescription"`
	BusinessLicenseNo       string `json:"businessLicenseNo,omitempty"`
	RLNo                    string `json:"rlNo,omitempty"`
	WebsiteURL              string `json:"websiteUrl,omitempty"`
	EnableDisabilityCare    bool   `json:"enableDisabilityFacilities"`
	AcceptedPrivacyPolicy   bool   `json:"acceptPrivacyPolicy"`
	Verified                bool   `json:"verified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
