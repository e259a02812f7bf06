package identity

import (
	"strconv"

	"github.com/Imran-2020331101/evalia/store"
)

// UserView is the outward projection of a user record. The stored password
// hash never appears here.
type UserView struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	EmailVerified      bool     `json:"emailVerified"`
	Roles              []string `json:"roles"`
	Bio                string   `json:"bio,omitempty"`
	Location           string   `json:"location,omitempty"`
	AboutMe            string   `json:"aboutMe,omitempty"`
	ProfilePictureURL  string   `json:"profilePictureUrl,omitempty"`
	CoverPictureURL    string   `json:"coverPictureUrl,omitempty"`
	HasResume          bool     `json:"hasResume"`
	ResumeURL          string   `json:"resumeUrl,omitempty"`
	HasAnyOrganization bool     `json:"hasAnyOrganization"`
	Organizations      []string `json:"organizations"`
	Provider           string   `json:"provider,omitempty"`
}

func PublicProfile(u *store.User) UserView {
	orgs := u.OrganizationIDs
	if orgs == nil {
		orgs = store.StringList{}
	}
	return UserView{
		ID:                 strconv.FormatUint(uint64(u.ID), 10),
		Name:               u.Name,
		Email:              u.Email,
		EmailVerified:      u.EmailVerified,
		Roles:              u.RoleNames(),
		Bio:                u.Bio,
		Location:           u.Location,
		AboutMe:            u.AboutMe,
		ProfilePictureURL:  u.ProfilePictureURL,
		CoverPictureURL:    u.CoverPictureURL,
		HasResume:          u.HasResume,
		ResumeURL:          u.ResumeURL,
		HasAnyOrganization: u.HasAnyOrganization,
		Organizations:      orgs,
		Provider:           u.Provider,
	}
}
