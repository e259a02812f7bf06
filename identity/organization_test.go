package identity

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func createOrgRequest() gin.H {
	return gin.H{
		"organizationName":    "Acme Ltd",
		"yearOfEstablishment": "2015",
		"numberOfEmployees":   "50-100",
		"organizationAddress": "12 Main Street, Dhaka",
		"industryType":        "Software",
		"businessDescription": "Custom software development",
		"acceptPrivacyPolicy": true,
	}
}

func TestCreateOrganizationLinksOwner(t *testing.T) {
	e := newEnv(t)
	token := e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/organization", token, createOrgRequest())
	assert.Equal(t, http.StatusCreated, w.Code)

	org := decode(t, w)
	assert.NotEmpty(t, org["id"])
	assert.Equal(t, "nadia@example.com", org["ownerEmail"])
	assert.Equal(t, false, org["verified"])

	user, err := e.svc.Users.ByEmail("nadia@example.com")
	assert.NoError(t, err)
	assert.True(t, user.HasAnyOrganization)
	assert.True(t, user.OrganizationIDs.Contains(org["id"].(string)))
}

func TestCreateOrganizationRequiredFields(t *testing.T) {
	e := newEnv(t)
	token := e.registerVerified(t, "Nadia", "nadia@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/organization", token, gin.H{"organizationName": "Acme"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decode(t, w)["code"])
}

func TestPatchOrganizationOwnerOnly(t *testing.T) {
	e := newEnv(t)
	ownerToken := e.registerVerified(t, "Owner", "owner@example.com", "Sup3rSecret")
	otherToken := e.registerVerified(t, "Other", "other@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/organization", ownerToken, createOrgRequest())
	assert.Equal(t, http.StatusCreated, w.Code)
	orgID := decode(t, w)["id"].(string)

	// non-owner cannot modify
	w = e.do(t, http.MethodPatch, "/organization/"+orgID, otherToken, gin.H{"industryType": "Fintech"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "not_authorized", decode(t, w)["code"])

	// sparse patch by the owner touches only the named field
	w = e.do(t, http.MethodPatch, "/organization/"+orgID, ownerToken, gin.H{"industryType": "Fintech"})
	assert.Equal(t, http.StatusOK, w.Code)

	org, err := e.svc.Organizations.ByID(orgID)
	assert.NoError(t, err)
	assert.Equal(t, "Fintech", org.IndustryType)
	assert.Equal(t, "Acme Ltd", org.OrganizationName)
	assert.False(t, org.Verified)
}

func TestPatchOrganizationCannotSelfVerify(t *testing.T) {
	e := newEnv(t)
	token := e.registerVerified(t, "Owner", "owner@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/organization", token, createOrgRequest())
	orgID := decode(t, w)["id"].(string)

	w = e.do(t, http.MethodPatch, "/organization/"+orgID, token, gin.H{"verified": true, "ownerEmail": "thief@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	org, err := e.svc.Organizations.ByID(orgID)
	assert.NoError(t, err)
	assert.False(t, org.Verified)
	assert.Equal(t, "owner@example.com", org.OwnerEmail)
}

func TestDeleteOrganizationUnlinksOwner(t *testing.T) {
	e := newEnv(t)
	token := e.registerVerified(t, "Owner", "owner@example.com", "Sup3rSecret")

	w := e.do(t, http.MethodPost, "/organization", token, createOrgRequest())
	orgID := decode(t, w)["id"].(string)

	w = e.do(t, http.MethodDelete, "/organization/"+orgID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	user, err := e.svc.Users.ByEmail("owner@example.com")
	assert.NoError(t, err)
	assert.False(t, user.HasAnyOrganization)
	assert.False(t, user.OrganizationIDs.Contains(orgID))

	w = e.do(t, http.MethodGet, "/organization/"+orgID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMyOrganizations(t *testing.T) {
	e := newEnv(t)
	ownerToken := e.registerVerified(t, "Owner", "owner@example.com", "Sup3rSecret")
	otherToken := e.registerVerified(t, "Other", "other@example.com", "Sup3rSecret")

	e.do(t, http.MethodPost, "/organization", ownerToken, createOrgRequest())

	w := e.do(t, http.MethodGet, "/organization", ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Acme Ltd")

	w = e.do(t, http.MethodGet, "/organization", otherToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
