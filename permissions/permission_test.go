package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renthubber/permissions"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)

	approve := data.FindPermissions("/v1/payouts/{id}/approve", http.MethodPost)
	assert.ElementsMatch(t, []string{"admin", "superadmin"}, approve.Permissions)

	assert.NotContains(t, data.FindPermissions("/v1/payouts/", http.MethodPost).Permissions, "renter")
	assert.Empty(t, data.FindPermissions("/v1/payouts/{id}/approve", http.MethodGet).Permissions)
}

func TestFindPermissions_WithoutIndex(t *testing.T) {
	data := &permissions.PermissionData{Endpoints: []permissions.Permission{
		{Path: "/v1/bookings/{id}/settle", Method: "post", Permissions: []string{"admin"}},
	}}

	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/bookings/{id}/settle", http.MethodPost).Permissions)
	assert.Empty(t, data.FindPermissions("/v1/bookings/{id}", http.MethodGet).Permissions)
}
