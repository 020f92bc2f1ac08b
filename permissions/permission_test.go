package permissions_test

import (
	"ihome/permissions"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		path     string
		method   string
		wantSkip bool
	}{
		{path: "/v1/areas", method: http.MethodGet, wantSkip: true},
		{path: "/v1/houses", method: http.MethodGet, wantSkip: true},
		{path: "/v1/houses/{id}", method: http.MethodGet, wantSkip: true},
		{path: "/v1/houses", method: http.MethodPost, wantSkip: false},
		{path: "/v1/auth/login", method: http.MethodPost, wantSkip: true},
		{path: "/v1/verifications/sms", method: http.MethodPost, wantSkip: true},
		{path: "/v1/user", method: http.MethodGet, wantSkip: false},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.wantSkip, data.FindPermissions(tt.path, tt.method).Skip)
		})
	}
}
