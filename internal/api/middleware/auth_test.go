package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/ticketing-api/internal/pkg/jwthelper"
)

const testSigningKey = "test-signing-key"

func protectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", NewAuthenticator(testSigningKey).VerifyJWT(), func(ctx *gin.Context) {
		userID := ctx.MustGet("userID").(uint)
		ctx.JSON(http.StatusOK, gin.H{"user_id": userID})
	})

	return router
}

func TestVerifyJWT(t *testing.T) {
	router := protectedRouter()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), 42, "test-agent")
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		userAgent  string
		wantStatus int
	}{
		{
			name:       "valid token",
			header:     "Bearer " + token,
			userAgent:  "test-agent",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			header:     "",
			userAgent:  "test-agent",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     token,
			userAgent:  "test-agent",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not.a.token",
			userAgent:  "test-agent",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "replayed from another client",
			header:     "Bearer " + token,
			userAgent:  "someone-else",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			req.Header.Set("User-Agent", tt.userAgent)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestVerifyJWT_WrongKey(t *testing.T) {
	router := protectedRouter()

	token, err := jwthelper.GenerateToken([]byte("a-different-key"), 42, "test-agent")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "test-agent")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
