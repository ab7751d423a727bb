package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petcare/models"
	"petcare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": GetActor(c)})
	})
	r.GET("/admin", AuthMiddleware(), RequireRole(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	token, err := utils.GenerateToken("user-1", "mochi-mom", models.RoleUser, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(r, "/me", token).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", "not-a-token").Code)

	expired, err := utils.GenerateToken("user-1", "mochi-mom", models.RoleUser, -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "/me", expired).Code)
}

func TestRequireRoleMiddleware(t *testing.T) {
	r := newAuthRouter()

	userToken, err := utils.GenerateToken("user-1", "mochi-mom", models.RoleUser, time.Hour)
	require.NoError(t, err)
	adminToken, err := utils.GenerateToken("admin-1", "boss", models.RoleAdmin, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doRequest(r, "/admin", userToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, "/admin", adminToken).Code)
}
