package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func gateRouter(role string, loggedIn bool) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if loggedIn {
			c.Set("UserID", uint(1))
			c.Set("Role", role)
		}
		c.Next()
	})
	router.GET("/staff", CheckLoginMiddleware(), CheckStaffPermissionMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestStaffGate(t *testing.T) {
	testCases := []struct {
		name         string
		role         string
		loggedIn     bool
		expectedCode int
	}{
		{"staff allowed", "staff", true, http.StatusOK},
		{"regular user forbidden", "user", true, http.StatusForbidden},
		{"anonymous unauthorized", "", false, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := gateRouter(tc.role, tc.loggedIn)
			req := httptest.NewRequest("GET", "/staff", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}
