package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ordelo-app/ordelo/controllers"
	"github.com/ordelo-app/ordelo/models"
	"github.com/ordelo-app/ordelo/utils"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	business, _ := seedBusinessWithMenu(t, db, "resto-auth")

	userCtrl := controllers.NewUserController(db)
	r := gin.New()
	r.POST("/register", asStaff(business.ID, 1, "admin"), userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	r.GET("/profile", func(c *gin.Context) {
		// Ambil klaim dari token seperti AuthMiddleware.
		claims, err := utils.ParseToken(c.GetHeader("Authorization")[len("Bearer "):])
		require.NoError(t, err)
		c.Set("userID", claims.UserID)
		userCtrl.GetProfile(c)
	})

	// Register
	body, _ := json.Marshal(map[string]string{
		"name":     "New Waiter",
		"email":    "waiter@auth.local",
		"password": "supersecret",
		"role":     "waiter",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Where("email = ?", "waiter@auth.local").First(&user).Error)
	assert.Equal(t, business.ID, user.BusinessID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))

	// Login
	body, _ = json.Marshal(map[string]string{
		"email":    "waiter@auth.local",
		"password": "supersecret",
	})
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	data := loginResp["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, business.ID, claims.BusinessID)
	assert.Equal(t, "waiter", claims.Role)

	// Profile dengan token
	req, _ = http.NewRequest("GET", "/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupTestDB(t)
	seedBusinessWithMenu(t, db, "resto-badlogin")

	userCtrl := controllers.NewUserController(db)
	r := gin.New()
	r.POST("/login", userCtrl.Login)

	body, _ := json.Marshal(map[string]string{
		"email":    "nobody@test.local",
		"password": "wrong",
	})
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
