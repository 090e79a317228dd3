package auth

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"school-cms-api/internal/activitylog"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type mockAuthService struct {
	CreateUserFn     func(user User) (*User, error)
	GetUserFn        func(email string) (*User, error)
	GetUserByIDFn    func(id uint) (*User, error)
	GetAllUsersFn    func() ([]User, error)
	UpdateUserFn     func(id uint, req UpdateUserRequest) (*User, error)
	DeleteUserFn     func(actorID, id uint) error
	LoginFn          func(email, password string) (*LoginResponse, error)
	ChangePasswordFn func(id uint, current, next string) (*User, error)
	SendOTPFn        func(email string) (*User, string, error)
	ResetPasswordFn  func(email, code, newPassword string) (*User, error)
}

func (m *mockAuthService) CreateUser(user User) (*User, error) {
	if m.CreateUserFn == nil {
		return nil, assertErr("CreateUser not implemented")
	}
	return m.CreateUserFn(user)
}

func (m *mockAuthService) GetUser(email string) (*User, error) {
	if m.GetUserFn == nil {
		return nil, assertErr("GetUser not implemented")
	}
	return m.GetUserFn(email)
}

func (m *mockAuthService) GetUserByID(id uint) (*User, error) {
	if m.GetUserByIDFn == nil {
		return nil, assertErr("GetUserByID not implemented")
	}
	return m.GetUserByIDFn(id)
}

func (m *mockAuthService) GetAllUsers() ([]User, error) {
	if m.GetAllUsersFn == nil {
		return nil, assertErr("GetAllUsers not implemented")
	}
	return m.GetAllUsersFn()
}

func (m *mockAuthService) UpdateUser(id uint, req UpdateUserRequest) (*User, error) {
	if m.UpdateUserFn == nil {
		return nil, assertErr("UpdateUser not implemented")
	}
	return m.UpdateUserFn(id, req)
}

func (m *mockAuthService) DeleteUser(actorID, id uint) error {
	if m.DeleteUserFn == nil {
		return assertErr("DeleteUser not implemented")
	}
	return m.DeleteUserFn(actorID, id)
}

func (m *mockAuthService) Login(email, password string) (*LoginResponse, error) {
	if m.LoginFn == nil {
		return nil, assertErr("Login not implemented")
	}
	return m.LoginFn(email, password)
}

func (m *mockAuthService) ChangePassword(id uint, current, next string) (*User, error) {
	if m.ChangePasswordFn == nil {
		return nil, assertErr("ChangePassword not implemented")
	}
	return m.ChangePasswordFn(id, current, next)
}

func (m *mockAuthService) SendOTP(email string) (*User, string, error) {
	if m.SendOTPFn == nil {
		return nil, "", assertErr("SendOTP not implemented")
	}
	return m.SendOTPFn(email)
}

func (m *mockAuthService) ResetPassword(email, code, newPassword string) (*User, error) {
	if m.ResetPasswordFn == nil {
		return nil, assertErr("ResetPassword not implemented")
	}
	return m.ResetPasswordFn(email, code, newPassword)
}

type mockLogService struct {
	entries []activitylog.ActivityLog
	LogFn   func(entry activitylog.ActivityLog, payload any) error
}

func (m *mockLogService) Log(entry activitylog.ActivityLog, payload any) error {
	m.entries = append(m.entries, entry)
	if m.LogFn == nil {
		return nil
	}
	return m.LogFn(entry, payload)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func setupAuthRouter(ac *AuthController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.Use(func(c *gin.Context) {
		if v := c.GetHeader("X-UserID"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				c.Set("userID", f)
			} else {
				c.Set("userID", v)
			}
		}
		c.Next()
	})

	r.POST("/login", ac.Login)
	r.POST("/logout", ac.Logout)
	r.GET("/me", ac.Me)
	r.PUT("/password", ac.ChangePassword)
	r.POST("/forgot-password", ac.SendOTP)
	r.POST("/reset-password", ac.ResetPassword)

	r.GET("/users", ac.GetUsers)
	r.POST("/users", ac.CreateUser)
	r.PUT("/users/:id", ac.UpdateUser)
	r.DELETE("/users/:id", ac.DeleteUser)

	return r
}

func sendJSON(r http.Handler, method, path string, body []byte, userID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-UserID", userID)
	}
	r.ServeHTTP(w, req)
	return w
}

func postJSON(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	return sendJSON(r, http.MethodPost, path, body, "")
}

func requireContains(t *testing.T, s, sub string) {
	t.Helper()
	if !strings.Contains(s, sub) {
		t.Fatalf("expected %q to contain %q", s, sub)
	}
}

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(b)
}

func cookieHeader(resp *http.Response, name string) (string, bool) {
	prefix := name + "="
	for _, h := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(h, prefix) {
			return h, true
		}
	}
	return "", false
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &OTP{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	return db
}
