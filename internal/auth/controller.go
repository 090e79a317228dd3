package auth

import (
	"errors"
	"fmt"
	"net/http"

	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/jsonapi"
	"school-cms-api/internal/middlewares"
	"school-cms-api/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const subject = "auth"

type AuthController struct {
	AuthService AuthServicePort
	LS          activitylog.Recorder
	// SecureCookies marks the access_token cookie Secure; enabled outside local development.
	SecureCookies bool
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := ac.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "We couldn't log you in. Please check your email and password and try again."})
			return
		}
		jsonapi.RenderError(c, err)
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	c.Set(middlewares.ContextUserID, float64(resp.User.ID))
	activitylog.Record(c, ac.LS, subject, resp.User.ID, "LOGIN",
		fmt.Sprintf("User logged in with email: %s", resp.User.Email), nil)

	c.JSON(http.StatusOK, resp)
}

func (ac *AuthController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	uid, _ := middlewares.CurrentUserID(c)
	activitylog.Record(c, ac.LS, subject, uid, "LOGOUT", "User logged out", nil)

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ac *AuthController) Me(c *gin.Context) {
	uid, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID"})
		return
	}

	user, err := ac.AuthService.GetUserByID(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*user)).Document())
}

func (ac *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid user ID"})
		return
	}

	user, err := ac.AuthService.ChangePassword(uid, req.CurrentPassword, req.Password)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, subject, user.ID, "CHANGE_PASSWORD",
		fmt.Sprintf("Password changed for %s", user.Email), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (ac *AuthController) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, _, err := ac.AuthService.SendOTP(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}

	c.Set(middlewares.ContextUserID, float64(user.ID))
	activitylog.Record(c, ac.LS, subject, user.ID, "SEND_OTP",
		fmt.Sprintf("Sent OTP to email: %s", user.Email), nil)

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.AuthService.ResetPassword(req.Email, req.OTP, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user not found"})
		return
	}

	c.Set(middlewares.ContextUserID, float64(user.ID))
	activitylog.Record(c, ac.LS, subject, user.ID, "RESET_PASSWORD",
		fmt.Sprintf("Password reset for email: %s", user.Email), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func (ac *AuthController) GetUsers(c *gin.Context) {
	users, err := ac.AuthService.GetAllUsers()
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, jsonapi.NewBuilder().
		Many(Resources(users)).
		Meta("total", len(users)).
		Document())
}

func (ac *AuthController) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password, err := util.HashPassword(req.Password)
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	user, err := ac.AuthService.CreateUser(User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  password,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, "user", user.ID, activitylog.ActionCreate,
		fmt.Sprintf("Account created for %s", user.Email), gin.H{"role": user.Role})

	c.JSON(http.StatusCreated, jsonapi.NewBuilder().One(Resource(*user)).Document())
}

func (ac *AuthController) UpdateUser(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.AuthService.UpdateUser(id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, "user", user.ID, activitylog.ActionUpdate,
		fmt.Sprintf("Account updated for %s", user.Email), nil)

	c.JSON(http.StatusOK, jsonapi.NewBuilder().One(Resource(*user)).Document())
}

func (ac *AuthController) DeleteUser(c *gin.Context) {
	id, ok := jsonapi.ParamID(c, "id")
	if !ok {
		return
	}
	actorID, _ := middlewares.CurrentUserID(c)

	if err := ac.AuthService.DeleteUser(actorID, id); err != nil {
		jsonapi.RenderError(c, err)
		return
	}

	activitylog.Record(c, ac.LS, "user", id, activitylog.ActionDelete,
		fmt.Sprintf("Account %d deleted", id), nil)

	c.Status(http.StatusNoContent)
}
