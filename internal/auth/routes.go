package auth

import (
	"school-cms-api/internal/activitylog"
	"school-cms-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, authService AuthServicePort, ls activitylog.Recorder, secureCookies bool) {
	authController := &AuthController{AuthService: authService, LS: ls, SecureCookies: secureCookies}

	publicGroup := r.Group("/api/admin/v1/auth")
	{
		publicGroup.POST("/login", authController.Login)
		publicGroup.POST("/forgot-password", authController.SendOTP)
		publicGroup.POST("/reset-password", authController.ResetPassword)
	}

	adminGroup := r.Group("/api/admin/v1")
	adminGroup.Use(middlewares.AuthMiddleware())
	{
		adminGroup.GET("/auth/me", authController.Me)
		adminGroup.POST("/auth/logout", authController.Logout)
		adminGroup.PUT("/auth/password", authController.ChangePassword)

		users := adminGroup.Group("/users")
		users.Use(middlewares.CurrentRole(storedRole(authService)), middlewares.RequireRole(RoleAdmin))
		{
			users.GET("", authController.GetUsers)
			users.POST("", authController.CreateUser)
			users.PUT("/:id", authController.UpdateUser)
			users.DELETE("/:id", authController.DeleteUser)
		}
	}
}

func storedRole(svc AuthServicePort) middlewares.RoleLookup {
	return func(id uint) (string, error) {
		user, err := svc.GetUserByID(id)
		if err != nil {
			return "", err
		}
		return user.Role, nil
	}
}
