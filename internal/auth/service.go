package auth

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"school-cms-api/config"
	"school-cms-api/internal/apperr"
	"school-cms-api/internal/repository"
	"school-cms-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const otpTTL = 10 * time.Minute

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPExpired         = errors.New("OTP expired")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	DB  *gorm.DB
	CFG *config.Config
	Now func() time.Time
}

var sendMail = smtp.SendMail

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) CreateUser(user User) (*User, error) {
	if user.Role == "" {
		user.Role = RoleEditor
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if err := s.DB.Create(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Duplicate("an account with this email already exists")
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) GetUser(email string) (*User, error) {
	var user User
	result := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *AuthService) GetUserByID(id uint) (*User, error) {
	var user User
	result := s.DB.Where("id = ?", id).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

func (s *AuthService) GetAllUsers() ([]User, error) {
	users := []User{}
	if err := s.DB.Order("name ASC").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *AuthService) UpdateUser(id uint, req UpdateUserRequest) (*User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
		if strings.TrimSpace(*req.AvatarURL) == "" {
			user.AvatarURL = nil
		}
	}
	if req.Password != nil {
		hashed, err := util.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.DB.Save(user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperr.Duplicate("an account with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes id on behalf of actorID. Nobody can delete their own account.
func (s *AuthService) DeleteUser(actorID, id uint) error {
	if actorID == id {
		return apperr.Invalid("id", "you cannot delete your own account")
	}
	res := s.DB.Delete(&User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// Login checks the credentials, stamps last_login_at and issues a bearer token.
func (s *AuthService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.GetUser(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := util.VerifyPassword(password, user.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.DB.Model(&User{}).Where("id = ?", user.ID).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	token, exp, err := s.IssueToken(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: token, ExpiresAt: exp, User: ToResponse(*user)}, nil
}

func (s *AuthService) IssueToken(user User) (string, time.Time, error) {
	ttl := 24
	secret := ""
	if s.CFG != nil {
		secret = s.CFG.JWTSecret
		if s.CFG.TokenTTLHours > 0 {
			ttl = s.CFG.TokenTTLHours
		}
	}
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET is not configured")
	}

	now := s.now()
	exp := now.Add(time.Duration(ttl) * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (s *AuthService) ChangePassword(id uint, current, next string) (*User, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if err := util.VerifyPassword(current, user.Password); err != nil {
		return nil, apperr.Invalid("current_password", "does not match")
	}
	hashed, err := util.HashPassword(next)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(&User{}).Where("id = ?", id).Update("password", hashed).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) SendOTP(email string) (*User, string, error) {
	user, err := s.GetUser(email)
	if err != nil {
		return nil, "", ErrUserNotFound
	}

	otp := fmt.Sprintf("%06d", util.RandomInt(100000, 999999))

	record := OTP{
		Email:     user.Email,
		Code:      otp,
		CreatedAt: s.now(),
	}
	if err := s.DB.Create(&record).Error; err != nil {
		return nil, "", err
	}

	from := s.CFG.GmailUser
	password := s.CFG.GmailPass
	to := []string{user.Email}
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	subject := "Password reset code"
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your code to reset the password is: %s\n\n"+
			"This code will expire in 10 minutes.\n\n"+
			"Thank you.",
		user.Name,
		otp,
	)

	// headers and body must be separated with \r\n
	message := []byte(fmt.Sprintf(
		"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s",
		user.Email,
		subject,
		body,
	))

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := sendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		zap.L().Warn("failed to send OTP email", zap.String("email", user.Email), zap.Error(err))
		return nil, "", errors.New("failed to send OTP email")
	}

	return user, otp, nil
}

// ResetPassword verifies the latest matching OTP, sets the new password and burns every OTP
// issued to the address.
func (s *AuthService) ResetPassword(email, code, newPassword string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var otp OTP
	if err := s.DB.Where("email = ? AND code = ?", email, code).
		Order("created_at desc").First(&otp).Error; err != nil {
		return nil, ErrInvalidOTP
	}

	user, err := s.GetUser(email)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if s.now().Sub(otp.CreatedAt) > otpTTL {
		return nil, ErrOTPExpired
	}

	hashed, err := util.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&User{}).Where("id = ?", user.ID).Update("password", hashed).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", email).Delete(&OTP{}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) CountUsers() (int64, error) {
	var n int64
	err := s.DB.Model(&User{}).Count(&n).Error
	return n, err
}
