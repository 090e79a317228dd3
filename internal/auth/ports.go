package auth

type AuthServicePort interface {
	CreateUser(user User) (*User, error)
	GetUser(email string) (*User, error)
	GetUserByID(id uint) (*User, error)
	GetAllUsers() ([]User, error)
	UpdateUser(id uint, req UpdateUserRequest) (*User, error)
	DeleteUser(actorID, id uint) error
	Login(email, password string) (*LoginResponse, error)
	ChangePassword(id uint, current, next string) (*User, error)
	SendOTP(email string) (*User, string, error)
	ResetPassword(email, code, newPassword string) (*User, error)
}

var _ AuthServicePort = (*AuthService)(nil)
