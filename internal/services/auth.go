package services

import (
	"errors"
	"time"

	"github.com/reflectboard/server/internal/config"
	"github.com/reflectboard/server/internal/models"
	"github.com/reflectboard/server/internal/utils"
	"github.com/reflectboard/server/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Team      string `json:"team"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string              `json:"token"`
	User  *models.UserProfile `json:"user"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.UserProfile, error) {
	var count int64
	s.db.Model(&models.UserProfile{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.UserProfile{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Team:      req.Team,
		Role:      "user",
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}

	LogInfo("auth", "register", "new user registered: "+user.Email, &user.ID, nil)
	return user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.UserProfile
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		LogWarning("auth", "login", "failed login attempt: "+req.Email, nil, nil)
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.cfg.JWT.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.db.Model(&user).Update("last_login", &now)
	user.LastLogin = &now

	return &LoginResponse{Token: token, User: &user}, nil
}

func (s *AuthService) GetUserByID(id string) (*models.UserProfile, error) {
	var user models.UserProfile
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAdminIfNotExists seeds the default admin account on first boot.
func (s *AuthService) CreateAdminIfNotExists() error {
	var count int64
	s.db.Model(&models.UserProfile{}).Where("role = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("admin123")
	if err != nil {
		return err
	}

	admin := &models.UserProfile{
		Email:     "admin@reflectboard.local",
		Password:  hashed,
		FirstName: "System",
		LastName:  "Admin",
		Role:      "admin",
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	logger.Warn().Msg("created default admin account admin@reflectboard.local, change the password immediately")
	return nil
}
