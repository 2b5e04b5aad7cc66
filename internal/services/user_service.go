package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/finmate/finmate-server/internal/apperrors"
	"github.com/finmate/finmate-server/internal/models"
	"github.com/finmate/finmate-server/internal/repository"
	"github.com/finmate/finmate-server/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for accounts.
type UserService struct {
	repo *repository.UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterInput carries the registration payload. Company accounts must
// name their company.
type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

// RegisterUser validates the input, hashes the password and stores the new
// account, then sends the verification email.
func (s *UserService) RegisterUser(ctx context.Context, input RegisterInput) (*models.User, error) {
	logrus.Info("Registering new user")

	if input.Name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, apperrors.NewValidation("email", "invalid email format")
	}
	if len(input.Password) < 6 {
		return nil, apperrors.NewValidation("password", "must be at least 6 characters")
	}
	if input.Role == "" {
		input.Role = models.RolePersonal
	}
	if input.Role != models.RolePersonal && input.Role != models.RoleCompany {
		return nil, apperrors.NewValidation("role", "must be PERSONAL or COMPANY")
	}
	if input.Role == models.RoleCompany && input.CompanyName == "" {
		return nil, apperrors.NewValidation("company_name", "is required for business accounts")
	}

	existing, _ := s.repo.GetUserByEmail(ctx, input.Email)
	if existing != nil {
		logrus.WithField("email", input.Email).Warn("Email already in use")
		return nil, apperrors.NewValidation("email", "already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:           input.Name,
		Email:          input.Email,
		HashedPassword: string(hashedPwd),
		Role:           input.Role,
		CompanyName:    input.CompanyName,
		VerifyToken:    uuid.NewString(),
		IsVerified:     false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, apperrors.NewStorage("create user", err)
	}

	verificationLink := fmt.Sprintf("http://localhost:8080/users/verify?token=%s", user.VerifyToken)
	emailBody := fmt.Sprintf("Welcome to FinMate!\n\nPlease verify your email by clicking the link below:\n%s", verificationLink)
	if err := email.SendEmail(user.Email, "Email Verification", emailBody); err != nil {
		// Registration still succeeds; the client can request a resend.
		logrus.WithError(err).Warn("Failed to send verification email")
	}

	logrus.WithFields(logrus.Fields{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser checks the credentials and returns the account.
func (s *UserService) AuthenticateUser(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return user, nil
}

// VerifyEmail marks the account matching the token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.NewValidation("token", "is required")
	}

	user, err := s.repo.GetUserByVerifyToken(ctx, token)
	if err != nil {
		return apperrors.NewNotFound("verification token")
	}
	if err := s.repo.MarkVerified(ctx, user.ID); err != nil {
		return apperrors.NewStorage("verify user", err)
	}
	return nil
}

// GetUser fetches an account by ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewNotFound("user")
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, apperrors.NewNotFound("user")
	}
	return user, nil
}

// UpdateProfile changes the account's display name and, for business
// accounts, the company name.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, name, companyName string) (*models.User, error) {
	if name == "" {
		return nil, apperrors.NewValidation("name", "is required")
	}

	set := bson.M{"name": name}
	if companyName != "" {
		set["company_name"] = companyName
	}
	if err := s.repo.UpdateUser(ctx, id, set); err != nil {
		return nil, apperrors.NewStorage("update user", err)
	}
	return s.repo.GetUserByID(ctx, id)
}
