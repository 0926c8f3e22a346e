package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Nhlapo2003/wings-Application/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult carries the outcome of a login attempt. A wrong password
// is a result, not an error; errors are reserved for infrastructure
// failures.
type AuthResult struct {
	Authenticated bool
	UserID        int
	Message       string
}

type UserUseCase interface {
	RegisterUser(name, email, password string) (*domain.User, error)
	AuthenticateUser(email, password string) (*AuthResult, error)
	CreateUser(name, email, password string) (*domain.User, error)
	UpdateUser(id int, name, email, password string) (*domain.User, error)
	DeleteUser(id int) error
	ListUsers() ([]domain.User, error)
}

type userUseCase struct {
	userRepo domain.UserRepository
	log      *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, logger *logrus.Logger) UserUseCase {
	return &userUseCase{
		userRepo: repo,
		log:      logger,
	}
}

// RegisterUser handles signup: validation, password hashing, persistence.
func (uc *userUseCase) RegisterUser(name, email, password string) (*domain.User, error) {
	uc.log.Infof("Use Case: Attempting registration for email: %s", email)
	return uc.createUser(name, email, password)
}

// CreateUser backs the staff-facing POST /users form; same rules as signup.
func (uc *userUseCase) CreateUser(name, email, password string) (*domain.User, error) {
	uc.log.Infof("Use Case: Attempting to create user with email: %s", email)
	return uc.createUser(name, email, password)
}

func (uc *userUseCase) createUser(name, email, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		uc.log.Warn("Use Case: User creation failed - empty name")
		return nil, fmt.Errorf("user name cannot be empty: %w", domain.ErrValidation)
	}
	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: User creation failed - invalid email format: %s", email)
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrValidation)
	}
	if password == "" {
		uc.log.Warn("Use Case: User creation failed - empty password")
		return nil, fmt.Errorf("password cannot be empty: %w", domain.ErrValidation)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	createdUser, err := uc.userRepo.CreateUser(newUser)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user %s: %v", email, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User created successfully. ID: %d, Email: %s", createdUser.ID, createdUser.Email)
	return createdUser, nil
}

// AuthenticateUser handles login. The backend's login contract is a
// plain message, so failed credentials come back as an unauthenticated
// result with a message rather than an error.
func (uc *userUseCase) AuthenticateUser(email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	if !isValidEmail(email) || password == "" {
		uc.log.Warnf("Use Case: Auth failed - invalid email or empty password for %s", email)
		return &AuthResult{Authenticated: false, Message: "Invalid email or password"}, nil
	}

	user, err := uc.userRepo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			uc.log.Warnf("Use Case: Auth failed - user not found: %s", email)
			return &AuthResult{Authenticated: false, Message: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error retrieving user %s during auth: %v", email, err)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			uc.log.Warnf("Use Case: Auth failed - incorrect password for user %s (ID: %d)", email, user.ID)
			return &AuthResult{Authenticated: false, Message: "Invalid email or password"}, nil
		}
		uc.log.Errorf("Use Case: Error comparing password hash for user %s: %v", email, err)
		return nil, fmt.Errorf("internal error during authentication: %w", err)
	}

	uc.log.Infof("Use Case: Authentication successful for user %s (ID: %d)", email, user.ID)
	return &AuthResult{Authenticated: true, UserID: user.ID, Message: "Success"}, nil
}

func (uc *userUseCase) UpdateUser(id int, name, email, password string) (*domain.User, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid user ID: %d", id)
		return nil, fmt.Errorf("invalid user ID: %w", domain.ErrValidation)
	}

	current, err := uc.userRepo.GetUserByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: User ID %d not found for update: %v", id, err)
		return nil, err
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	} else if !isValidEmail(email) {
		uc.log.Warnf("Use Case: User update failed - invalid email format: %s", email)
		return nil, fmt.Errorf("invalid email format: %w", domain.ErrValidation)
	}

	passwordHash := current.PasswordHash
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			uc.log.Errorf("Use Case: Failed to hash password during update for user %d: %v", id, err)
			return nil, fmt.Errorf("internal error processing password: %w", err)
		}
		passwordHash = string(hashed)
	}

	updated, err := uc.userRepo.UpdateUser(id, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update user %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User updated successfully: ID %d", updated.ID)
	return updated, nil
}

func (uc *userUseCase) DeleteUser(id int) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid user ID: %d", id)
		return fmt.Errorf("invalid user ID: %w", domain.ErrValidation)
	}
	uc.log.Infof("Use Case: Attempting to delete user ID %d", id)
	err := uc.userRepo.DeleteUser(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete user ID %d: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: User deleted successfully for ID %d", id)
	return nil
}

func (uc *userUseCase) ListUsers() ([]domain.User, error) {
	uc.log.Info("Use Case: Attempting to list users")
	users, err := uc.userRepo.ListUsers()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users: %v", err)
		return nil, fmt.Errorf("could not retrieve users: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d users", len(users))
	return users, nil
}

// isValidEmail provides a basic check for email format.
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}
	domainParts := strings.Split(parts[1], ".")
	return len(domainParts) >= 2 && domainParts[0] != "" && domainParts[len(domainParts)-1] != ""
}
