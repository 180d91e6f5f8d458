package services

import (
	"tactical-server/internal/errs"
	"tactical-server/internal/models"
	"tactical-server/internal/repositories"
	"tactical-server/internal/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db           *gorm.DB
	userRepo     *repositories.UserRepository
	activityRepo *repositories.ActivityRepository
	chatRepo     *repositories.ChatRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:           db,
		userRepo:     repositories.NewUserRepository(db),
		activityRepo: repositories.NewActivityRepository(db),
		chatRepo:     repositories.NewChatRepository(db),
	}
}

func (s *UserService) Create(payload map[string]interface{}) (*models.User, error) {
	n, err := validate(validation.UserSchema, payload, false)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(n.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Dependency("hash password", err)
	}

	user := &models.User{
		Email:    n.String("email"),
		Username: n.String("username"),
		Password: string(hash),
		Role:     n.String("role"),
		Avatar:   n.String("avatar"),
		IsActive: n.Bool("isActive"),
	}
	if t, ok := n.Time("lastLogin"); ok {
		user.LastLogin = &t
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, translate("create user", "user", err, "email", "username")
	}
	return user, nil
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, translate("get user", "user", err)
	}
	return user, nil
}

func (s *UserService) List(role string, isActive *bool) ([]models.User, error) {
	users, err := s.userRepo.List(role, isActive)
	if err != nil {
		return nil, translate("list users", "user", err)
	}
	return users, nil
}

func (s *UserService) Update(id uuid.UUID, payload map[string]interface{}) (*models.User, error) {
	n, err := validate(validation.UserSchema, payload, true)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(id); err != nil {
		return nil, translate("update user", "user", err)
	}

	updates := buildUpdates(validation.UserSchema, n)
	if pw, ok := updates["password"].(string); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, errs.Dependency("hash password", err)
		}
		updates["password"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.userRepo.Update(id, updates); err != nil {
			return nil, translate("update user", "user", err, "email", "username")
		}
	}
	return s.Get(id)
}

// Delete removes a user and nulls the sender/user references held by chat
// messages and activity logs, inside one transaction.
func (s *UserService) Delete(id uuid.UUID) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.chatRepo.NullifyRef(tx, "sender_id", id); err != nil {
			return err
		}
		if err := s.activityRepo.NullifyRef(tx, "user_id", id); err != nil {
			return err
		}
		return s.userRepo.Delete(tx, id)
	})
	return translate("delete user", "user", err)
}
