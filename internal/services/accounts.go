package services

import (
	"context"
	"errors"

	"github.com/anonto42/socialgraph/backend/internal/models"
	"github.com/anonto42/socialgraph/backend/internal/repositories"
	"github.com/anonto42/socialgraph/backend/pkg/errorx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService handles registration, login and profile updates.
type AccountService struct {
	users  repositories.UserRepository
	tokens *TokenManager
	log    *zap.Logger
}

func NewAccountService(repos Repositories, tokens *TokenManager, log *zap.Logger) *AccountService {
	return &AccountService{users: repos.Users, tokens: tokens, log: log}
}

// Session is a user together with a freshly issued token.
type Session struct {
	User  *models.User
	Token string
}

var errUsernameTaken = errorx.Error{
	Kind:    errorx.Validation,
	Message: errorx.ErrUsernameTaken.Message,
	Fields:  map[string]string{"username": errorx.ErrUsernameTaken.Message},
}

// Register creates the account. A concurrent registration that wins the race
// on the unique username index is reported the same as a taken name.
func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*Session, error) {
	if _, err := s.users.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, errUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{Username: req.Username, Email: req.Email, Password: string(hashed)}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errUsernameTaken
		}
		return nil, err
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return s.session(user)
}

func (s *AccountService) Login(ctx context.Context, req models.LoginRequest) (*Session, error) {
	user, err := s.users.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errorx.ErrInvalidCredentials
	}
	return s.session(user)
}

// FirebaseLogin maps a verified Firebase account onto a local user, linking
// an unlinked account with the same email or creating the user on first
// sight, and issues a local token.
func (s *AccountService) FirebaseLogin(ctx context.Context, uid, email, name string) (*Session, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err == nil {
		return s.session(user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if email != "" {
		user, err = s.users.GetUserByEmail(ctx, email)
		switch {
		case err == nil && user.FirebaseUID == nil:
			user.FirebaseUID = &uid
			if err := s.users.UpdateUser(ctx, user); err != nil {
				return nil, err
			}
			s.log.Info("user linked to firebase", zap.Uint("user_id", user.ID))
			return s.session(user)
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	username := name
	if username == "" {
		username = email
	}
	if username == "" {
		username = uid
	}
	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		username = uid
	}

	user = &models.User{Username: username, Email: email, FirebaseUID: &uid}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("user created from firebase", zap.Uint("user_id", user.ID))
	return s.session(user)
}

func (s *AccountService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}

// UpdateProfile changes caller's own profile fields.
func (s *AccountService) UpdateProfile(ctx context.Context, caller *models.Identity, req models.UpdateProfileRequest) (*models.User, error) {
	if err := MemberPolicy.Check(caller, OpWrite); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, notFoundAs(err, errorx.ErrUserNotFound)
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.ProfilePicture != nil {
		user.ProfilePicture = *req.ProfilePicture
	}
	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	users, err := s.users.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out, nil
}
