package auth

import (
	"context"
	"errors"
	"strings"

	"motofix/internal/domain"
	"motofix/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	users    UserRepository
	profiles ProfileCreator
	tokens   TokenIssuer
}

func NewService(users UserRepository, profiles ProfileCreator, tokens TokenIssuer) *Service {
	return &Service{users: users, profiles: profiles, tokens: tokens}
}

// Register creates the account and, for mechanics, the dispatch profile.
// New mechanics start unavailable: they opt in to the work queue once
// they are ready to take jobs.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, string, error) {
	role := domain.UserRole(req.Role)
	if role != domain.RoleCustomer && role != domain.RoleMechanic {
		return nil, "", ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	if role == domain.RoleMechanic {
		spec := domain.Specialization(req.Specialization)
		if spec == "" {
			spec = domain.SpecAll
		}
		profile := &domain.MechanicProfile{
			UserID:            u.ID,
			Specialization:    spec,
			YearsOfExperience: req.YearsOfExperience,
			IsAvailable:       false,
		}
		if err := s.profiles.CreateProfile(ctx, profile); err != nil {
			return nil, "", err
		}
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, string, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}
