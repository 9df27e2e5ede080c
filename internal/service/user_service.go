package service

import (
	"context"
	"errors"
	"strings"

	"mediarate/internal/auth"
	"mediarate/internal/models"
	"mediarate/internal/repository"

	"gorm.io/gorm"
)

// UserService handles registration and the login/logout session flow.
type UserService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	tx       repository.TxRunner
	tokens   *TokenService
}

func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	tx repository.TxRunner,
	tokens *TokenService,
) *UserService {
	return &UserService{
		users:    users,
		profiles: profiles,
		tx:       tx,
		tokens:   tokens,
	}
}

// Register creates a user and their profile atomically and returns the new
// user id.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	digest, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	var userID string
	err = s.tx.InTx(ctx, func(r *repository.Repos) error {
		user := &models.User{
			Username:       username,
			PasswordDigest: digest,
		}
		if err := r.Users.Create(ctx, user); err != nil {
			// the unique index catches registration races the lookup missed
			if errors.Is(err, repository.ErrDuplicateKey) {
				return ErrUsernameTaken
			}
			return err
		}

		profile := &models.Profile{UserID: user.ID}
		if err := r.Profiles.Create(ctx, profile); err != nil {
			return err
		}

		user.ProfileID = profile.ID
		if err := r.Users.Update(ctx, user); err != nil {
			return err
		}

		userID = user.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return userID, nil
}

// Login verifies credentials, bumps the login counter, and returns the user's
// bearer token. Repeated logins reuse the live token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// dummy compare so unknown and known usernames take the same time
			auth.VerifyPassword("$2a$10$7EqJtq98hPqEX7fNZaFWoOHi6VbU5h6K9v8u5rO0m3j0h6dX5r8e", password)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := auth.VerifyPassword(user.PasswordDigest, password); err != nil {
		return "", ErrInvalidCredentials
	}

	profile, err := s.profiles.GetByOwner(ctx, user.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	if profile != nil {
		profile.NumberOfLogins++
		if err := s.profiles.Update(ctx, profile); err != nil {
			return "", err
		}
	}

	return s.tokens.Issue(ctx, user.Username, user.ID)
}

// Logout revokes the presented token. Reports whether a session existed.
func (s *UserService) Logout(ctx context.Context, token string) bool {
	return s.tokens.Revoke(ctx, token)
}

// Profile returns the profile owned by the user.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpdateProfile changes the user-editable profile fields. Nil means "leave
// unchanged".
func (s *UserService) UpdateProfile(ctx context.Context, userID string, sobriquet, aboutMe *string) error {
	profile, err := s.profiles.GetByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	if sobriquet != nil {
		profile.Sobriquet = *sobriquet
	}
	if aboutMe != nil {
		profile.AboutMe = *aboutMe
	}
	return s.profiles.Update(ctx, profile)
}
