package service

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrProfileNotFound = errors.New("profile not found")
	ErrMediaNotFound   = errors.New("media entry not found")
	ErrRatingNotFound  = errors.New("rating not found")

	ErrMediaExists = errors.New("media entry already exists")

	ErrAlreadyLiked = errors.New("rating already liked by this user")
	ErrNotLiked     = errors.New("rating not liked by this user")

	ErrNotOwner        = errors.New("only the media entry owner may approve ratings")
	ErrAlreadyApproved = errors.New("rating is already publicly visible")
)
