package services

import "errors"

// Failure conditions surfaced by the services. The GraphQL layer converts
// toggle conflicts and not-found conditions into the result strings the
// clients expect; everything else propagates as a resolver error.
var (
	ErrUnauthenticated    = errors.New("Unauthenticated")
	ErrAlreadyLiked       = errors.New("Already liked")
	ErrNotLiked           = errors.New("You have not liked this post")
	ErrAlreadyBookmarked  = errors.New("Already bookmarked")
	ErrNotBookmarked      = errors.New("You have not bookmarked this post")
	ErrSelfFollow         = errors.New("You can not follow your account")
	ErrAlreadyFollowing   = errors.New("Already following")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrGoogleOnlyAccount  = errors.New("Account created with Google")
	ErrUserExists         = errors.New("User already exists")
	ErrPostNotFound       = errors.New("Post not found")
	ErrUnsupportedImage   = errors.New("Unsupported image type")
)
