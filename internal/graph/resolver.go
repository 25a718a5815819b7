package graph

import (
	"encoding/json"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/hashtag-app/backend/internal/auth"
	"github.com/hashtag-app/backend/internal/services"
	"github.com/hashtag-app/backend/validators"
)

// Resolver bundles the services the GraphQL schema resolves against
type Resolver struct {
	Posts   *services.PostService
	Users   *services.UserService
	Storage *services.StorageService
}

// NewResolver creates a new Resolver
func NewResolver(posts *services.PostService, users *services.UserService, storage *services.StorageService) *Resolver {
	return &Resolver{
		Posts:   posts,
		Users:   users,
		Storage: storage,
	}
}

// identity returns the caller identity attached to the request context,
// or nil for an anonymous caller
func identity(p graphql.ResolveParams) *auth.Identity {
	return auth.IdentityFromContext(p.Context)
}

// viewerID returns the caller's user id, empty for anonymous callers
func viewerID(p graphql.ResolveParams) string {
	if id := identity(p); id != nil {
		return id.ID
	}
	return ""
}

// decodeInput unpacks a GraphQL input object into a payload struct and
// runs its validation tags
func decodeInput(arg interface{}, out interface{}) error {
	raw, err := json.Marshal(arg)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	return validators.Struct(out)
}

// toggleResult converts toggle conflicts and not-found conditions into
// the result strings the clients expect; other failures propagate as
// resolver errors.
func toggleResult(ok string, err error) (interface{}, error) {
	switch {
	case err == nil:
		return ok, nil
	case errors.Is(err, services.ErrAlreadyLiked),
		errors.Is(err, services.ErrNotLiked),
		errors.Is(err, services.ErrAlreadyBookmarked),
		errors.Is(err, services.ErrNotBookmarked):
		return err.Error(), nil
	default:
		return nil, err
	}
}
