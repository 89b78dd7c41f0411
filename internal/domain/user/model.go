package user

import "context"

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	UserID    string
	Email     string
	Name      string
	AvatarURL string
}

// Identity is what prediction rows copy as display fields.
type Identity struct {
	UserID    string
	Name      string
	AvatarURL string
}

func (p Principal) Identity() Identity {
	name := p.Name
	if name == "" {
		name = p.Email
	}
	return Identity{
		UserID:    p.UserID,
		Name:      name,
		AvatarURL: p.AvatarURL,
	}
}

// TokenVerifier resolves bearer tokens against the identity provider.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (Principal, error)
}
