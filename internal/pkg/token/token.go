package token

import (
	"facility-reservation/internal/pkg/authz"
	"facility-reservation/internal/pkg/config"
	"facility-reservation/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errs.New("invalid or expired token")
	ErrBadClaims    = errs.New("token claims are malformed")
)

// Claims mirror what the campus identity service signs: subject, the actor's
// organizational unit, and granted capability names.
type Claims struct {
	Unit         string   `json:"unit"`
	Capabilities []string `json:"caps"`
	jwt.RegisteredClaims
}

// Validator turns bearer tokens into actors. Identity and capability
// management live in the identity service; this side only verifies.
type Validator struct {
	secret []byte
}

func NewValidator(cfg config.JWTConfig) *Validator {
	return &Validator{secret: []byte(cfg.Secret)}
}

func (v *Validator) Validate(tokenString string) (authz.Actor, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return authz.Actor{}, errs.Mark(err, ErrInvalidToken)
	}

	actorID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authz.Actor{}, errs.Mark(err, ErrBadClaims)
	}

	actions := make([]authz.Action, len(claims.Capabilities))
	for i, c := range claims.Capabilities {
		actions[i] = authz.Action(c)
	}
	return authz.NewActor(actorID, claims.Unit, actions), nil
}

// Issue signs a token for the given actor. Used by tests and local tooling;
// production tokens come from the identity service.
func (v *Validator) Issue(actor authz.Actor) (string, error) {
	caps := actor.Capabilities()
	capStrings := make([]string, len(caps))
	for i, c := range caps {
		capStrings[i] = string(c)
	}

	claims := Claims{
		Unit:         actor.Unit,
		Capabilities: capStrings,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: actor.ID.String(),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(v.secret)
	if err != nil {
		return "", errs.Wrap(err, "failed to sign token")
	}
	return signed, nil
}
