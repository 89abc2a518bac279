package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
)

// Claims is the part of the backend's access token the front end reads.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Decoder turns a stored token into claims. Without a secret the token is
// only decoded; the backend stays the party that verifies signatures. With a
// secret, HMAC signatures are checked too. Expiry is never validated here:
// the gate compares it itself so it can tell Expired from malformed.
type Decoder struct {
	secret []byte
	parser *jwt.Parser
}

func NewDecoder(secret string) *Decoder {
	d := &Decoder{}
	if secret != "" {
		d.secret = []byte(secret)
		d.parser = jwt.NewParser(
			jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
			jwt.WithoutClaimsValidation(),
		)
	} else {
		d.parser = jwt.NewParser(jwt.WithoutClaimsValidation())
	}
	return d
}

// Verifies reports whether signatures are checked.
func (d *Decoder) Verifies() bool {
	return d.secret != nil
}

// Decode parses token. Any failure, including a token without an exp claim,
// wraps models.ErrMalformedToken.
func (d *Decoder) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	var err error
	if d.secret != nil {
		_, err = d.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return d.secret, nil
		})
	} else {
		_, _, err = d.parser.ParseUnverified(token, claims)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", models.ErrMalformedToken)
	}
	return claims, nil
}
