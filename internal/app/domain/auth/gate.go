package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/FACorreiaa/go-edudash/internal/app/models"
	"github.com/FACorreiaa/go-edudash/internal/app/observability/metrics"
	"github.com/FACorreiaa/go-edudash/internal/pkg/session"
)

// Outcome is the result of one gate check.
type Outcome int

const (
	Unauthenticated Outcome = iota
	Expired
	RoleMismatch
	Authorized
)

func (o Outcome) String() string {
	switch o {
	case Expired:
		return "expired"
	case RoleMismatch:
		return "role_mismatch"
	case Authorized:
		return "authorized"
	default:
		return "unauthenticated"
	}
}

// Decision carries the outcome of a check and what it was based on.
type Decision struct {
	Outcome Outcome
	Role    models.Role
	Claims  *Claims
	// Cleared is set when the check wiped the store.
	Cleared bool
	Err     error
}

func (d Decision) Allowed() bool {
	return d.Outcome == Authorized
}

// Gate decides whether a stored session may enter a route gated to a role.
// It holds no state between checks: the token is decoded every time.
type Gate struct {
	decoder *Decoder
	logger  *zap.Logger
	now     func() time.Time
}

func NewGate(decoder *Decoder, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{decoder: decoder, logger: logger, now: time.Now}
}

// Check runs the gate for required against store:
//
//	no token          -> Unauthenticated, store untouched
//	undecodable token -> Unauthenticated, store cleared
//	exp <= now        -> Expired, store cleared
//	role != required  -> RoleMismatch, store untouched
//	otherwise         -> Authorized
//
// Only the token's role claim counts; a token without one never matches.
func (g *Gate) Check(ctx context.Context, store session.Store, required models.Role) Decision {
	d := g.check(store, required)
	metrics.Count(ctx, metrics.Get().GateDecisionsTotal, "outcome", d.Outcome.String(), "role", string(required))
	if d.Outcome != Authorized {
		g.logger.Debug("Gate denied access",
			zap.String("required_role", string(required)),
			zap.String("outcome", d.Outcome.String()),
			zap.Bool("cleared", d.Cleared),
			zap.Error(d.Err))
	}
	return d
}

func (g *Gate) check(store session.Store, required models.Role) Decision {
	sess := store.Read()
	if sess.Token == "" {
		return Decision{Outcome: Unauthenticated, Err: models.ErrUnauthenticated}
	}

	claims, err := g.decoder.Decode(sess.Token)
	if err != nil {
		return g.deny(store, Decision{Outcome: Unauthenticated, Err: err})
	}

	if !claims.ExpiresAt.Time.After(g.now()) {
		return g.deny(store, Decision{Outcome: Expired, Claims: claims, Err: models.ErrTokenExpired})
	}

	role := models.Role(claims.Role)
	if role != required {
		return Decision{Outcome: RoleMismatch, Role: role, Claims: claims, Err: models.ErrRoleMismatch}
	}
	return Decision{Outcome: Authorized, Role: role, Claims: claims}
}

// deny clears the store for auth failures. A failed clear is logged; the
// decision stays a denial either way.
func (g *Gate) deny(store session.Store, d Decision) Decision {
	if err := store.Clear(); err != nil {
		g.logger.Error("Failed to clear session after auth failure", zap.Error(err))
		d.Err = errors.Join(d.Err, err)
		return d
	}
	d.Cleared = true
	return d
}
