package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/travelmate/internal/common"
	"github.com/dmitrijs2005/travelmate/internal/logging"
	"github.com/dmitrijs2005/travelmate/internal/server/models"
)

// Failure is the client-facing reason a request was not authenticated.
type Failure string

const (
	FailureNone         Failure = ""
	FailureNoToken      Failure = "No token provided"
	FailureInvalidToken Failure = "Invalid or expired token"
	FailureUserNotFound Failure = "User not found"
	FailureInternal     Failure = "Authentication failed"
)

// UserLookup loads a user by id. It returns common.ErrorNotFound when the
// user does not exist.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AuthResult is the outcome of Gate.Authenticate.
type AuthResult struct {
	Principal *models.Principal
	OK        bool
	Failure   Failure
}

// Gate turns an Authorization header into a principal. The user is re-read
// on every call, so renamed users are seen immediately and deleted users
// are locked out even while their token is still valid.
type Gate struct {
	tokens *TokenService
	users  UserLookup
	logger logging.Logger
}

func NewGate(tokens *TokenService, users UserLookup, logger logging.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, logger: logger.With("module", "auth_gate")}
}

func (g *Gate) Authenticate(ctx context.Context, header string) AuthResult {
	token, ok := BearerToken(header)
	if !ok {
		return AuthResult{Failure: FailureNoToken}
	}

	res := g.tokens.Verify(token)
	if !res.OK {
		g.logger.Debug(ctx, "token rejected", "reason", res.Reason.String())
		return AuthResult{Failure: FailureInvalidToken}
	}

	user, err := g.users.GetByID(ctx, res.Claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return AuthResult{Failure: FailureUserNotFound}
		}
		g.logger.Error(ctx, "principal lookup failed", "user_id", res.Claims.UserID, "error", err)
		return AuthResult{Failure: FailureInternal}
	}

	return AuthResult{Principal: user.Principal(), OK: true}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, common.BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
