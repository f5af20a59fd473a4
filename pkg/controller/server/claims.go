package server

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stigbase/saver/pkg/domain/model"
	"github.com/stigbase/saver/pkg/domain/types"
)

// callerFromRequest extracts the actor for audit records from the bearer
// token's claims. The token signature is verified at the gateway in front of
// this service, so the claims are read without verification here. A missing
// or unreadable token yields a zero identity and the operation proceeds.
func callerFromRequest(r *http.Request) model.CallerIdentity {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return model.CallerIdentity{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return model.CallerIdentity{}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.CallerIdentity{}
	}

	return model.CallerIdentity{
		ID:       types.UserID(claimString(claims, "sub")),
		FullName: claimString(claims, "name"),
		Username: claimString(claims, "preferred_username"),
		Email:    claimString(claims, "email"),
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
