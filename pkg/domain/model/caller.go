package model

import "github.com/stigbase/saver/pkg/domain/types"

// CallerIdentity is the actor behind a mutating request. A zero value means
// the caller could not be identified; operations still proceed and audit
// records carry empty actor fields.
type CallerIdentity struct {
	ID       types.UserID
	FullName string
	Username string
	Email    string `masq:"secret"`
}
