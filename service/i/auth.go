package i

import (
	"github.com/beka-birhanu/vinom-maze/identity"
)

// Authenticator registers and signs in maze curators.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*identity.Account, string, error)
}
