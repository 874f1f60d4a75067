package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/identity"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const tokenTTL = 24 * time.Hour

// Auth registers curators and issues their access tokens.
type Auth struct {
	accountRepo i.AccountRepo
	tokenizer   i.Tokenizer
}

// NewAuthService creates an Auth service.
func NewAuthService(accountRepo i.AccountRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if accountRepo == nil || tokenizer == nil {
		return nil, errors.New("auth service needs an account repo and a tokenizer")
	}
	return &Auth{
		accountRepo: accountRepo,
		tokenizer:   tokenizer,
	}, nil
}

// Register creates a new curator account.
func (a *Auth) Register(username, password string) error {
	if _, err := a.accountRepo.ByUsername(username); err == nil {
		return i.ErrUsernameConflict
	} else if !errors.Is(err, i.ErrAccountNotFound) {
		return err
	}

	account, err := identity.NewAccount(identity.AccountConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return err
	}

	return a.accountRepo.Save(account)
}

// SignIn checks the credentials and returns the account with a fresh token.
func (a *Auth) SignIn(username, password string) (*identity.Account, string, error) {
	account, err := a.accountRepo.ByUsername(username)
	if err != nil {
		return nil, "", identity.ErrWrongCredentials
	}

	if !account.VerifyPassword(password) {
		return nil, "", identity.ErrWrongCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"accountID": account.ID,
		"username":  account.Username,
	}, tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return account, token, nil
}
