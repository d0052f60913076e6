package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/mlevshin/authgate/internal/client/api"
	"github.com/mlevshin/authgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for an email and password and attempts to create
// a new account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.Register(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrEmailAlreadyTaken) {
			log.Printf("Email already taken")
			return err
		}
		log.Printf("Registration unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Printf("Success! User id: %s\n", user.ID)
	return nil
}

// Login prompts the user for credentials and tries to authenticate. On
// success the refresh code is remembered for later refresh and revoke
// commands. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	pair, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			log.Printf("Invalid email or password")
			return err
		}
		log.Printf("Login unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = email
	a.refreshToken = pair.RefreshToken
	log.Printf("Login successfull, access token valid until %s", pair.AccessTokenExpiresAt)
	return nil
}

// ClientLogin prompts for a machine-client id and secret and prints the
// resulting access token. Nothing is remembered: client tokens carry no
// refresh code.
func (a *App) ClientLogin(ctx context.Context) error {
	clientID, err := getSimpleText(a.reader, "Enter client id", os.Stdout)
	if err != nil {
		return err
	}

	secret, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(secret)

	token, err := a.api.LoginByClient(ctx, clientID, string(secret))
	if err != nil {
		log.Printf("Client login unsuccessfull: %s", err.Error())
		return err
	}

	fmt.Printf("Access token (valid until %s):\n%s\n", token.AccessTokenExpiresAt, token.AccessToken)
	return nil
}

// Refresh exchanges the remembered refresh code for a fresh pair. The old
// code stops working as soon as the server rotates it.
func (a *App) Refresh(ctx context.Context) error {
	if !a.isLoggedIn() {
		log.Printf("Not logged in")
		return nil
	}

	pair, err := a.api.Refresh(ctx, a.refreshToken)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			log.Printf("Session expired, please log in again")
			a.userName = ""
			a.refreshToken = ""
			return err
		}
		log.Printf("Refresh unsuccessfull: %s", err.Error())
		return err
	}

	a.refreshToken = pair.RefreshToken
	log.Printf("Refreshed, access token valid until %s", pair.AccessTokenExpiresAt)
	return nil
}

// Logout revokes the remembered refresh code and forgets the session. A code
// already revoked server-side is treated as logged out.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		log.Printf("Not logged in")
		return nil
	}

	if err := a.api.Revoke(ctx, a.refreshToken); err != nil && !errors.Is(err, api.ErrNotFound) {
		log.Printf("Logout unsuccessfull: %s", err.Error())
		return err
	}

	a.userName = ""
	a.refreshToken = ""
	log.Printf("Logged out")
	return nil
}
