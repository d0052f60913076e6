package cli

import (
	"bufio"
	"context"
	"io"
	"testing"
	"time"

	"github.com/mlevshin/authgate/internal/client/api"
)

func stubInputs(t *testing.T, text string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAPI struct {
	regUser *api.User
	regErr  error

	loginPair *api.TokenPair
	loginErr  error

	clientToken *api.ClientToken
	clientErr   error

	refreshPair *api.TokenPair
	refreshErr  error

	revokedCode string
	revokeErr   error

	gotEmail    string
	gotPassword string
}

func (f *fakeAPI) Register(_ context.Context, email, password string) (*api.User, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.regUser, f.regErr
}
func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.TokenPair, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.loginPair, f.loginErr
}
func (f *fakeAPI) LoginByClient(_ context.Context, id, secret string) (*api.ClientToken, error) {
	f.gotEmail, f.gotPassword = id, secret
	return f.clientToken, f.clientErr
}
func (f *fakeAPI) Refresh(_ context.Context, code string) (*api.TokenPair, error) {
	return f.refreshPair, f.refreshErr
}
func (f *fakeAPI) Revoke(_ context.Context, code string) error {
	f.revokedCode = code
	return f.revokeErr
}

func testPair(code string) *api.TokenPair {
	return &api.TokenPair{
		AccessToken:           "at",
		AccessTokenExpiresAt:  time.Now().Add(time.Minute),
		RefreshToken:          code,
		RefreshTokenExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestRegister_Success(t *testing.T) {
	f := &fakeAPI{regUser: &api.User{ID: "id-1", Email: "alice@example.org"}}
	a := &App{api: f}

	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.gotEmail != "alice@example.org" || f.gotPassword != "secret" {
		t.Fatalf("credentials mismatch: %q %q", f.gotEmail, f.gotPassword)
	}
}

func TestLogin_StoresSession(t *testing.T) {
	f := &fakeAPI{loginPair: testPair("r1")}
	a := &App{api: f}

	restore := stubInputs(t, "alice@example.org", []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if a.userName != "alice@example.org" || a.refreshToken != "r1" {
		t.Fatalf("session not stored: %q %q", a.userName, a.refreshToken)
	}
	if !a.isLoggedIn() {
		t.Fatal("expected logged in")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := &fakeAPI{loginErr: api.ErrInvalidCredentials}
	a := &App{api: f}

	restore := stubInputs(t, "alice@example.org", []byte("bad"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.isLoggedIn() {
		t.Fatal("must not be logged in")
	}
}

func TestRefresh_RotatesCode(t *testing.T) {
	f := &fakeAPI{refreshPair: testPair("r2")}
	a := &App{api: f, userName: "alice@example.org", refreshToken: "r1"}

	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh err: %v", err)
	}
	if a.refreshToken != "r2" {
		t.Fatalf("code not rotated: %q", a.refreshToken)
	}
}

func TestRefresh_ExpiredSessionClears(t *testing.T) {
	f := &fakeAPI{refreshErr: api.ErrNotFound}
	a := &App{api: f, userName: "alice@example.org", refreshToken: "r1"}

	if err := a.Refresh(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.isLoggedIn() {
		t.Fatal("session should be cleared")
	}
}

func TestLogout_RevokesAndClears(t *testing.T) {
	f := &fakeAPI{}
	a := &App{api: f, userName: "alice@example.org", refreshToken: "r1"}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if f.revokedCode != "r1" {
		t.Fatalf("revoke not called with stored code: %q", f.revokedCode)
	}
	if a.isLoggedIn() {
		t.Fatal("session should be cleared")
	}
}

func TestLogout_AlreadyRevokedServerSide(t *testing.T) {
	f := &fakeAPI{revokeErr: api.ErrNotFound}
	a := &App{api: f, userName: "alice@example.org", refreshToken: "r1"}

	if err := a.Logout(context.Background()); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.isLoggedIn() {
		t.Fatal("session should be cleared")
	}
}

func TestClientLogin_PrintsToken(t *testing.T) {
	f := &fakeAPI{clientToken: &api.ClientToken{AccessToken: "ca", AccessTokenExpiresAt: time.Now()}}
	a := &App{api: f}

	restore := stubInputs(t, "billing", []byte("s3cr3t"))
	defer restore()

	if err := a.ClientLogin(context.Background()); err != nil {
		t.Fatalf("ClientLogin err: %v", err)
	}
	if f.gotEmail != "billing" || f.gotPassword != "s3cr3t" {
		t.Fatalf("credentials mismatch: %q %q", f.gotEmail, f.gotPassword)
	}
	if a.isLoggedIn() {
		t.Fatal("client login must not store a session")
	}
}
