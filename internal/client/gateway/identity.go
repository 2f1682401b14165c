package gateway

import (
	"context"
	"net/http"

	"github.com/noteboard/noteboard/internal/client/models"
)

// IdentityGateway wraps the identity service (accounts and sessions).
type IdentityGateway struct {
	api apiClient
}

// NewIdentityGateway builds a gateway over the identity service base URL.
// Pass nil to use http.DefaultClient.
func NewIdentityGateway(baseURL string, httpClient *http.Client) *IdentityGateway {
	return &IdentityGateway{api: newAPIClient(baseURL, httpClient)}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (g *IdentityGateway) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := g.api.doJSON(ctx, "identity.login", http.MethodPost, "/users/login",
		"", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates a new account. It does not authenticate: the caller must
// follow up with Login.
func (g *IdentityGateway) Register(ctx context.Context, username, email, password string) error {
	return g.api.doJSON(ctx, "identity.register", http.MethodPost, "/users/register",
		"", registerRequest{Username: username, Email: email, Password: password}, nil)
}

// CurrentIdentity resolves the user behind the token.
func (g *IdentityGateway) CurrentIdentity(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := g.api.doJSON(ctx, "identity.me", http.MethodGet, "/users/me", token, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
