package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const tokenInfoEndpoint = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID: clientID,
		endpoint: tokenInfoEndpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// IsConfigured returns true if a Google client id is set.
func (v *GoogleVerifier) IsConfigured() bool {
	return v.clientID != ""
}

type tokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
}

// Verify checks the ID token and returns the subject's email and name.
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (string, string, error) {
	if idToken == "" {
		return "", "", errors.New("empty id token")
	}

	u := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("tokeninfo status %d", resp.StatusCode)
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", "", fmt.Errorf("tokeninfo decode: %w", err)
	}

	if info.Aud != v.clientID {
		return "", "", errors.New("token audience mismatch")
	}
	if info.Email == "" || info.EmailVerified != "true" {
		return "", "", errors.New("email not verified")
	}

	return info.Email, info.Name, nil
}
