// credentials.go
// --------------
// Credential pair lifecycle: in-memory state, best-effort mirroring into
// the CredentialStore, and the refresh sub-procedure. The pair is shared
// mutable state across concurrent calls; reads take the lock, and refresh
// attempts collapse through a singleflight group so concurrent 401s cost
// one refresh call.
package carelink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
)

// Store keys for the mirrored pair.
const (
	storeKeyAccessToken  = "access_token"
	storeKeyRefreshToken = "refresh_token"
)

// SetCredentials installs the token pair in memory and mirrors it into the
// store. It never fails: persistence errors are logged and swallowed, and
// the in-memory state is authoritative. This matches the contract callers
// rely on (installing credentials after login must not error).
func (c *Client) SetCredentials(access, refresh string) {
	tok := &oauth2.Token{AccessToken: access, RefreshToken: refresh}
	tok.Expiry = jwtExpiry(access)
	c.setToken(tok)
}

// ClearCredentials drops the pair from memory and the store. Subsequent
// requests are sent unauthenticated.
func (c *Client) ClearCredentials() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Delete(storeKeyAccessToken); err != nil {
		c.logger.Debug().Err(err).Msg("credential store delete failed")
	}
	if err := c.store.Delete(storeKeyRefreshToken); err != nil {
		c.logger.Debug().Err(err).Msg("credential store delete failed")
	}
}

// IsAuthenticated reports whether an access token is currently held.
func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != nil && c.token.AccessToken != ""
}

// TokenExpiry returns the held access token's expiry, or the zero time
// when no token is held or no expiry is known. Informational only: the
// client refreshes strictly on 401.
func (c *Client) TokenExpiry() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return time.Time{}
	}
	return c.token.Expiry
}

func (c *Client) setToken(tok *oauth2.Token) {
	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()

	if c.store == nil || tok == nil {
		return
	}
	if err := c.store.Set(storeKeyAccessToken, tok.AccessToken); err != nil {
		c.logger.Debug().Err(err).Msg("credential store write failed")
	}
	if tok.RefreshToken != "" {
		if err := c.store.Set(storeKeyRefreshToken, tok.RefreshToken); err != nil {
			c.logger.Debug().Err(err).Msg("credential store write failed")
		}
	}
}

func (c *Client) accessToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil || c.token.AccessToken == "" {
		return "", false
	}
	return c.token.AccessToken, true
}

func (c *Client) refreshToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil || c.token.RefreshToken == "" {
		return "", false
	}
	return c.token.RefreshToken, true
}

// restoreCredentials loads a previously mirrored pair from the store.
// Called once at construction; read failures leave the client
// unauthenticated.
func (c *Client) restoreCredentials() {
	if c.store == nil {
		return
	}
	access, found, err := c.store.Get(storeKeyAccessToken)
	if err != nil || !found || access == "" {
		if err != nil {
			c.logger.Debug().Err(err).Msg("credential store read failed")
		}
		return
	}
	refresh, _, _ := c.store.Get(storeKeyRefreshToken)

	c.mu.Lock()
	c.token = &oauth2.Token{
		AccessToken:  access,
		RefreshToken: refresh,
		Expiry:       jwtExpiry(access),
	}
	c.mu.Unlock()
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"`
}

// refreshCredentials exchanges the held refresh token for a new access
// token. Concurrent callers share a single in-flight exchange. On success
// the new access token is adopted and the refresh token is replaced only
// when the server sent a new one; the existing refresh token is kept
// otherwise.
func (c *Client) refreshCredentials(ctx context.Context) error {
	_, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.doRefresh(ctx)
	})
	if shared {
		c.logger.Debug().Msg("refresh shared with concurrent caller")
	}
	return err
}

// doRefresh performs the actual exchange: a single unauthenticated POST to
// the refresh endpoint, no retry and no nested refresh.
func (c *Client) doRefresh(ctx context.Context) error {
	refresh, ok := c.refreshToken()
	if !ok {
		return newError(KindUnauthorized, "no refresh token held", nil)
	}

	u, cerr := EndpointAuthRefresh.resolve(c.baseURL)
	if cerr != nil {
		return cerr
	}
	payload, err := json.Marshal(refreshRequest{RefreshToken: refresh})
	if err != nil {
		return newError(KindEncodingFailure, "cannot encode refresh request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return newError(KindInvalidURL, "cannot build refresh request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Msg("refreshing access token")
	resp, err := c.transport.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(KindTransportFailure, "cannot read refresh response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		code, msg := serverMessage(data, resp.StatusCode)
		return &Error{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Code: code, Message: msg}
	}

	var rr refreshResponse
	if derr := decodeBody(data, &rr); derr != nil {
		return derr
	}
	if rr.AccessToken == "" {
		return newError(KindDecodingFailure, "refresh response missing access token", nil)
	}

	tok := &oauth2.Token{AccessToken: rr.AccessToken, RefreshToken: rr.RefreshToken}
	if tok.RefreshToken == "" {
		tok.RefreshToken = refresh
	}
	if rr.ExpiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(rr.ExpiresIn) * time.Second)
	} else {
		tok.Expiry = jwtExpiry(rr.AccessToken)
	}
	c.setToken(tok)
	c.logger.Debug().Msg("access token refreshed")
	return nil
}

// jwtExpiry extracts the exp claim from a JWT access token without
// verifying its signature (the client is not the token's audience
// validator). Returns the zero time for opaque tokens.
func jwtExpiry(raw string) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
