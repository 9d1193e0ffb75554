package carelink

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint identifies a logical backend operation by its path fragment.
// It is a pure value: constructed by callers, resolved against the
// client's base URL at send time, never persisted.
type Endpoint struct {
	Path string
}

// NewEndpoint builds an Endpoint from a printf-style path template,
// e.g. NewEndpoint("/members/%s/messages", memberID).
func NewEndpoint(format string, args ...any) Endpoint {
	if len(args) == 0 {
		return Endpoint{Path: format}
	}
	return Endpoint{Path: fmt.Sprintf(format, args...)}
}

// Endpoints used by the client itself. Feature services declare their own.
var (
	EndpointAuthLogin    = Endpoint{Path: "/auth/login"}
	EndpointAuthRegister = Endpoint{Path: "/auth/register"}
	EndpointAuthRefresh  = Endpoint{Path: "/auth/refresh"}
	EndpointAuthLogout   = Endpoint{Path: "/auth/logout"}
	EndpointAuthProfile  = Endpoint{Path: "/auth/profile"}
)

// resolve joins the endpoint path with the base URL. A query string after
// "?" in the path is carried over verbatim.
func (e Endpoint) resolve(baseURL string) (string, *Error) {
	path := e.Path
	query := ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, query = path[:i], path[i+1:]
	}
	u, err := url.JoinPath(baseURL, path)
	if err != nil {
		return "", &Error{
			Kind:    KindInvalidURL,
			Message: fmt.Sprintf("cannot resolve endpoint %q against %q", e.Path, baseURL),
			Err:     err,
		}
	}
	if query != "" {
		u += "?" + query
	}
	return u, nil
}
