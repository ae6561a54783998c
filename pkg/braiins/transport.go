package braiins

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/net/proxy"
)

// invalidTokenPhrase is the server-side message the pool embeds in an
// otherwise successful response when the auth token is rejected. The
// substring match is intentionally literal; see ErrInvalidAPIKey.
const invalidTokenPhrase = "Invalid Access Profile token"

// get issues one authenticated GET and classifies the outcome. On the
// success path it returns the raw body for the caller to decode.
func (c *Client) get(ctx context.Context, url string, authed bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	if authed {
		req.Header.Set(c.authHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return classifyResponse(resp.StatusCode, body)
}

// classifyResponse maps an HTTP status and body to the flat error set.
// The enumeration is total over 0..599: every status lands on exactly
// one outcome, and on success the body is handed back for decoding.
func classifyResponse(status int, body []byte) ([]byte, error) {
	switch {
	case status <= 399:
		if len(body) == 0 {
			return nil, ErrEmptyResponse
		}
		if bytes.Contains(body, []byte(invalidTokenPhrase)) {
			return nil, ErrInvalidAPIKey
		}
		return body, nil
	case status == http.StatusBadRequest:
		return nil, ErrBadRequest
	case status == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case status == http.StatusForbidden:
		return nil, ErrForbidden
	case status == http.StatusNotFound:
		return nil, ErrNotFound
	case status == http.StatusMethodNotAllowed:
		return nil, ErrMethodNotAllowed
	case status == http.StatusTooManyRequests:
		return nil, ErrTooManyRequests
	case status <= 499:
		// 402, 406-428, 430-499
		return nil, ErrUnhandledClientError
	case status == http.StatusInternalServerError:
		return nil, ErrInternalServerError
	case status == http.StatusNotImplemented:
		return nil, ErrNotImplemented
	case status == http.StatusBadGateway:
		return nil, ErrBadGateway
	case status == http.StatusServiceUnavailable:
		return nil, ErrServiceUnavailable
	case status == http.StatusGatewayTimeout:
		return nil, ErrGatewayTimeout
	default:
		return nil, ErrUnhandledServerError
	}
}

// newSOCKS5Transport builds an http.Transport that tunnels every
// request through the given SOCKS5 proxy (e.g. a local Tor daemon).
func newSOCKS5Transport(addr string) (*http.Transport, error) {
	dialer, err := proxy.SOCKS5("tcp", addr, nil, proxy.Direct)
	if err != nil {
		return nil, err
	}

	tr := &http.Transport{}
	if cd, ok := dialer.(proxy.ContextDialer); ok {
		tr.DialContext = cd.DialContext
	} else {
		tr.Dial = dialer.Dial
	}
	return tr, nil
}
