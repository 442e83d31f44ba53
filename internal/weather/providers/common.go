package providers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/i474232898/weather-hub/internal/common"
	"github.com/i474232898/weather-hub/internal/weather"
)

// maxErrorBody caps how much of an error response we read looking for a message.
const maxErrorBody = 64 << 10

var errNoHTTPClient = errors.New("http client not configured")

// apiError is the error envelope WeatherAPI returns alongside non-2xx statuses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WeatherAPI error codes that refine the HTTP status.
// See https://www.weatherapi.com/docs/#intro-error-codes.
const (
	codeKeyNotProvided  = 1002
	codeNoLocationFound = 1006
	codeKeyInvalid      = 2006
	codeQuotaExceeded   = 2007
	codeKeyDisabled     = 2008
)

// doRequest executes a single GET. It makes no retries: every failure is
// terminal for the attempt and is returned as a *weather.FetchError.
func doRequest(ctx context.Context, client *http.Client, buildRequest func() (*http.Request, error)) (*http.Response, error) {
	if client == nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, 0, "", errNoHTTPClient)
	}

	req, err := buildRequest()
	if err != nil {
		return nil, weather.NewFetchError(weather.ErrGeneric, 0, "", err)
	}
	req = req.WithContext(ctx)

	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, classifyStatus(resp.StatusCode, body)
	}
	return resp, nil
}

// classifyStatus maps a non-2xx response onto the fetch error taxonomy.
func classifyStatus(status int, body []byte) *weather.FetchError {
	var envelope apiError
	_ = json.Unmarshal(body, &envelope)
	code, serverMsg := envelope.Error.Code, strings.TrimSpace(envelope.Error.Message)

	switch {
	case status == http.StatusUnauthorized || code == codeKeyNotProvided || code == codeKeyInvalid:
		return weather.NewFetchError(weather.ErrInvalidCredentials, status, "", nil)
	case code == codeQuotaExceeded || status == http.StatusTooManyRequests:
		return weather.NewFetchError(weather.ErrRateLimited, status, "", nil)
	case status == http.StatusForbidden || code == codeKeyDisabled:
		return weather.NewFetchError(weather.ErrForbidden, status, "", nil)
	case status == http.StatusNotFound || code == codeNoLocationFound:
		return weather.NewFetchError(weather.ErrNotFound, status, "", nil)
	default:
		msg := serverMsg
		if msg == "" {
			msg = "Weather API error: " + http.StatusText(status)
		}
		return weather.NewFetchError(weather.ErrGeneric, status, msg, nil)
	}
}

// classifyTransportError maps client.Do failures. Anything that looks like
// the network being unreachable is reported as offline.
func classifyTransportError(err error) *weather.FetchError {
	if errors.Is(err, context.Canceled) {
		return weather.NewFetchError(weather.ErrGeneric, 0, "Request was cancelled", err)
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.As(err, &netErr) && netErr.Timeout():
		return weather.NewFetchError(weather.ErrOffline, 0, "", err)
	}

	if common.HasAny(strings.ToLower(err.Error()), "connection refused", "no such host", "network is unreachable", "connection reset") {
		return weather.NewFetchError(weather.ErrOffline, 0, "", err)
	}
	return weather.NewFetchError(weather.ErrGeneric, 0, "", err)
}
