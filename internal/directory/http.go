// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/sirseerhq/geoselect/internal/apierror"
	"github.com/sirseerhq/geoselect/internal/config"
	geoerrors "github.com/sirseerhq/geoselect/internal/errors"
	"github.com/sirseerhq/geoselect/pkg/version"
)

// HTTPClient implements Client against the directory REST API.
type HTTPClient struct {
	baseURL   string
	http      *http.Client
	locale    language.Tag
	log       zerolog.Logger
	inspector apierror.Inspector
}

// ClientOption customizes an HTTPClient.
type ClientOption func(*HTTPClient)

// WithLogger sets the logger used to report failed requests.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *HTTPClient) {
		c.log = l
	}
}

// WithTransport replaces the underlying round tripper. Directory headers
// are still added on top of it.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *HTTPClient) {
		if ht, ok := c.http.Transport.(*headerTransport); ok {
			ht.base = rt
		}
	}
}

// NewHTTPClient creates a directory client from cfg. The base URL is
// checked here so a missing value fails at construction, never per call.
func NewHTTPClient(cfg config.DirectoryConfig, opts ...ClientOption) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, &geoerrors.ConfigError{Field: "directory.base_url", Err: geoerrors.ErrMissingBaseURL}
	}

	locale := language.Und
	if loc := strings.TrimSpace(cfg.Locale); loc != "" {
		tag, err := language.Parse(loc)
		if err != nil {
			return nil, &geoerrors.ConfigError{
				Field: "directory.locale",
				Err:   fmt.Errorf("%w: %v", geoerrors.ErrInvalidConfig, err),
			}
		}
		locale = tag
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &HTTPClient{
		baseURL: base,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &headerTransport{
				apiKey:    cfg.APIKey,
				userAgent: version.UserAgent(),
				base:      transport,
			},
		},
		locale:    locale,
		log:       zerolog.Nop(),
		inspector: apierror.NewErrorChainInspector(apierror.NewInspector()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ListCountries fetches GET {base}/countries.
func (c *HTTPClient) ListCountries(ctx context.Context) ([]Option, error) {
	return c.list(ctx, geoerrors.ResourceCountries, "/countries")
}

// ListStates fetches GET {base}/countries/{countryID}/states.
func (c *HTTPClient) ListStates(ctx context.Context, countryID int) ([]Option, error) {
	return c.list(ctx, geoerrors.ResourceStates, "/countries/"+strconv.Itoa(countryID)+"/states")
}

func (c *HTTPClient) list(ctx context.Context, resource, path string) ([]Option, error) {
	target := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, c.fail(resource, target, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(resource, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, c.fail(resource, target, &apierror.StatusError{StatusCode: resp.StatusCode, URL: target})
	}

	var opts []Option
	if err := json.NewDecoder(resp.Body).Decode(&opts); err != nil {
		return nil, c.fail(resource, target, &apierror.DecodeError{Err: err})
	}
	if opts == nil {
		opts = []Option{}
	}

	SortOptions(opts, c.locale)

	c.log.Debug().
		Str("resource", resource).
		Str("url", target).
		Int("count", len(opts)).
		Msg("directory list fetched")

	return opts, nil
}

// fail logs cause and wraps it as a FetchError for resource.
func (c *HTTPClient) fail(resource, target string, cause error) error {
	kind := apierror.Classify(c.inspector, cause)

	// A canceled request was superseded by the caller, not a failure.
	level := zerolog.ErrorLevel
	if errors.Is(cause, context.Canceled) {
		level = zerolog.DebugLevel
	}

	evt := c.log.WithLevel(level).
		Err(cause).
		Str("resource", resource).
		Str("url", target).
		Str("kind", string(kind))
	var se *apierror.StatusError
	if errors.As(cause, &se) {
		evt = evt.Int("status", se.StatusCode)
	}
	evt.Msg("directory request failed")

	switch kind {
	case apierror.KindNetwork:
		cause = fmt.Errorf("%w: %w", geoerrors.ErrNetworkFailure, cause)
	case apierror.KindAuth:
		cause = fmt.Errorf("%w: %w", geoerrors.ErrUnauthorized, cause)
	}
	return geoerrors.NewFetchError(resource, cause)
}
