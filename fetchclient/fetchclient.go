// Package fetchclient implements the fetch boundary spec.md §6 names:
// fetch(host, port, path) -> Response, with a single-hop 302 redirect
// contract. Grounded on the retrieved original (browser/net/std/src/http.rs
// and browser/src/handler.rs): one retry on a 302 carrying a Location
// header, whose response is returned as is even if it is another 302; a
// 302 with no Location header is itself returned verbatim.
//
// The core pipeline never blocks on this package directly — spec.md §1
// lists HTTP fetch as an external collaborator referenced only through its
// interface — so it is deliberately built on net/http rather than one of
// the retrieved pack's dependencies; see DESIGN.md.
package fetchclient

import (
	"fmt"
	"io"
	"net/http"
	"time"

	browsererrors "github.com/kenjisato/tinybrowser/errors"
)

// Response is the minimal response surface the core consumes.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       string
}

// HeaderValue returns a header's value and whether that value is non-empty;
// a header sent with an empty value reports false, like a missing one.
func (r Response) HeaderValue(name string) (string, bool) {
	v := r.Headers.Get(name)
	return v, v != ""
}

// Client fetches pages over HTTP, following exactly one 302 redirect.
type Client struct {
	HTTP *http.Client
}

// New creates a Client with a bounded-timeout http.Client.
func New() *Client {
	return &Client{HTTP: &http.Client{
		Timeout: 10 * time.Second,
		// The core, not net/http, decides how to react to a 302 — see
		// Fetch below — so automatic redirect-following is turned off.
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

// Fetch issues GET http://host:port/path. On a 302 response it re-issues a
// fetch to the Location header exactly once; a second 302, or a 302 with no
// Location header, is returned verbatim rather than followed further.
func (c *Client) Fetch(host string, port uint16, path string) (Response, error) {
	resp, err := c.get(fmt.Sprintf("http://%s:%d%s", host, port, path))
	if err != nil {
		return Response{}, browsererrors.Wrap(browsererrors.Network, "fetch failed", err)
	}

	if resp.StatusCode != http.StatusFound {
		return resp, nil
	}

	location, ok := resp.HeaderValue("Location")
	if !ok {
		return resp, nil
	}

	redirected, err := c.get(location)
	if err != nil {
		return Response{}, browsererrors.Wrap(browsererrors.Network, "redirect fetch failed", err)
	}
	return redirected, nil
}

func (c *Client) get(rawurl string) (Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawurl, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Connection", "close")

	httpResp, err := c.HTTP.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return Response{}, err
	}

	return Response{StatusCode: httpResp.StatusCode, Headers: httpResp.Header, Body: string(body)}, nil
}
