// Package urlparse implements the URL boundary spec.md §6 names: parse(url)
// -> {host, port, path}. It is one of the two external collaborators the
// core pipeline only ever references through an interface, never blocks on.
package urlparse

import (
	"fmt"
	"net/url"
	"strconv"

	browsererrors "github.com/kenjisato/tinybrowser/errors"
)

// defaultPort is used whenever the URL carries no explicit port, whatever
// its scheme. https is not modeled: the fetch boundary this feeds speaks
// plain HTTP, matching the retrieved original (browser/net/std/src/http.rs).
const defaultPort = 80

// Result is the {host, port, path} triple the fetch boundary consumes.
type Result struct {
	Host string
	Port uint16
	Path string
}

// Parse parses an absolute URL into a Result. Port is parsed as u16;
// failure here is fatal to the navigation (errors.InvalidInput, spec.md §7).
func Parse(rawurl string) (Result, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return Result{}, browsererrors.Wrap(browsererrors.InvalidInput, "could not parse URL", err)
	}
	if u.Host == "" {
		return Result{}, browsererrors.New(browsererrors.InvalidInput, fmt.Sprintf("not an absolute URL: %q", rawurl))
	}

	port := defaultPort
	if p := u.Port(); p != "" {
		n, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return Result{}, browsererrors.Wrap(browsererrors.InvalidInput, fmt.Sprintf("invalid port %q", p), err)
		}
		port = int(n)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	return Result{Host: u.Hostname(), Port: uint16(port), Path: path}, nil
}
