package reader

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// A model or material file read from disk or over http(s).
type resource struct {
	io.ReadCloser
	url *url.URL
}

// Get the location the resource was read from.
func (r *resource) Path() string {
	return r.url.String()
}

// Get a key identifying the resource regardless of how it was referenced.
func (r *resource) location() string {
	if r.url.Scheme != "" {
		return r.url.String()
	}
	if abs, err := filepath.Abs(filepath.Clean(r.url.Path)); err == nil {
		return abs
	}
	return r.url.Path
}

// Get the file name of the resource without its extension.
func (r *resource) Name() string {
	base := path.Base(r.url.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Open the resource at location. Relative locations without a scheme are
// resolved against the directory of relTo when it is not nil, so material
// libraries are found next to the model referencing them. The caller must
// close the returned resource.
func newResource(location string, relTo *resource) (*resource, error) {
	target, err := resolveLocation(location, relTo)
	if err != nil {
		return nil, err
	}

	var body io.ReadCloser
	switch target.Scheme {
	case "":
		if body, err = os.Open(filepath.Clean(target.Path)); err != nil {
			return nil, err
		}
	case "http", "https":
		if body, err = fetch(target); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", target.Scheme)
	}

	return &resource{ReadCloser: body, url: target}, nil
}

func resolveLocation(location string, relTo *resource) (*url.URL, error) {
	// Windows style paths are accepted by normalizing the separators.
	target, err := url.Parse(strings.ReplaceAll(location, `\`, `/`))
	if err != nil {
		return nil, fmt.Errorf("resource: %w", err)
	}
	if target.Scheme != "" || relTo == nil {
		return target, nil
	}

	base := *relTo.url
	switch {
	case path.IsAbs(target.Path):
		if base.Scheme == "" {
			return target, nil
		}
		base.Path = target.Path
	case base.Scheme == "":
		abs, err := filepath.Abs(base.Path)
		if err != nil {
			return nil, fmt.Errorf("resource: could not detect abs path for %s; %w", base.Path, err)
		}
		base.Path = filepath.Dir(abs) + "/" + target.Path
	default:
		base.Path = path.Dir(base.Path) + "/" + target.Path
	}
	return &base, nil
}

func fetch(target *url.URL) (io.ReadCloser, error) {
	resp, err := http.Get(target.String())
	if err != nil {
		return nil, fmt.Errorf("resource: could not fetch '%s': %w", target.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("resource: could not fetch '%s': status %d", target.String(), resp.StatusCode)
	}
	return resp.Body, nil
}
