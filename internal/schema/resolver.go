package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// HTTPResolver fetches schemas over HTTP
type HTTPResolver struct {
	Client *http.Client
}

// NewHTTPResolver creates a resolver with a bounded request timeout
func NewHTTPResolver() *HTTPResolver {
	return &HTTPResolver{
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch downloads and parses the schema at ref
func (r *HTTPResolver) Fetch(ctx context.Context, ref string) (*Document, error) {
	data, err := getJSON(ctx, r.Client, ref)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func getJSON(ctx context.Context, client *http.Client, target string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", target, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", target, err)
	}
	return data, nil
}

// FileResolver reads schemas from a local directory. Absolute schema URLs
// are mapped onto the directory by their path.
type FileResolver struct {
	Dir string
}

// NewFileResolver creates a resolver rooted at dir
func NewFileResolver(dir string) *FileResolver {
	return &FileResolver{Dir: dir}
}

// Fetch reads and parses the schema file ref points to
func (r *FileResolver) Fetch(ctx context.Context, ref string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.Path(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Parse(data)
}

// Path maps a reference onto a file inside the resolver's directory
func (r *FileResolver) Path(ref string) string {
	p := ref
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		p = u.Path
	}
	p = strings.TrimPrefix(filepath.FromSlash(p), string(filepath.Separator))
	if !strings.HasSuffix(p, ".json") {
		p += ".json"
	}
	return filepath.Join(r.Dir, p)
}
