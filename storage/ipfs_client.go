package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
)

// ErrNonRecursiveAdd is returned when a directory add is requested without recursion.
// The IPFS add API only publishes whole trees.
var ErrNonRecursiveAdd = errors.New("non-recursive directory add is not supported")

// ShellClientFactory creates go-ipfs-api shells, one per call.
type ShellClientFactory struct {
	// Timeout bounds each HTTP request to the IPFS API. Zero means no timeout.
	Timeout time.Duration

	// CidVersion selects the CID version of added content. Zero keeps the node default.
	CidVersion int

	// HTTPClient is used as the shell transport. Defaults to a fresh client.
	HTTPClient *http.Client
}

// ClientFor returns a client for the IPFS API at endpoint.
// The endpoint may be a host:port pair, an http(s) URL or a multiaddr.
func (f *ShellClientFactory) ClientFor(endpoint string) (interfaces.DirectoryClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("empty IPFS endpoint")
	}

	httpClient := f.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport}
	}

	sh := shell.NewShellWithClient(endpoint, httpClient)
	if f.Timeout > 0 {
		sh.SetTimeout(f.Timeout)
	}

	return &ShellClient{
		shell:      sh,
		endpoint:   endpoint,
		cidVersion: f.CidVersion,
	}, nil
}

// ShellClient publishes directories through the IPFS HTTP API.
type ShellClient struct {
	shell      *shell.Shell
	endpoint   string
	cidVersion int
}

// AddDirectory adds the tree rooted at path and returns the root CID.
// A symlinked root is resolved first; symlinks inside the tree are published
// as symlink nodes. Errors from the IPFS API are returned as produced by the shell.
func (c *ShellClient) AddDirectory(ctx context.Context, path string, recursive bool) (string, error) {
	if !recursive {
		return "", ErrNonRecursiveAdd
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// AddDir does not follow a symlinked root and would publish the link itself.
	root, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}

	var opts []shell.AddOpts
	if c.cidVersion > 0 {
		opts = append(opts, shell.CidVersion(c.cidVersion))
	}
	return c.shell.AddDir(root, opts...)
}

// Available checks if the IPFS API answers before ctx is done.
func (c *ShellClient) Available(ctx context.Context) bool {
	var version struct {
		Version string
	}
	return c.shell.Request("version").Exec(ctx, &version) == nil
}

// Endpoint returns the API address this client talks to.
func (c *ShellClient) Endpoint() string {
	return c.endpoint
}
