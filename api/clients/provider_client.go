package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/ipfs-storage-provider/api"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
)

// ProviderClient talks to a storage provider exposed by the HTTP bridge.
type ProviderClient struct {
	// ServerAddr is the base URL of the bridge, e.g. http://127.0.0.1:8080
	ServerAddr string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Describe fetches the provider metadata, settings and capabilities.
func (c *ProviderClient) Describe(ctx context.Context) (*api.DescribeResponse, error) {
	var parsed api.DescribeResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/provider", nil, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

// ValidateCredentials asks the provider to validate credentials.
func (c *ProviderClient) ValidateCredentials(ctx context.Context, credentials map[string]string) (bool, error) {
	var parsed api.ValidateCredentialsResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/credentials/validate",
		api.ValidateCredentialsRequest{Credentials: credentials}, &parsed)
	if err != nil {
		return false, err
	}
	return parsed.Valid, nil
}

// Invoke runs an operation on the provider. A 501 answer is returned as an
// *interfaces.UnsupportedOperationError.
func (c *ProviderClient) Invoke(ctx context.Context, op interfaces.Operation, req *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	if req == nil {
		req = &interfaces.OperationRequest{}
	}

	var parsed interfaces.OperationResult
	if err := c.do(ctx, http.MethodPost, "/api/v1/operations/"+op.String(), req, &parsed); err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (c *ProviderClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	url := strings.TrimSuffix(c.ServerAddr, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return responseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not parse response from %s: %w", path, err)
	}
	return nil
}

func responseError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("provider returned non-200 response: %d", resp.StatusCode)
	}

	var parsed api.ErrorResponse
	if err := json.Unmarshal(bodyBytes, &parsed); err != nil || parsed.Error == "" {
		return fmt.Errorf("provider returned error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if resp.StatusCode == http.StatusNotImplemented && parsed.Error == interfaces.MethodNotImplemented {
		return interfaces.Unsupported(interfaces.Operation(parsed.Operation))
	}
	return fmt.Errorf("provider returned error %d: %s", resp.StatusCode, parsed.Error)
}
