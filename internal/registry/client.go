// Package registry implements the client for the hosted vouch signature
// registry. The duplicate analyzer consults it for similarity candidates
// beyond the built-in signature set.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/vouchdev/vouch/pkg/analyze"
)

// Client looks up project fingerprints against a remote registry.
// It implements analyze.RegistryClient.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// lookupRequest is the wire form of a fingerprint. Sets are serialized as
// sorted lists so identical fingerprints produce identical requests.
type lookupRequest struct {
	IntentHash string   `json:"intent_hash"`
	Imports    []string `json:"imports"`
	Functions  []string `json:"functions"`
	Classes    []string `json:"classes"`
	Keywords   []string `json:"keywords"`
}

type lookupResponse struct {
	Matches []analyze.SignatureMatch `json:"matches"`
}

// Lookup posts the fingerprint to the registry and returns its similarity
// candidates. The caller bounds the call through ctx.
func (c *Client) Lookup(ctx context.Context, fp *analyze.Fingerprint) ([]analyze.SignatureMatch, error) {
	payload := lookupRequest{
		IntentHash: fp.Hash(),
		Imports:    sortedKeys(fp.Imports),
		Functions:  sortedKeys(fp.Functions),
		Classes:    sortedKeys(fp.Classes),
		Keywords:   sortedKeys(fp.Keywords),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding fingerprint: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/signatures/match", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry lookup: unexpected status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding registry response: %w", err)
	}
	return decoded.Matches, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
