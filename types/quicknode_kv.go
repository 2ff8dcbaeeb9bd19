package types

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	quickNodeListsURL     = "https://api.quicknode.com/kv/rest/v1/lists"
	defaultKVTimeout      = 10 * time.Second
	maxKVErrorBodyPreview = 512
)

// ErrListNotFound is returned when the KV store has no list under the key
var ErrListNotFound = errors.New("list not found")

// QuickNodeKVProvider reads allowlists from QuickNode KV store lists.
// Config keys: api_key (required), base_url, timeout_seconds.
type QuickNodeKVProvider struct {
	apiKey     string
	listsURL   string
	httpClient *http.Client
}

type quickNodeListResponse struct {
	Data struct {
		Items []string `json:"items"`
	} `json:"data"`
}

func NewQuickNodeKVProvider() *QuickNodeKVProvider {
	return &QuickNodeKVProvider{
		listsURL:   quickNodeListsURL,
		httpClient: &http.Client{Timeout: defaultKVTimeout},
	}
}

func (p *QuickNodeKVProvider) Name() string {
	return "quicknode-kv"
}

func (p *QuickNodeKVProvider) Initialize(config map[string]interface{}) error {
	apiKey, _ := config["api_key"].(string)
	if apiKey == "" {
		return fmt.Errorf("quicknode-kv provider requires 'api_key' in config")
	}
	p.apiKey = apiKey

	if base, _ := config["base_url"].(string); base != "" {
		p.listsURL = strings.TrimSuffix(base, "/")
	}
	if raw, ok := config["timeout_seconds"]; ok {
		secs, ok := raw.(int)
		if !ok || secs <= 0 {
			return fmt.Errorf("quicknode-kv provider: invalid timeout_seconds %v", raw)
		}
		p.httpClient.Timeout = time.Duration(secs) * time.Second
	}
	return nil
}

// FetchList returns the trimmed, non-empty items of the list stored under key
func (p *QuickNodeKVProvider) FetchList(ctx context.Context, key string) ([]string, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	endpoint := p.listsURL + "/" + url.PathEscape(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("x-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", p.Name(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrListNotFound, key)
	case resp.StatusCode != http.StatusOK:
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, maxKVErrorBodyPreview))
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(preview)))
	}

	var list quickNodeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode list %s: %w", key, err)
	}

	items := make([]string, 0, len(list.Data.Items))
	for _, item := range list.Data.Items {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items, nil
}

func (p *QuickNodeKVProvider) Close() error {
	p.httpClient.CloseIdleConnections()
	return nil
}
