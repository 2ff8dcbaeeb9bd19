package wormhole

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/wormhole-foundation/wormhole/sdk/vaa"

	"github.com/otimlabs/wormhole-admin/types"
)

const (
	httpTimeout = 10 * time.Second

	DefaultGuardianBaseURL     = "https://wormhole-v2-testnet-api.certus.one"
	DefaultWormholescanBaseURL = "https://api.testnet.wormholescan.io"
)

// ErrVAANotFound is returned when the API has no VAA for the requested id
var ErrVAANotFound = errors.New("signed VAA not found")

type guardianResponse struct {
	VAABytes string `json:"vaaBytes"`
}

type wormholescanResponse struct {
	Data struct {
		VAA string `json:"vaa"`
	} `json:"data"`
}

// httpGet performs a GET request and unmarshals the JSON response
func httpGet(ctx context.Context, url string, result any) error {
	ctx, cancel := context.WithTimeout(ctx, httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrVAANotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, result)
}

// NormalizeEmitter returns the emitter as 64 lowercase hex chars without 0x
func NormalizeEmitter(emitter string) (string, error) {
	emitter = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(emitter), "0x"))
	b, err := hex.DecodeString(emitter)
	if err != nil {
		return "", fmt.Errorf("invalid emitter address: %w", err)
	}
	if len(b) > 32 {
		return "", fmt.Errorf("emitter address must be at most 32 bytes, got %d", len(b))
	}
	return strings.Repeat("0", 64-len(emitter)) + emitter, nil
}

// VAAURL builds the lookup URL for the configured source
func VAAURL(cfg types.WormholeSettings, chain vaa.ChainID, emitter string, sequence uint64) (string, error) {
	source, err := cfg.GetVAASource()
	if err != nil {
		return "", err
	}
	emitter, err = NormalizeEmitter(emitter)
	if err != nil {
		return "", err
	}

	baseURL := strings.TrimSuffix(cfg.APIBaseURL, "/")
	switch source {
	case types.VAASourceWormholescan:
		if baseURL == "" {
			baseURL = DefaultWormholescanBaseURL
		}
		return fmt.Sprintf("%s/api/v1/vaas/%d/%s/%d", baseURL, uint16(chain), emitter, sequence), nil
	default:
		if baseURL == "" {
			baseURL = DefaultGuardianBaseURL
		}
		return fmt.Sprintf("%s/v1/signed_vaa/%d/%s/%d", baseURL, uint16(chain), emitter, sequence), nil
	}
}

// FetchSignedVAA fetches and parses a signed VAA, retrying fetch-retries times
func FetchSignedVAA(ctx context.Context, cfg types.WormholeSettings, logger log.Logger, chain vaa.ChainID, emitter string, sequence uint64) (*types.SignedVAA, error) {
	url, err := VAAURL(cfg, chain, emitter, sequence)
	if err != nil {
		return nil, err
	}
	source, _ := cfg.GetVAASource()
	logger = logger.With("source", source.String(), "chain", chain.String(), "sequence", sequence)

	var fetchErrors error
	for attempt := 0; attempt <= cfg.FetchRetries; attempt++ {
		raw, err := fetchVAABytes(ctx, source, url)
		if err == nil {
			logger.Info("Signed VAA found", "bytes", len(raw))
			return types.ParseSignedVAA(raw)
		}
		logger.Debug("Signed VAA request failed", "url", url, "attempt", attempt+1, "error", err)
		fetchErrors = errors.Join(fetchErrors, err)

		if attempt != cfg.FetchRetries {
			select {
			case <-ctx.Done():
				return nil, errors.Join(fetchErrors, ctx.Err())
			case <-time.After(time.Duration(cfg.FetchRetryInterval) * time.Second):
			}
		}
	}

	return nil, fmt.Errorf("unable to fetch signed VAA from %s: %w", url, fetchErrors)
}

func fetchVAABytes(ctx context.Context, source types.VAASource, url string) ([]byte, error) {
	var encoded string
	switch source {
	case types.VAASourceWormholescan:
		var resp wormholescanResponse
		if err := httpGet(ctx, url, &resp); err != nil {
			return nil, err
		}
		encoded = resp.Data.VAA
	default:
		var resp guardianResponse
		if err := httpGet(ctx, url, &resp); err != nil {
			return nil, err
		}
		encoded = resp.VAABytes
	}

	if encoded == "" {
		return nil, fmt.Errorf("response from %s has no VAA", url)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 VAA: %w", err)
	}
	return raw, nil
}
