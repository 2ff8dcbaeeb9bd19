package cmd

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	testutil "github.com/otimlabs/wormhole-admin/test_util"
)

const suiTokenBridgeEmitter = "40440411a170b4842ae7dee4f4a7b7a58bc0a98566e998850a7bb87bf5dc05b9"

func guardianServer(t *testing.T, raw []byte) (*httptest.Server, *string) {
	t.Helper()
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"vaaBytes": base64.StdEncoding.EncodeToString(raw)})
	}))
	t.Cleanup(server.Close)
	return server, &path
}

func TestFetchVAA(t *testing.T) {
	v := testutil.LoadVAAFixture(t, testutil.AssetMetaVAA)
	server, path := guardianServer(t, v.Raw)

	cfg := testutil.ConfigSetup(t, "http://127.0.0.1:1")
	cfg.Wormhole.APIBaseURL = server.URL

	out, err := execute(t, testAppState(t, cfg), "fetch-vaa", "--emitter-chain", "sui", "--emitter", suiTokenBridgeEmitter, "--sequence", "120")
	require.NoError(t, err)
	require.Equal(t, v.Hex(), strings.TrimSpace(out))
	require.Equal(t, "/v1/signed_vaa/21/"+suiTokenBridgeEmitter+"/120", *path)
}

func TestFetchVAA_RequiresEmitter(t *testing.T) {
	cfg := testutil.ConfigSetup(t, "http://127.0.0.1:1")

	_, err := execute(t, testAppState(t, cfg), "fetch-vaa", "--emitter-chain", "21", "--sequence", "120")
	require.Error(t, err)
}

func TestParseVAA_Fetched(t *testing.T) {
	v := testutil.LoadVAAFixture(t, testutil.AssetMetaVAA)
	server, _ := guardianServer(t, v.Raw)

	cfg := testutil.ConfigSetup(t, "http://127.0.0.1:1")
	cfg.Wormhole.APIBaseURL = server.URL

	out, err := execute(t, testAppState(t, cfg), "parse-vaa", "--emitter-chain", "21", "--emitter", "0x"+suiTokenBridgeEmitter, "--sequence", "120")
	require.NoError(t, err)
	require.Contains(t, out, `"symbol": "COIN_10"`)
}
