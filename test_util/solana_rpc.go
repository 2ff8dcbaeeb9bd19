package testutil

import (
	"encoding/binary"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

type fakeAccount struct {
	owner solana.PublicKey
	data  []byte
}

// FakeSolanaRPC is a minimal Solana JSON-RPC server keyed on method name.
// Sent transactions confirm immediately at the configured status.
type FakeSolanaRPC struct {
	URL string

	mu       sync.Mutex
	accounts map[string]fakeAccount
	sent     []string
	calls    map[string]int
	txErr    interface{}
	status   string
}

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// NewFakeSolanaRPC starts a server that is closed with the test
func NewFakeSolanaRPC(t *testing.T) *FakeSolanaRPC {
	t.Helper()
	f := &FakeSolanaRPC{
		accounts: make(map[string]fakeAccount),
		calls:    make(map[string]int),
		status:   "finalized",
	}
	server := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(server.Close)
	f.URL = server.URL
	return f
}

func (f *FakeSolanaRPC) SetAccount(addr, owner solana.PublicKey, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[addr.String()] = fakeAccount{owner: owner, data: data}
}

// SetTxError makes every signature status report err
func (f *FakeSolanaRPC) SetTxError(err interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txErr = err
}

// SetStatus sets the confirmation status reported for every signature
func (f *FakeSolanaRPC) SetStatus(status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = status
}

func (f *FakeSolanaRPC) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeSolanaRPC) SentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *FakeSolanaRPC) SentTransactions(t *testing.T) []*solana.Transaction {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*solana.Transaction, 0, len(f.sent))
	for _, raw := range f.sent {
		tx, err := parseTx(raw)
		require.NoError(t, err)
		out = append(out, tx)
	}
	return out
}

func (f *FakeSolanaRPC) serve(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.calls[req.Method]++
	result, rpcErr := f.handle(req)
	f.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if rpcErr != nil {
		resp["error"] = rpcErr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (f *FakeSolanaRPC) handle(req rpcRequest) (interface{}, interface{}) {
	ctx := map[string]interface{}{"slot": 1}

	switch req.Method {
	case "getHealth":
		return "ok", nil
	case "getAccountInfo":
		var addr string
		if len(req.Params) > 0 {
			_ = json.Unmarshal(req.Params[0], &addr)
		}
		acct, ok := f.accounts[addr]
		if !ok {
			return map[string]interface{}{"context": ctx, "value": nil}, nil
		}
		return map[string]interface{}{
			"context": ctx,
			"value": map[string]interface{}{
				"data":       []string{base64.StdEncoding.EncodeToString(acct.data), "base64"},
				"executable": false,
				"lamports":   2039280,
				"owner":      acct.owner.String(),
				"rentEpoch":  0,
			},
		}, nil
	case "getLatestBlockhash":
		return map[string]interface{}{
			"context": ctx,
			"value": map[string]interface{}{
				"blockhash":            solana.HashFromBytes(make([]byte, 32)).String(),
				"lastValidBlockHeight": 100,
			},
		}, nil
	case "sendTransaction":
		var raw string
		if len(req.Params) > 0 {
			_ = json.Unmarshal(req.Params[0], &raw)
		}
		tx, err := parseTx(raw)
		if err != nil || len(tx.Signatures) == 0 {
			return nil, map[string]interface{}{"code": -32602, "message": "invalid transaction"}
		}
		f.sent = append(f.sent, raw)
		return tx.Signatures[0].String(), nil
	case "getSignatureStatuses":
		return map[string]interface{}{
			"context": ctx,
			"value": []interface{}{map[string]interface{}{
				"slot":               1,
				"confirmations":      nil,
				"err":                f.txErr,
				"confirmationStatus": f.status,
			}},
		}, nil
	case "getBalance":
		return map[string]interface{}{"context": ctx, "value": 1500000000}, nil
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "method not found: " + req.Method}
	}
}

func parseTx(raw string) (*solana.Transaction, error) {
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	return solana.TransactionFromDecoder(bin.NewBinDecoder(b))
}

// TokenAccountData lays out an initialized SPL token account
func TokenAccountData(mint, owner solana.PublicKey, amount uint64) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint[:])
	copy(data[32:64], owner[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1 // state: initialized
	return data
}
