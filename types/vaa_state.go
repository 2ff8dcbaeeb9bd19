package types

import (
	"sync"
	"time"
)

const (
	Created  string = "created"
	Filtered string = "filtered"
	Verified string = "verified"
	Posted   string = "posted"
	Complete string = "complete"
	Failed   string = "failed"
)

// VAAState tracks a single VAA through verify, post and redeem steps
type VAAState struct {
	mu sync.Mutex

	ID           string // chain/emitter/sequence
	Digest       string // hex keccak256 of the VAA body
	Status       string // created, filtered, verified, posted, complete, failed
	PostedVAA    string // PostedVAA account address on Solana
	SignatureSet string // signature set account used during verification
	TxSignatures []string
	History      []string // every status the VAA has held, in order
	Created      time.Time
	Updated      time.Time
}

func NewVAAState(v *SignedVAA) *VAAState {
	now := time.Now()
	return &VAAState{
		ID:      v.ID(),
		Digest:  v.Digest.Hex(),
		Status:  Created,
		History: []string{Created},
		Created: now,
		Updated: now,
	}
}

func (s *VAAState) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = status
	s.History = append(s.History, status)
	s.Updated = time.Now()
}

func (s *VAAState) GetStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Status
}

// SetAccounts records the on-chain accounts created for the VAA
func (s *VAAState) SetAccounts(postedVAA, signatureSet string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PostedVAA = postedVAA
	s.SignatureSet = signatureSet
	s.Updated = time.Now()
}

// AddTx records a landed transaction signature
func (s *VAAState) AddTx(sig string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TxSignatures = append(s.TxSignatures, sig)
	s.Updated = time.Now()
}

func (s *VAAState) StatusHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.History))
	copy(out, s.History)
	return out
}

func (s *VAAState) Txs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.TxSignatures))
	copy(out, s.TxSignatures)
	return out
}
