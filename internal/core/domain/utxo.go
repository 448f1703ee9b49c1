package domain

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"
)

var (
	ErrUtxoAlreadyLocked = fmt.Errorf("utxo is already locked")
	ErrUtxoAlreadySpent  = fmt.Errorf("utxo is already spent")
)

// UtxoKey represents the key of an Utxo, composed by its txid and vout.
type UtxoKey struct {
	TxID string
	VOut uint32
}

// Hash returns a fixed-size identifier of the key, used by storage layers.
func (k UtxoKey) Hash() string {
	buf, _ := hex.DecodeString(k.TxID)
	buf = binary.BigEndian.AppendUint32(buf, k.VOut)
	hash := blake2b.Sum256(buf)
	return hex.EncodeToString(hash[:])
}

func (k UtxoKey) String() string {
	return fmt.Sprintf("{%s: %d}", k.TxID, k.VOut)
}

// UtxoInfo is a light view of an Utxo.
type UtxoInfo struct {
	UtxoKey
	Account             string
	Balance             Balance
	LockExpiryTimestamp int64
}

func (i UtxoInfo) Key() UtxoKey {
	return i.UtxoKey
}

type UtxoStatus struct {
	Txid        string
	BlockHeight uint64
	BlockTime   int64
	BlockHash   string
}

// Utxo is an unspent output owned by an account, with its lovelace and
// native asset balance and the info needed to rebuild the output when
// spending it.
type Utxo struct {
	UtxoKey
	Account             string
	Balance             Balance
	OutputAddress       string
	DatumOption         []byte
	ScriptReference     []byte
	LockTimestamp       int64
	LockExpiryTimestamp int64
	SpentStatus         UtxoStatus
}

// IsSpent returns whether the utxo have been spent.
func (u *Utxo) IsSpent() bool {
	return u.SpentStatus != UtxoStatus{}
}

// IsLocked returns whether the utxo is locked.
func (u *Utxo) IsLocked() bool {
	return u.LockTimestamp > 0
}

// IsSpendable returns whether the utxo is neither spent nor locked.
func (u *Utxo) IsSpendable() bool {
	return !u.IsSpent() && !u.IsLocked()
}

// CanUnlock reutrns whether a locked utxo can be unlocked.
func (u *Utxo) CanUnlock() bool {
	if !u.IsLocked() {
		return true
	}
	return !time.Now().Before(time.Unix(u.LockExpiryTimestamp, 0))
}

// Key returns the UtxoKey of the current utxo.
func (u *Utxo) Key() UtxoKey {
	return u.UtxoKey
}

// Info returns a light view of the current utxo.
func (u *Utxo) Info() UtxoInfo {
	return UtxoInfo{u.Key(), u.Account, u.Balance, u.LockExpiryTimestamp}
}

// QuantityOf returns the quantity of the given asset held by the utxo, or
// its lovelace if asset is nil.
func (u *Utxo) QuantityOf(asset *Asset) uint64 {
	return u.Balance.QuantityOf(asset)
}

// Output returns the output the utxo was created by. The second value is
// false if the utxo does not carry its output address.
func (u *Utxo) Output() (*TxOutput, bool) {
	if u.OutputAddress == "" {
		return nil, false
	}
	return &TxOutput{
		Address:         u.OutputAddress,
		Value:           u.Balance,
		DatumOption:     u.DatumOption,
		ScriptReference: u.ScriptReference,
	}, true
}

// Spend marks the utxos as spent.
func (u *Utxo) Spend(status UtxoStatus) error {
	if u.IsSpent() {
		return nil
	}

	if status.Txid == "" {
		return fmt.Errorf("missing txid")
	}
	u.SpentStatus = status
	u.LockTimestamp = 0
	u.LockExpiryTimestamp = 0
	return nil
}

// Lock marks the current utxo as locked.
func (u *Utxo) Lock(timestamp, expiryTimestamp int64) error {
	if u.IsSpent() {
		return ErrUtxoAlreadySpent
	}
	if u.IsLocked() {
		return ErrUtxoAlreadyLocked
	}
	u.LockTimestamp = timestamp
	u.LockExpiryTimestamp = expiryTimestamp
	return nil
}

// Unlock marks the current locked utxo as unlocked.
func (u *Utxo) Unlock() {
	u.LockTimestamp = 0
	u.LockExpiryTimestamp = 0
}
