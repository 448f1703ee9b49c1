package domain

// ProtocolParams exposes the ledger parameters needed to balance a
// transaction.
type ProtocolParams interface {
	// KeyDeposit returns the lovelace locked by a stake key registration.
	KeyDeposit() uint64
	// MinLovelace returns the minimum lovelace the given output must carry
	// to be accepted by the ledger.
	MinLovelace(output TxOutput) uint64
}
