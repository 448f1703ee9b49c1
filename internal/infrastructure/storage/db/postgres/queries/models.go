package queries

type Utxo struct {
	ID                  int32
	TxID                string
	Vout                int32
	AccountName         string
	Lovelace            int64
	OutputAddress       string
	DatumOption         []byte
	ScriptReference     []byte
	LockTimestamp       int64
	LockExpiryTimestamp int64
	SpentTxID           string
	SpentBlockHeight    int64
	SpentBlockTime      int64
	SpentBlockHash      string
}

type UtxoAsset struct {
	ID        int32
	FkUtxoID  int32
	Position  int32
	PolicyID  string
	AssetName string
	Quantity  string
}
