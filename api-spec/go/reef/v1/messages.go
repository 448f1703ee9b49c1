package reefv1

type Asset struct {
	PolicyId  string `json:"policy_id"`
	AssetName string `json:"asset_name"`
	Quantity  uint64 `json:"quantity"`
}

type Value struct {
	Lovelace uint64   `json:"lovelace"`
	Assets   []*Asset `json:"assets,omitempty"`
}

type Outpoint struct {
	Txid  string `json:"txid"`
	Index uint32 `json:"index"`
}

type Utxo struct {
	Txid            string `json:"txid"`
	Index           uint32 `json:"index"`
	AccountName     string `json:"account_name,omitempty"`
	Value           *Value `json:"value"`
	Address         string `json:"address,omitempty"`
	DatumOption     string `json:"datum_option,omitempty"`
	ScriptReference string `json:"script_reference,omitempty"`
	LockExpiresAt   int64  `json:"lock_expires_at,omitempty"`
}

type Output struct {
	Address         string `json:"address"`
	Value           *Value `json:"value"`
	DatumOption     string `json:"datum_option,omitempty"`
	ScriptReference string `json:"script_reference,omitempty"`
}

type Input struct {
	Txid   string  `json:"txid"`
	Index  uint32  `json:"index"`
	Output *Output `json:"output,omitempty"`
}

type MintToken struct {
	PolicyId  string `json:"policy_id"`
	AssetName string `json:"asset_name"`
	Quantity  int64  `json:"quantity"`
}

type Certificate struct {
	// Type is one of stake_registration, stake_deregistration,
	// stake_delegation.
	Type            string `json:"type"`
	StakeCredential string `json:"stake_credential"`
}

type AddUtxosRequest struct {
	AccountName string  `json:"account_name"`
	Utxos       []*Utxo `json:"utxos"`
}

type AddUtxosResponse struct {
	Count int32 `json:"count"`
}

type ListUtxosRequest struct {
	AccountName string `json:"account_name"`
}

type ListUtxosResponse struct {
	SpendableUtxos []*Utxo `json:"spendable_utxos"`
	LockedUtxos    []*Utxo `json:"locked_utxos"`
}

type GetBalanceRequest struct {
	AccountName string `json:"account_name"`
}

type GetBalanceResponse struct {
	Spendable *Value `json:"spendable"`
	Locked    *Value `json:"locked"`
}

type UnlockUtxosRequest struct {
	Utxos []*Outpoint `json:"utxos"`
}

type UnlockUtxosResponse struct {
	Count int32 `json:"count"`
}

type SpendUtxosRequest struct {
	Utxos       []*Outpoint `json:"utxos"`
	Txid        string      `json:"txid"`
	BlockHeight uint64      `json:"block_height,omitempty"`
	BlockTime   int64       `json:"block_time,omitempty"`
	BlockHash   string      `json:"block_hash,omitempty"`
}

type SpendUtxosResponse struct {
	Count int32 `json:"count"`
}

type DeleteUtxosRequest struct {
	AccountName string `json:"account_name"`
}

type DeleteUtxosResponse struct{}

type SelectCoinsRequest struct {
	AccountName   string         `json:"account_name"`
	Outputs       []*Output      `json:"outputs"`
	ChangeAddress string         `json:"change_address"`
	Mint          []*MintToken   `json:"mint,omitempty"`
	Certificates  []*Certificate `json:"certificates,omitempty"`
	RequiredUtxos []*Outpoint    `json:"required_utxos,omitempty"`
	FeeBuffer     uint64         `json:"fee_buffer,omitempty"`
	// Limit caps the utxos added by a single selection round, 0 means the
	// server default, a negative value means no limit.
	Limit                  int32  `json:"limit,omitempty"`
	CoinSelectionStrategy  string `json:"coin_selection_strategy,omitempty"`
	ChangeCreationStrategy string `json:"change_creation_strategy,omitempty"`
}

type SelectCoinsResponse struct {
	SelectedUtxos  []*Utxo   `json:"selected_utxos"`
	ChangeOutputs  []*Output `json:"change_outputs"`
	Inputs         []*Input  `json:"inputs"`
	ExpirationDate int64     `json:"expiration_date"`
}

type EstimateChangeResponse struct {
	SelectedUtxos []*Utxo   `json:"selected_utxos"`
	ChangeOutputs []*Output `json:"change_outputs"`
	Inputs        []*Input  `json:"inputs"`
}

type UtxosNotificationsRequest struct{}

type UtxosNotificationsResponse struct {
	// EventType is one of added, locked, unlocked, spent.
	EventType string  `json:"event_type"`
	Utxos     []*Utxo `json:"utxos"`
}
