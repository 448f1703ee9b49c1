package queries

import (
	"context"
)

const deleteAllUtxos = `DELETE FROM utxo
`

func (q *Queries) DeleteAllUtxos(ctx context.Context) error {
	_, err := q.db.Exec(ctx, deleteAllUtxos)
	return err
}

const deleteUtxosForAccountName = `DELETE FROM utxo WHERE account_name = $1
`

func (q *Queries) DeleteUtxosForAccountName(ctx context.Context, accountName string) error {
	_, err := q.db.Exec(ctx, deleteUtxosForAccountName, accountName)
	return err
}

const getAllUtxos = `SELECT id, tx_id, vout, account_name, lovelace, output_address, datum_option, script_reference, lock_timestamp, lock_expiry_timestamp, spent_tx_id, spent_block_height, spent_block_time, spent_block_hash FROM utxo ORDER BY id
`

func (q *Queries) GetAllUtxos(ctx context.Context) ([]Utxo, error) {
	rows, err := q.db.Query(ctx, getAllUtxos)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Utxo
	for rows.Next() {
		var i Utxo
		if err := scanUtxo(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAssetsForUtxos = `SELECT fk_utxo_id, policy_id, asset_name, quantity::text AS quantity
FROM utxo_asset WHERE fk_utxo_id = ANY($1::int[])
ORDER BY fk_utxo_id, position
`

type GetAssetsForUtxosRow struct {
	FkUtxoID  int32
	PolicyID  string
	AssetName string
	Quantity  string
}

func (q *Queries) GetAssetsForUtxos(ctx context.Context, ids []int32) ([]GetAssetsForUtxosRow, error) {
	rows, err := q.db.Query(ctx, getAssetsForUtxos, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetAssetsForUtxosRow
	for rows.Next() {
		var i GetAssetsForUtxosRow
		if err := rows.Scan(
			&i.FkUtxoID,
			&i.PolicyID,
			&i.AssetName,
			&i.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getUtxoForKey = `SELECT id, tx_id, vout, account_name, lovelace, output_address, datum_option, script_reference, lock_timestamp, lock_expiry_timestamp, spent_tx_id, spent_block_height, spent_block_time, spent_block_hash FROM utxo WHERE tx_id = $1 AND vout = $2
`

type GetUtxoForKeyParams struct {
	TxID string
	Vout int32
}

func (q *Queries) GetUtxoForKey(ctx context.Context, arg GetUtxoForKeyParams) (Utxo, error) {
	row := q.db.QueryRow(ctx, getUtxoForKey, arg.TxID, arg.Vout)
	var i Utxo
	err := scanUtxo(row, &i)
	return i, err
}

const getUtxosForAccount = `SELECT id, tx_id, vout, account_name, lovelace, output_address, datum_option, script_reference, lock_timestamp, lock_expiry_timestamp, spent_tx_id, spent_block_height, spent_block_time, spent_block_hash FROM utxo WHERE account_name = $1 ORDER BY id
`

func (q *Queries) GetUtxosForAccount(ctx context.Context, accountName string) ([]Utxo, error) {
	rows, err := q.db.Query(ctx, getUtxosForAccount, accountName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Utxo
	for rows.Next() {
		var i Utxo
		if err := scanUtxo(rows, &i); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertUtxo = `INSERT INTO utxo (
    tx_id, vout, account_name, lovelace, output_address, datum_option,
    script_reference, lock_timestamp, lock_expiry_timestamp
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, tx_id, vout, account_name, lovelace, output_address, datum_option, script_reference, lock_timestamp, lock_expiry_timestamp, spent_tx_id, spent_block_height, spent_block_time, spent_block_hash
`

type InsertUtxoParams struct {
	TxID                string
	Vout                int32
	AccountName         string
	Lovelace            int64
	OutputAddress       string
	DatumOption         []byte
	ScriptReference     []byte
	LockTimestamp       int64
	LockExpiryTimestamp int64
}

func (q *Queries) InsertUtxo(ctx context.Context, arg InsertUtxoParams) (Utxo, error) {
	row := q.db.QueryRow(ctx, insertUtxo,
		arg.TxID,
		arg.Vout,
		arg.AccountName,
		arg.Lovelace,
		arg.OutputAddress,
		arg.DatumOption,
		arg.ScriptReference,
		arg.LockTimestamp,
		arg.LockExpiryTimestamp,
	)
	var i Utxo
	err := scanUtxo(row, &i)
	return i, err
}

const insertUtxoAsset = `INSERT INTO utxo_asset (fk_utxo_id, position, policy_id, asset_name, quantity)
VALUES ($1, $2, $3, $4, $5::text::numeric)
`

type InsertUtxoAssetParams struct {
	FkUtxoID  int32
	Position  int32
	PolicyID  string
	AssetName string
	Quantity  string
}

func (q *Queries) InsertUtxoAsset(ctx context.Context, arg InsertUtxoAssetParams) error {
	_, err := q.db.Exec(ctx, insertUtxoAsset,
		arg.FkUtxoID,
		arg.Position,
		arg.PolicyID,
		arg.AssetName,
		arg.Quantity,
	)
	return err
}

const updateUtxoLock = `UPDATE utxo SET lock_timestamp = $1, lock_expiry_timestamp = $2
WHERE id = $3
`

type UpdateUtxoLockParams struct {
	LockTimestamp       int64
	LockExpiryTimestamp int64
	ID                  int32
}

func (q *Queries) UpdateUtxoLock(ctx context.Context, arg UpdateUtxoLockParams) error {
	_, err := q.db.Exec(ctx, updateUtxoLock, arg.LockTimestamp, arg.LockExpiryTimestamp, arg.ID)
	return err
}

const updateUtxoSpentStatus = `UPDATE utxo SET spent_tx_id = $1, spent_block_height = $2,
    spent_block_time = $3, spent_block_hash = $4,
    lock_timestamp = 0, lock_expiry_timestamp = 0
WHERE id = $5
`

type UpdateUtxoSpentStatusParams struct {
	SpentTxID        string
	SpentBlockHeight int64
	SpentBlockTime   int64
	SpentBlockHash   string
	ID               int32
}

func (q *Queries) UpdateUtxoSpentStatus(ctx context.Context, arg UpdateUtxoSpentStatusParams) error {
	_, err := q.db.Exec(ctx, updateUtxoSpentStatus,
		arg.SpentTxID,
		arg.SpentBlockHeight,
		arg.SpentBlockTime,
		arg.SpentBlockHash,
		arg.ID,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUtxo(row rowScanner, i *Utxo) error {
	return row.Scan(
		&i.ID,
		&i.TxID,
		&i.Vout,
		&i.AccountName,
		&i.Lovelace,
		&i.OutputAddress,
		&i.DatumOption,
		&i.ScriptReference,
		&i.LockTimestamp,
		&i.LockExpiryTimestamp,
		&i.SpentTxID,
		&i.SpentBlockHeight,
		&i.SpentBlockTime,
		&i.SpentBlockHash,
	)
}
