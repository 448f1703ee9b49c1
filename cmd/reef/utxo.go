package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
)

var (
	accountName   string
	utxosFile     string
	utxoOutpoints []string
	spentTxid     string
	blockHeight   uint64
	blockTime     int64
	blockHash     string

	utxoAddCmd = &cobra.Command{
		Use:   "add",
		Short: "add utxos to an account",
		Long: "this command lets you add to the given account the utxos listed " +
			"in a json file",
		RunE: utxoAdd,
	}
	utxoListCmd = &cobra.Command{
		Use:   "list",
		Short: "list account utxos",
		Long: "this command returns the list of spendable and locked utxos of " +
			"the given account",
		RunE: utxoList,
	}
	utxoBalanceCmd = &cobra.Command{
		Use:   "balance",
		Short: "get account balance",
		Long: "this command returns the spendable and locked balance of the " +
			"given account",
		RunE: utxoBalance,
	}
	utxoUnlockCmd = &cobra.Command{
		Use:   "unlock",
		Short: "unlock utxos",
		Long: "this command lets you unlock one or more utxos locked by a " +
			"previous coin selection",
		RunE: utxoUnlock,
	}
	utxoSpendCmd = &cobra.Command{
		Use:   "spend",
		Short: "mark utxos as spent",
		Long: "this command lets you mark one or more utxos as spent by the " +
			"given transaction",
		RunE: utxoSpend,
	}
	utxoDeleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "delete account utxos",
		Long:  "this command deletes all the utxos of the given account",
		RunE:  utxoDelete,
	}
	utxoCmd = &cobra.Command{
		Use:   "utxo",
		Short: "interact with reef utxo interface",
		Long: "this command lets you add, list, unlock, spend or delete the " +
			"utxos coin selections are run over",
	}
)

func init() {
	utxoAddCmd.Flags().StringVarP(
		&utxosFile, "file", "f", "", "json file with the list of utxos to add",
	)
	utxoAddCmd.MarkFlagRequired("file")

	utxoUnlockCmd.Flags().StringSliceVarP(
		&utxoOutpoints, "utxo", "u", nil, "utxo to unlock in form txid:index",
	)
	utxoUnlockCmd.MarkFlagRequired("utxo")

	utxoSpendCmd.Flags().StringSliceVarP(
		&utxoOutpoints, "utxo", "u", nil, "utxo to mark as spent in form txid:index",
	)
	utxoSpendCmd.Flags().StringVar(&spentTxid, "txid", "", "hash of the spending tx")
	utxoSpendCmd.Flags().Uint64Var(
		&blockHeight, "block-height", 0, "height of the block including the tx",
	)
	utxoSpendCmd.Flags().Int64Var(
		&blockTime, "block-time", 0, "timestamp of the block including the tx",
	)
	utxoSpendCmd.Flags().StringVar(
		&blockHash, "block-hash", "", "hash of the block including the tx",
	)
	utxoSpendCmd.MarkFlagRequired("utxo")
	utxoSpendCmd.MarkFlagRequired("txid")

	utxoCmd.PersistentFlags().StringVar(
		&accountName, "account-name", "", "account the utxos belong to",
	)

	utxoCmd.AddCommand(
		utxoAddCmd, utxoListCmd, utxoBalanceCmd, utxoUnlockCmd, utxoSpendCmd,
		utxoDeleteCmd,
	)
}

func utxoAdd(_ *cobra.Command, _ []string) error {
	if accountName == "" {
		return fmt.Errorf("missing account name")
	}
	var utxos []*pb.Utxo
	if err := readJSONFile(utxosFile, &utxos); err != nil {
		return err
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.AddUtxos(context.Background(), &pb.AddUtxosRequest{
		AccountName: accountName,
		Utxos:       utxos,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	return printJSON(reply)
}

func utxoList(_ *cobra.Command, _ []string) error {
	if accountName == "" {
		return fmt.Errorf("missing account name")
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.ListUtxos(context.Background(), &pb.ListUtxosRequest{
		AccountName: accountName,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	return printJSON(reply)
}

func utxoBalance(_ *cobra.Command, _ []string) error {
	if accountName == "" {
		return fmt.Errorf("missing account name")
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.GetBalance(context.Background(), &pb.GetBalanceRequest{
		AccountName: accountName,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	return printJSON(map[string]interface{}{
		"spendable":     reply.Spendable,
		"locked":        reply.Locked,
		"spendable_ada": formatAda(lovelaceOf(reply.Spendable)),
		"locked_ada":    formatAda(lovelaceOf(reply.Locked)),
	})
}

func utxoUnlock(_ *cobra.Command, _ []string) error {
	outpoints, err := parseOutpoints(utxoOutpoints)
	if err != nil {
		return err
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.UnlockUtxos(context.Background(), &pb.UnlockUtxosRequest{
		Utxos: outpoints,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	return printJSON(reply)
}

func utxoSpend(_ *cobra.Command, _ []string) error {
	outpoints, err := parseOutpoints(utxoOutpoints)
	if err != nil {
		return err
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	reply, err := client.SpendUtxos(context.Background(), &pb.SpendUtxosRequest{
		Utxos:       outpoints,
		Txid:        spentTxid,
		BlockHeight: blockHeight,
		BlockTime:   blockTime,
		BlockHash:   blockHash,
	})
	if err != nil {
		printErr(err)
		return nil
	}

	return printJSON(reply)
}

func utxoDelete(_ *cobra.Command, _ []string) error {
	if accountName == "" {
		return fmt.Errorf("missing account name")
	}

	client, cleanup, err := getUtxoClient()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := client.DeleteUtxos(context.Background(), &pb.DeleteUtxosRequest{
		AccountName: accountName,
	}); err != nil {
		printErr(err)
		return nil
	}

	fmt.Printf("utxos of account %s have been deleted\n", accountName)
	return nil
}

func lovelaceOf(value *pb.Value) uint64 {
	if value == nil {
		return 0
	}
	return value.Lovelace
}
