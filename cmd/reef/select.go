package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"github.com/vulpemventures/reef/internal/core/application"
	protocolparams "github.com/vulpemventures/reef/internal/infrastructure/protocol-params"
	"github.com/vulpemventures/reef/internal/infrastructure/storage/db/inmemory"
	grpc_handler "github.com/vulpemventures/reef/internal/interfaces/grpc/handler"
)

const offlineAccount = "offline"

var (
	requestFile      string
	estimateOnly     bool
	offline          bool
	offlineUtxosFile string
	coinsPerUTxOByte uint64
	keyDeposit       uint64

	selectCmd = &cobra.Command{
		Use:   "select",
		Short: "select coins for a transaction",
		Long: "this command runs a coin selection for the request described in " +
			"a json file. By default the selected utxos are locked by the daemon, " +
			"use --estimate to only preview the result. With --offline the " +
			"selection is run locally over the utxos of --utxos-file without " +
			"connecting to any daemon",
		RunE: selectCoins,
	}
)

func init() {
	selectCmd.Flags().StringVarP(
		&requestFile, "file", "f", "", "json file with the selection request",
	)
	selectCmd.Flags().BoolVar(
		&estimateOnly, "estimate", false,
		"estimate the change without locking the selected utxos",
	)
	selectCmd.Flags().BoolVar(
		&offline, "offline", false,
		"run the selection locally instead of asking the daemon",
	)
	selectCmd.Flags().StringVar(
		&offlineUtxosFile, "utxos-file", "",
		"json file with the utxos to select from, required with --offline",
	)
	selectCmd.Flags().Uint64Var(
		&coinsPerUTxOByte, "coins-per-utxo-byte",
		protocolparams.DefaultCoinsPerUTxOByte,
		"cost per output byte used with --offline",
	)
	selectCmd.Flags().Uint64Var(
		&keyDeposit, "key-deposit", protocolparams.DefaultKeyDeposit,
		"stake key deposit used with --offline",
	)
	selectCmd.MarkFlagRequired("file")
}

func selectCoins(_ *cobra.Command, _ []string) error {
	var req pb.SelectCoinsRequest
	if err := readJSONFile(requestFile, &req); err != nil {
		return err
	}

	if offline {
		return selectCoinsOffline(&req)
	}

	client, cleanup, err := getSelectionClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	if estimateOnly {
		reply, err := client.EstimateChange(ctx, &req)
		if err != nil {
			printErr(err)
			return nil
		}
		return printJSON(reply)
	}

	reply, err := client.SelectCoins(ctx, &req)
	if err != nil {
		printErr(err)
		return nil
	}
	return printJSON(reply)
}

// selectCoinsOffline estimates the change of the request over the utxos of
// the given file by running the selection in process.
func selectCoinsOffline(req *pb.SelectCoinsRequest) error {
	if offlineUtxosFile == "" {
		return fmt.Errorf("--utxos-file is required with --offline")
	}
	var utxos []*pb.Utxo
	if err := readJSONFile(offlineUtxosFile, &utxos); err != nil {
		return err
	}

	params, err := protocolparams.NewProtocolParams(coinsPerUTxOByte, keyDeposit)
	if err != nil {
		return err
	}

	repoManager := inmemory.NewRepoManager()
	utxoHandler := grpc_handler.NewUtxoHandler(
		application.NewUtxoService(repoManager),
	)
	selectionHandler := grpc_handler.NewSelectionHandler(
		application.NewSelectionService(repoManager, params, time.Minute),
	)

	if req.AccountName == "" {
		req.AccountName = offlineAccount
	}

	ctx := context.Background()
	if _, err := utxoHandler.AddUtxos(ctx, &pb.AddUtxosRequest{
		AccountName: req.AccountName,
		Utxos:       utxos,
	}); err != nil {
		printErr(err)
		return nil
	}

	reply, err := selectionHandler.EstimateChange(ctx, req)
	if err != nil {
		printErr(err)
		return nil
	}
	return printJSON(reply)
}
