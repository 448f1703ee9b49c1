package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	datadir       = btcutil.AppDataDir("reef-cli", false)
	statePath     = filepath.Join(datadir, "state.json")
	daemonDatadir = btcutil.AppDataDir("reefd", false)

	rootCmd = &cobra.Command{
		Use:   "reef",
		Short: "CLI for reef coin selection daemon",
		Long: "This CLI lets you interact with a running reef daemon, or run " +
			"coin selections offline",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if _, err := os.Stat(datadir); os.IsNotExist(err) {
				os.MkdirAll(datadir, os.ModeDir|0755)
			}
		},
		Version:      formatVersion(),
		SilenceUsage: true,
	}
)

func initialState() map[string]string {
	return map[string]string{
		"rpcserver":     "localhost:18100",
		"no_tls":        strconv.FormatBool(false),
		"tls_cert_path": filepath.Join(daemonDatadir, "tls", "cert.pem"),
	}
}

func init() {
	rootCmd.AddCommand(configCmd, utxoCmd, selectCmd, notificationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
