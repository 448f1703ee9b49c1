package main

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	pb "github.com/vulpemventures/reef/api-spec/go/reef/v1"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
)

const lovelacePrecision = 6

var (
	maxMsgRecvSize = grpc.MaxCallRecvMsgSize(1 * 1024 * 1024 * 200)
	colorRed       = string("\033[31m")
)

func getUtxoClient() (pb.UtxoServiceClient, func(), error) {
	conn, err := getClientConn()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { conn.Close() }
	return pb.NewUtxoServiceClient(conn), cleanup, nil
}

func getSelectionClient() (pb.SelectionServiceClient, func(), error) {
	conn, err := getClientConn()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { conn.Close() }
	return pb.NewSelectionServiceClient(conn), cleanup, nil
}

func getNotificationClient() (pb.NotificationServiceClient, func(), error) {
	conn, err := getClientConn()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() { conn.Close() }
	return pb.NewNotificationServiceClient(conn), cleanup, nil
}

func getClientConn() (*grpc.ClientConn, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return nil, fmt.Errorf("set rpcserver with `config set rpcserver`")
	}

	opts := []grpc.DialOption{grpc.WithDefaultCallOptions(maxMsgRecvSize)}

	noTLS, _ := strconv.ParseBool(state["no_tls"])
	if noTLS {
		opts = append(opts, grpc.WithTransportCredentials(insecure.NewCredentials()))
	} else {
		certPath, ok := state["tls_cert_path"]
		if !ok || certPath == "" {
			return nil, fmt.Errorf(
				"missing TLS certificate filepath. Try " +
					"'reef config set tls_cert_path path/to/tls/certificate'",
			)
		}

		tlsCreds, err := credentials.NewClientTLSFromFile(certPath, "")
		if err != nil {
			return nil, fmt.Errorf("failed to load TLS certificate:  %s", err)
		}
		opts = append(opts, grpc.WithTransportCredentials(tlsCreds))
	}

	conn, err := grpc.Dial(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to reef daemon: %v", err)
	}
	return conn, nil
}

func getState() (map[string]string, error) {
	file, err := os.ReadFile(statePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := writeState(initialState()); err != nil {
			return nil, err
		}
		return initialState(), nil
	}

	data := map[string]string{}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid state file: %s", err)
	}
	return data, nil
}

func setState(partialState map[string]string) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range partialState {
		state[key] = value
	}
	return writeState(state)
}

func writeState(state map[string]string) error {
	dir := filepath.Dir(statePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err = os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("failed to create directory: %v", err)
		}
	}

	buf, _ := json.MarshalIndent(state, "", "  ")
	if err := os.WriteFile(statePath, buf, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func cleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	return filepath.Clean(os.ExpandEnv(path))
}

// readJSONFile decodes the content of the file at path into v.
func readJSONFile(path string, v interface{}) error {
	buf, err := os.ReadFile(cleanAndExpandPath(path))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, v); err != nil {
		return fmt.Errorf("invalid json file %s: %s", path, err)
	}
	return nil
}

// parseOutpoints parses a list of txid:index strings.
func parseOutpoints(strs []string) ([]*pb.Outpoint, error) {
	outpoints := make([]*pb.Outpoint, 0, len(strs))
	for _, str := range strs {
		parts := strings.Split(str, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid utxo %q, must be in form txid:index", str)
		}
		index, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid utxo index %q", parts[1])
		}
		outpoints = append(outpoints, &pb.Outpoint{
			Txid: parts[0], Index: uint32(index),
		})
	}
	return outpoints, nil
}

// formatAda returns the given lovelace amount in ADA.
func formatAda(lovelace uint64) string {
	amount := decimal.NewFromBigInt(
		new(big.Int).SetUint64(lovelace), -lovelacePrecision,
	)
	return amount.StringFixed(lovelacePrecision)
}

func printJSON(v interface{}) error {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal response: %s", err)
	}
	fmt.Println(string(buf))
	return nil
}

func printErr(err error) {
	s := status.Convert(err)
	msg := fmt.Sprintf("%s%s", colorRed, capitalize(s.Message()))
	fmt.Fprintln(os.Stderr, msg)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	ss := strings.ToUpper(s[0:1])
	ss += s[1:]
	return ss
}

func formatVersion() string {
	return fmt.Sprintf(
		"\nVersion: %s\nCommit: %s\nDate: %s", version, commit, date,
	)
}
