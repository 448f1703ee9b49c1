package grpc_interface

import (
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
)

const (
	tlsOrganization = "reef autogenerated cert"
	tlsValidity     = 14 * 30 * 24 * time.Hour
)

// generateTLSKeyPair creates a self-signed certificate and its key in
// datadir, unless they already exist. The certificate is valid for localhost,
// the host's interfaces and the given extra ips and domains.
func generateTLSKeyPair(
	datadir string, extraIPs, extraDomains []string,
) error {
	keyPath := filepath.Join(datadir, tlsKeyFile)
	certPath := filepath.Join(datadir, tlsCertFile)
	if fileExists(keyPath) && fileExists(certPath) {
		return nil
	}

	if err := os.MkdirAll(datadir, 0700); err != nil {
		return err
	}

	extraHosts := append(append([]string{}, extraIPs...), extraDomains...)
	cert, key, err := btcutil.NewTLSCertPair(
		tlsOrganization, time.Now().Add(tlsValidity), extraHosts,
	)
	if err != nil {
		return err
	}

	if err := os.WriteFile(certPath, cert, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(keyPath, key, 0600); err != nil {
		os.Remove(certPath)
		return err
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
