package main

import (
	"crypto/ecdsa"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

// Writes an encrypted keystore for the updater signer. With -key an existing
// hex private key is imported, otherwise a fresh one is generated.
func main() {
	keysDir := flag.String("dir", "keys", "output directory")
	name := flag.String("name", "updater.key.json", "keystore file name")
	password := flag.String("password", os.Getenv("UPDATER_KEYSTORE_PASSWORD"), "keystore password")
	hexKey := flag.String("key", "", "hex private key to import")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "password is required (-password or UPDATER_KEYSTORE_PASSWORD)")
		os.Exit(1)
	}

	if err := os.MkdirAll(*keysDir, 0o700); err != nil {
		panic(err)
	}

	var (
		privateKey *ecdsa.PrivateKey
		err        error
	)
	if *hexKey != "" {
		privateKey, err = crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(*hexKey), "0x"))
	} else {
		privateKey, err = crypto.GenerateKey()
	}
	if err != nil {
		panic(err)
	}

	// import into a scratch keystore, then move the UTC-- file to its final name
	tmpDir, err := os.MkdirTemp(*keysDir, ".ks-")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	ks := keystore.NewKeyStore(tmpDir, keystore.StandardScryptN, keystore.StandardScryptP)
	account, err := ks.ImportECDSA(privateKey, *password)
	if err != nil {
		panic(err)
	}

	newPath := filepath.Join(*keysDir, *name)
	if err := os.Rename(account.URL.Path, newPath); err != nil {
		panic(err)
	}

	fmt.Printf("Keystore: %s\n", newPath)
	fmt.Printf("Address:  %s\n", account.Address.Hex())
	fmt.Printf("Run with: UPDATER_KEYSTORE_PATH=%s UPDATER_KEYSTORE_PASSWORD=... updater start\n", newPath)
}
