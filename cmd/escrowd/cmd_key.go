package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/iov-one/ledger/crypto"
)

func cmdKeygen(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

When successful a new file with hex encoded private key is created. This
command fails if the private key file already exists. When a seed is given,
the key is derived from it using the given derivation path.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", conf.KeyPath, "Path to the private key file.")
		seedFl    = fl.String("seed", "", "Optional hex encoded master seed to derive the key from.")
		pathFl    = fl.String("path", crypto.DefaultPath, "Derivation path used together with the seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first.
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	key := crypto.GenPrivKeyEd25519()
	if *seedFl != "" {
		seed, err := hex.DecodeString(*seedFl)
		if err != nil {
			return fmt.Errorf("cannot decode seed: %s", err)
		}
		if key, err = crypto.DeriveKey(seed, *pathFl); err != nil {
			return fmt.Errorf("cannot derive key: %s", err)
		}
	}

	if err := ioutil.WriteFile(*keyPathFl, []byte(hex.EncodeToString(key)), 0600); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	_, err := fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func cmdAddr(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the address associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", conf.KeyPath, "Path to the private key file.")
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, key.PublicKey().Address())
	return err
}

func readKey(path string) (crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	key, err := crypto.ParsePrivateKey(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %s", err)
	}
	return key, nil
}
