package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/app"
	escrowd "github.com/iov-one/ledger/cmd/escrowd/app"
)

func cmdGenesis(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print a new genesis file. Each argument funds an account and must be of the
form <address>:<amount>.
`)
		fl.PrintDefaults()
	}
	var (
		chainIDFl = fl.String("chain-id", conf.ChainID, "Chain ID of the new ledger.")
		depositFl = fl.Uint64("deposit", 0, "Storage deposit charged per byte of an escrow.")
	)
	fl.Parse(args)

	accounts := make([]escrowd.GenesisAccount, 0, fl.NArg())
	for _, arg := range fl.Args() {
		chunks := strings.SplitN(arg, ":", 2)
		if len(chunks) != 2 {
			return fmt.Errorf("invalid account %q", arg)
		}
		addr, err := ledger.ParseAddress(chunks[0])
		if err != nil {
			return fmt.Errorf("invalid account address %q: %s", chunks[0], err)
		}
		amount, err := strconv.ParseUint(chunks[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid account amount %q: %s", chunks[1], err)
		}
		accounts = append(accounts, escrowd.GenesisAccount{Address: addr, Amount: amount})
	}

	gen, err := escrowd.GenInitOptions(*chainIDFl, *depositFl, accounts...)
	if err != nil {
		return fmt.Errorf("cannot build genesis: %s", err)
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize genesis: %s", err)
	}
	_, err = fmt.Fprintln(output, string(raw))
	return err
}

func cmdInit(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new ledger from a genesis file.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory to store the ledger under.")
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return fmt.Errorf("cannot load genesis: %s", err)
	}

	s, err := openApp(conf, *homeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.InitChain(gen); err != nil {
		return fmt.Errorf("cannot initialize chain: %s", err)
	}
	id, err := s.Commit()
	if err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	_, err = fmt.Fprintf(output, "chain %s initialized at version %d\n", s.GetChainID(), id.Version)
	return err
}

func cmdVersion(conf Config, output io.Writer, args []string) error {
	_, err := fmt.Fprintln(output, ledger.Version())
	return err
}

// openApp returns the application storing its state in home.
func openApp(conf Config, home string) (*app.StoreApp, error) {
	if err := os.MkdirAll(home, 0700); err != nil {
		return nil, fmt.Errorf("cannot create home directory: %s", err)
	}
	logger, err := conf.Logger()
	if err != nil {
		return nil, fmt.Errorf("cannot create logger: %s", err)
	}
	s, err := escrowd.Application(filepath.Join(home, "escrowd.db"), logger)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger: %s", err)
	}
	return s, nil
}
