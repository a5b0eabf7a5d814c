package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/ledger"
	escrowd "github.com/iov-one/ledger/cmd/escrowd/app"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x/cash"
	"github.com/iov-one/ledger/x/escrow"
)

func cmdInitialize(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open an escrow, moving the amount from the key owner to the escrow address.
Without a taker, the key owner escrows for itself.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored under.")
		keyPathFl = fl.String("key", conf.KeyPath, "Path to the private key file of the initializer.")
		amountFl  = fl.Uint64("amount", 0, "Amount to be held by the escrow.")
		takerFl   addressFlag
	)
	fl.Var(&takerFl, "taker", "Address of the party that can withdraw the escrow.")
	fl.Parse(args)

	return deliver(conf, output, *homeFl, *keyPathFl, func(signer ledger.Address) ledger.Msg {
		return &escrow.CreateMsg{
			Initializer: signer,
			Taker:       takerFl.addr,
			Amount:      *amountFl,
		}
	})
}

func cmdWithdraw(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Withdraw the escrow opened by the initializer. Only its taker can withdraw.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl        = fl.String("home", conf.Home, "Directory the ledger is stored under.")
		keyPathFl     = fl.String("key", conf.KeyPath, "Path to the private key file of the taker.")
		initializerFl addressFlag
	)
	fl.Var(&initializerFl, "initializer", "Address of the party that opened the escrow.")
	fl.Parse(args)

	return deliver(conf, output, *homeFl, *keyPathFl, func(ledger.Address) ledger.Msg {
		return &escrow.WithdrawMsg{Initializer: initializerFl.addr}
	})
}

func cmdCancel(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Cancel an escrow and return its amount to the initializer. Only the
initializer can cancel.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl        = fl.String("home", conf.Home, "Directory the ledger is stored under.")
		keyPathFl     = fl.String("key", conf.KeyPath, "Path to the private key file of the initializer.")
		initializerFl addressFlag
	)
	fl.Var(&initializerFl, "initializer", "Address of the party that opened the escrow. Defaults to the key owner.")
	fl.Parse(args)

	return deliver(conf, output, *homeFl, *keyPathFl, func(signer ledger.Address) ledger.Msg {
		initializer := initializerFl.addr
		if initializer == nil {
			initializer = signer
		}
		return &escrow.CancelMsg{Initializer: initializer}
	})
}

func cmdSend(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Send tokens from the key owner to another account.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored under.")
		keyPathFl = fl.String("key", conf.KeyPath, "Path to the private key file of the sender.")
		amountFl  = fl.Uint64("amount", 0, "Amount to send.")
		toFl      addressFlag
	)
	fl.Var(&toFl, "to", "Address of the recipient.")
	fl.Parse(args)

	return deliver(conf, output, *homeFl, *keyPathFl, func(ledger.Address) ledger.Msg {
		return &cash.SendMsg{Destination: toFl.addr, Amount: *amountFl}
	})
}

// deliver signs the message built for the key owner, executes it and
// commits the result.
func deliver(conf Config, output io.Writer, home, keyPath string, build func(signer ledger.Address) ledger.Msg) error {
	key, err := readKey(keyPath)
	if err != nil {
		return err
	}
	s, err := openApp(conf, home)
	if err != nil {
		return err
	}
	defer s.Close()

	msg := build(key.PublicKey().Address())
	var raw []byte
	err = s.View(func(db ledger.ReadOnlyKVStore) error {
		raw, err = escrowd.SignTx(db, s.GetChainID(), key, msg)
		return err
	})
	if err != nil {
		return fmt.Errorf("cannot build transaction: %s", err)
	}

	res, err := s.DeliverTx(raw)
	if err != nil {
		code, info := errors.Info(err, false)
		return fmt.Errorf("transaction rejected (code %d): %s", code, info)
	}
	if _, err := s.Commit(); err != nil {
		return fmt.Errorf("cannot commit: %s", err)
	}
	if res.Log != "" {
		fmt.Fprintln(output, res.Log)
	}
	return nil
}

func cmdEscrow(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the escrow opened by the initializer given as the only argument. Without
an argument all open escrows are printed.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", conf.Home, "Directory the ledger is stored under.")
	)
	fl.Parse(args)

	s, err := openApp(conf, *homeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	ctrl := escrow.NewController(escrowd.CashControl())
	var found []*escrow.Escrow
	err = s.View(func(db ledger.ReadOnlyKVStore) error {
		if fl.NArg() == 0 {
			found, err = ctrl.List(db)
			return err
		}
		initializer, err := ledger.ParseAddress(fl.Arg(0))
		if err != nil {
			return err
		}
		e, err := ctrl.Get(db, initializer)
		if err != nil {
			return err
		}
		found = append(found, e)
		return nil
	})
	if err != nil {
		return fmt.Errorf("cannot load escrow: %s", err)
	}

	type view struct {
		Address ledger.Address `json:"address"`
		*escrow.Escrow
	}
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	for _, e := range found {
		if err := enc.Encode(view{Address: escrow.Address(e.Initializer), Escrow: e}); err != nil {
			return fmt.Errorf("cannot serialize escrow: %s", err)
		}
	}
	return nil
}

func cmdBalance(conf Config, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of the address given as the only argument, or of the key
owner when no address is given.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", conf.Home, "Directory the ledger is stored under.")
		keyPathFl = fl.String("key", conf.KeyPath, "Path to the private key file used when no address is given.")
	)
	fl.Parse(args)

	var addr ledger.Address
	if fl.NArg() == 0 {
		key, err := readKey(*keyPathFl)
		if err != nil {
			return err
		}
		addr = key.PublicKey().Address()
	} else {
		a, err := ledger.ParseAddress(fl.Arg(0))
		if err != nil {
			return fmt.Errorf("invalid address: %s", err)
		}
		addr = a
	}

	s, err := openApp(conf, *homeFl)
	if err != nil {
		return err
	}
	defer s.Close()

	var amount uint64
	err = s.View(func(db ledger.ReadOnlyKVStore) error {
		amount, err = escrowd.CashControl().Balance(db, addr)
		return err
	})
	if err != nil {
		return fmt.Errorf("cannot load balance: %s", err)
	}
	_, err = fmt.Fprintln(output, amount)
	return err
}
