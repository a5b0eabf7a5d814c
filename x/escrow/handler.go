package escrow

import (
	"fmt"
	"strconv"

	"github.com/iov-one/ledger"
	"github.com/iov-one/ledger/errors"
	"github.com/iov-one/ledger/x"
	"github.com/iov-one/ledger/x/cash"
	"github.com/tendermint/tendermint/libs/log"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r ledger.Registry, auth x.Authenticator, bank cash.Controller) {
	ctrl := NewController(bank)
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, ctrl: ctrl})
	r.Handle(&WithdrawMsg{}, WithdrawHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, ctrl: ctrl})
}

// caller returns the address of the main signer, or nil if the
// transaction is not signed.
func caller(ctx ledger.Context, auth x.Authenticator) ledger.Address {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil
	}
	return signer.Address()
}

func logger(ctx ledger.Context) log.Logger {
	return ledger.GetLogger(ctx).With("module", "escrow")
}

func tags(action string, e *Escrow) []ledger.Tag {
	return []ledger.Tag{
		{Key: "action", Value: action},
		{Key: "escrow", Value: Address(e.Initializer).String()},
		{Key: "initializer", Value: e.Initializer.String()},
		{Key: "taker", Value: e.Taker.String()},
		{Key: "amount", Value: strconv.FormatUint(e.Amount, 10)},
	}
}

// CreateHandler opens a new escrow.
type CreateHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = CreateHandler{}

// Check verifies the caller may open this escrow and that none is open yet.
func (h CreateHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Get(db, msg.Initializer); err == nil {
		return nil, errors.Wrapf(errors.ErrAlreadyExists, "escrow %s", Address(msg.Initializer))
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &ledger.CheckResult{}, nil
}

// Deliver moves the value into the escrow and stores the record.
func (h CreateHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	e, err := h.ctrl.Initialize(db, caller(ctx, h.auth), msg.Initializer, msg.GetTaker(), msg.Amount)
	if err != nil {
		return nil, err
	}

	audit := fmt.Sprintf("escrow initialized: %s will send %d to %s", e.Initializer, e.Amount, e.Taker)
	logger(ctx).Info(audit, "escrow", Address(e.Initializer))
	return &ledger.DeliverResult{
		Data: Address(e.Initializer),
		Log:  audit,
		Tags: tags("create", e),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h CreateHandler) validate(ctx ledger.Context, tx ledger.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !caller(ctx, h.auth).Equals(msg.Initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the initializer")
	}
	return &msg, nil
}

// WithdrawHandler releases an escrow to its taker.
type WithdrawHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = WithdrawHandler{}

// Check verifies the escrow exists and the caller is its taker.
func (h WithdrawHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	var msg WithdrawMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	e, err := h.ctrl.Get(db, msg.Initializer)
	if err != nil {
		return nil, err
	}
	if !caller(ctx, h.auth).Equals(e.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the taker")
	}
	return &ledger.CheckResult{}, nil
}

// Deliver moves the escrowed value to the taker and closes the escrow.
func (h WithdrawHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	var msg WithdrawMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	e, deposit, err := h.ctrl.Withdraw(db, caller(ctx, h.auth), msg.Initializer)
	if err != nil {
		return nil, err
	}

	audit := fmt.Sprintf("%d withdrawn by %s", e.Amount, e.Taker)
	logger(ctx).Info(audit, "escrow", Address(e.Initializer), "deposit", deposit)
	return &ledger.DeliverResult{
		Log:  audit,
		Tags: tags("withdraw", e),
	}, nil
}

// CancelHandler returns an escrow to its initializer.
type CancelHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ ledger.Handler = CancelHandler{}

// Check verifies the escrow exists and the caller is its initializer.
func (h CancelHandler) Check(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.CheckResult, error) {
	var msg CancelMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	e, err := h.ctrl.Get(db, msg.Initializer)
	if err != nil {
		return nil, err
	}
	if !caller(ctx, h.auth).Equals(e.Initializer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the initializer")
	}
	return &ledger.CheckResult{}, nil
}

// Deliver moves the escrowed value back to the initializer and closes the
// escrow.
func (h CancelHandler) Deliver(ctx ledger.Context, db ledger.KVStore, tx ledger.Tx) (*ledger.DeliverResult, error) {
	var msg CancelMsg
	if err := ledger.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	e, deposit, err := h.ctrl.Cancel(db, caller(ctx, h.auth), msg.Initializer)
	if err != nil {
		return nil, err
	}

	audit := fmt.Sprintf("%d returned to %s", e.Amount, e.Initializer)
	logger(ctx).Info(audit, "escrow", Address(e.Initializer), "deposit", deposit)
	return &ledger.DeliverResult{
		Log:  audit,
		Tags: tags("cancel", e),
	}, nil
}
