package ledger

import (
	"reflect"
	"regexp"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/ledger/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_\-]+/[a-zA-Z0-9_\-]+$`).MatchString

// Msg is message for the ledger to take an action
// (Make a state transition). It is just the request, and
// must be validated by the Handlers. All authentication
// information is in the wrapping Tx.
type Msg interface {
	proto.Message

	// Validate performs a sanity check of the message content, without
	// touching the state.
	Validate() error

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Must be of the form <extension>/<name>.
	Path() string
}

// Tx represent the data sent from the user to the ledger.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures).
type Tx interface {
	proto.Message

	// GetMsg returns the action we wish to communicate.
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "empty transaction")
	}

	// Rather than passing destination as a reflect.Value pointer, we
	// accept the pointer to the message type and set its value.
	msgVal := reflect.ValueOf(msg)
	if msgVal.Kind() != reflect.Ptr {
		return errors.Wrapf(errors.ErrType, "message must be a pointer, got %T", msg)
	}
	destVal := reflect.ValueOf(destination)
	if destVal.Kind() != reflect.Ptr {
		return errors.Wrap(errors.ErrType, "destination must be a pointer")
	}
	if msgVal.Type() != destVal.Type() {
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}
	destVal.Elem().Set(msgVal.Elem())

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

// Marshal serializes a protobuf message.
func Marshal(m proto.Message) ([]byte, error) {
	bz, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrType, err.Error())
	}
	return bz, nil
}

// Unmarshal loads a protobuf message from its serialized form.
func Unmarshal(bz []byte, m proto.Message) error {
	if err := proto.Unmarshal(bz, m); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// ValidatePath returns an error if given message path is malformed.
func ValidatePath(path string) error {
	if !isPath(path) {
		return errors.Wrapf(errors.ErrHuman, "invalid message path %q", path)
	}
	return nil
}
