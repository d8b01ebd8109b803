package utils

import (
	"context"
	"errors"

	"github.com/asdine/storm"
	bolt "go.etcd.io/bbolt"
)

const (
	// Error Codes
	ErrInsufficientBalance = "insufficient_balance"
	ErrInvalid             = "invalid"
	ErrWalletDatabaseInUse = "wallet_db_in_use"
	ErrPassphraseRequired  = "passphrase_required"
	ErrInvalidPassphrase   = "invalid_passphrase"
	ErrNotConnected        = "not_connected"
	ErrExist               = "exists"
	ErrNotExist            = "not_exists"
	ErrEmptySeed           = "empty_seed"
	ErrInvalidSeed         = "invalid_seed"
	ErrInvalidAddress      = "invalid_address"
	ErrInvalidAmount       = "invalid_amount"
	ErrUnavailable         = "unavailable"
	ErrContextCanceled     = "context_canceled"
	ErrRPCFailed           = "rpc_failed"
)

var (
	ErrInvalidNet = errors.New("invalid network type found")
	// ErrDecryptFailed is returned when a secret cannot be opened, which
	// almost always means a wrong password.
	ErrDecryptFailed = errors.New("unable to decrypt secret")
)

// CodedError carries one of the error codes above. Activities show the code
// to the user and keep the wrapped error for the logs.
type CodedError struct {
	Code string
	Err  error
}

func (e *CodedError) Error() string {
	if e.Err == nil {
		return e.Code
	}
	return e.Code + ": " + e.Err.Error()
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// NewError wraps err with code.
func NewError(code string, err error) error {
	return &CodedError{Code: code, Err: err}
}

// TranslateError maps storage, crypto and transport errors to a CodedError.
// Errors that already carry a code and unknown errors are returned as is.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}
	var coded *CodedError
	if errors.As(err, &coded) {
		return err
	}

	switch {
	case errors.Is(err, storm.ErrNotFound):
		return NewError(ErrNotExist, err)
	case errors.Is(err, storm.ErrAlreadyExists):
		return NewError(ErrExist, err)
	case errors.Is(err, bolt.ErrTimeout):
		return NewError(ErrWalletDatabaseInUse, err)
	case errors.Is(err, ErrDecryptFailed):
		return NewError(ErrInvalidPassphrase, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewError(ErrContextCanceled, err)
	}
	return err
}

// ErrorCode returns the code carried by err, or ErrInvalid.
func ErrorCode(err error) string {
	var coded *CodedError
	if errors.As(TranslateError(err), &coded) {
		return coded.Code
	}
	return ErrInvalid
}
