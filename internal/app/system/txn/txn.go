// internal/app/system/txn/txn.go

// Package txn runs multi-document writes inside a MongoDB transaction
// when the deployment supports them (replica set / mongos), and falls
// back to plain sequential execution on standalone servers, which
// reject sessions and transactions outright.
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction executes fn inside a transaction. If the server does
// not support transactions, fn runs directly against the plain context
// and the writes are applied sequentially (best effort).
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// Server error codes returned when transactions are attempted against
// a deployment that cannot run them.
const (
	codeTransactionNumbers = 20  // "Transaction numbers are only allowed on a replica set member"
	codeIllegalOperation   = 51
	codeOperationNotInTxn  = 263
)

// IsNotSupported reports whether err indicates the deployment cannot
// run transactions (standalone server, old topology). It matches known
// command error codes and, for wrapped or driver-side errors, pairs of
// telltale message fragments.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case codeTransactionNumbers, codeIllegalOperation, codeOperationNotInTxn:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	has := func(s string) bool { return strings.Contains(msg, s) }
	switch {
	case has("transaction") && has("replica set"):
		return true
	case has("session") && has("not supported"):
		return true
	case has("transaction") && has("session"):
		return true
	case has("illegal operation") && has("transaction"):
		return true
	}
	return false
}
