// Package txn runs multi-document Mongo operations in a transaction when the
// server supports them, falling back to sequential execution on standalone
// servers (which reject sessions and transactions).
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Run executes fn inside a Mongo transaction. If the server does not support
// transactions (standalone, no replica set), fn is re-run without one so the
// operations still apply, just without atomicity.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn func(ctx context.Context) error) error {
	client := db.Client()

	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			if log != nil {
				log.Debug("transactions unavailable, running sequentially", zap.Error(err))
			}
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		if log != nil {
			log.Debug("transactions unavailable, running sequentially", zap.Error(err))
		}
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the server cannot run
// transactions or sessions. Matches the known Mongo error codes and a few
// message patterns standalone servers produce.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "replica set") {
		return true
	}
	if strings.Contains(msg, "session") && strings.Contains(msg, "not supported") {
		return true
	}
	if strings.Contains(msg, "transaction") && strings.Contains(msg, "session") {
		return true
	}
	if strings.Contains(msg, "illegal operation") {
		return true
	}
	return false
}
