package mongo

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// PersistenceError a store operation failed; mongo.ErrNoDocuments is never wrapped
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func wrapErr(op string, err error) error {
	if err == nil || errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return &PersistenceError{Op: op, Err: errors.WithStack(err)}
}
