package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup or targeted update matches no document
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique index rejects an insert
	ErrDuplicateKey = errors.New("duplicate key")
)

// translate maps driver errors onto the repository error set
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicateKey
	}
	return err
}
