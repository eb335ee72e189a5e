package services

import (
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"

	"gadget-store/models"
)

// Postgres unique_violation. The count-based name checks are racy; the unique
// indexes are the backstop, and the race loser must still see a conflict.
const uniqueViolationCode = "23505"

// storageError logs the underlying store failure with context and returns the
// generic message the client is allowed to see. Unique-index violations come
// back as conflicts rather than server errors.
func storageError(message string, err error) *models.AppError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		log.Printf("%s: unique violation on %s: %v", message, pgErr.ConstraintName, err)
		return models.NewConflictError("Duplicate value already exists")
	}

	log.Printf("%s: %v", message, err)
	return models.NewStorageError(message)
}
