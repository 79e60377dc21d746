// Package postgres implements the menu repositories against PostgreSQL using
// database/sql over the shared pgx pool. Writes that other processes react to
// publish their outbox event inside the same transaction.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes mapped to domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// EventPublisher publishes outbox messages inside a repository transaction.
// *events.EventBus satisfies it.
type EventPublisher interface {
	PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
