package postgres

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/backoffice/pkg/database"
	"github.com/ghuser/backoffice/pkg/logger"
)

type publishedMessage struct {
	topic string
	msg   *message.Message
}

// recordingPublisher captures messages published inside repository transactions.
type recordingPublisher struct {
	mu   sync.Mutex
	sent []publishedMessage
	err  error
}

func (p *recordingPublisher) PublishTx(_ context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	if tx == nil {
		panic("PublishTx called outside a transaction")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	for _, m := range msgs {
		p.sent = append(p.sent, publishedMessage{topic: topic, msg: m})
	}
	return nil
}

func newMockDB(t *testing.T) (*database.Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return database.New(db, logger.Nop()), mock
}
