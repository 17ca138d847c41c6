package repositories

import (
	"context"
	"database/sql"
)

// The UNIQUE constraint on the canonical pair is what lets two sides
// resolve the same conversation concurrently without creating two rows.
const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	participant_low TEXT NOT NULL,
	participant_high TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (participant_low, participant_high)
);

CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	conversation_id UUID REFERENCES conversations (id),
	group_id TEXT,
	sender_id TEXT NOT NULL,
	transcription TEXT,
	file_url TEXT,
	duration_ms BIGINT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages (conversation_id, created_at);
CREATE INDEX IF NOT EXISTS idx_messages_group ON messages (group_id, created_at);
`

// EnsureSchema creates the tables backing conversations and messages.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
