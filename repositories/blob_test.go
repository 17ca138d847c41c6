package repositories

import (
	"log/slog"
	"strings"
	"testing"

	apperrors "chat-sync/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// wavPayload builds a minimal RIFF/WAVE header so the payload sniffs as
// audio.
func wavPayload(frames string) []byte {
	return append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), frames...)
}

func TestBlobRepository_Roundtrip(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewBlobRepository(db, slog.Default())
	payload := wavPayload("frames go here")

	ref, err := repository.StorePayload(payload, 75000)
	req.NoError(err)
	req.True(strings.HasPrefix(ref, "voice:"))

	data, durationMS, err := repository.GetPayload(ref)
	req.NoError(err)
	req.Equal(payload, data)
	req.Equal(int64(75000), durationMS)
}

func TestBlobRepository_Duration_Survives_Alone(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewBlobRepository(db, slog.Default())

	// An empty capture still keeps its duration metadata
	ref, err := repository.StorePayload(nil, 3000)
	req.NoError(err)

	data, durationMS, err := repository.GetPayload(ref)
	req.NoError(err)
	req.Empty(data)
	req.Equal(int64(3000), durationMS)
}

func TestBlobRepository_Refuses_Non_Audio_Payloads(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewBlobRepository(db, slog.Default())

	_, err = repository.StorePayload([]byte("just some typed text"), 3000)
	req.ErrorIs(err, apperrors.ErrUnsupportedPayload)

	_, err = repository.StorePayload([]byte("<!DOCTYPE html><html></html>"), 3000)
	req.ErrorIs(err, apperrors.ErrUnsupportedPayload)
}

func TestBlobRepository_Unknown_Ref(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewBlobRepository(db, slog.Default())

	_, _, err = repository.GetPayload("voice:does-not-exist")
	req.ErrorIs(err, apperrors.ErrPayloadNotFound)
}
