//go:generate go run go.uber.org/mock/mockgen -source=blob.go -destination=../mocks/mock_blob_repository.go -package=mocks
package repositories

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	apperrors "chat-sync/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type IBlobRepository interface {
	StorePayload(data []byte, durationMS int64) (string, error)
	GetPayload(ref string) ([]byte, int64, error)
}

// BlobRepository stores voice payloads in BadgerDB.
// The value is the raw audio prefixed with an 8-byte big-endian duration
// in milliseconds, so duration is always derivable from the stored
// payload and never guessed from UI state.
type BlobRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBlobRepository(db *badger.DB, log *slog.Logger) BlobRepository {
	return BlobRepository{db: db, log: log}
}

// StorePayload persists the payload and returns its reference of the
// form "voice:<uuid>", usable as a message file_url. The payload is
// sniffed first: anything that identifies as a non-audio type is
// refused before it reaches storage.
func (b BlobRepository) StorePayload(data []byte, durationMS int64) (string, error) {
	mime := mimetype.Detect(data)
	if !supportedVoicePayload(mime) {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnsupportedPayload, mime.String())
	}
	ref := fmt.Sprintf("voice:%s", uuid.NewString())

	value := make([]byte, 8+len(data))
	binary.BigEndian.PutUint64(value[:8], uint64(durationMS))
	copy(value[8:], data)

	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(ref), value)
	})
	if err != nil {
		return "", err
	}
	b.log.Debug("Voice payload stored",
		"ref", ref, "content_type", mime.String(), "bytes", len(data), "duration_ms", durationMS)
	return ref, nil
}

// supportedVoicePayload accepts audio containers, webm captures and raw
// frames without a recognizable header. Payloads identifying as any
// other type are not voice notes.
func supportedVoicePayload(mime *mimetype.MIME) bool {
	if strings.HasPrefix(mime.String(), "audio/") {
		return true
	}
	return mime.Is("application/octet-stream") || mime.Is("video/webm")
}

// GetPayload returns the raw audio and its duration in milliseconds.
func (b BlobRepository) GetPayload(ref string) ([]byte, int64, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ref))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, 0, apperrors.ErrPayloadNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	if len(value) < 8 {
		return nil, 0, fmt.Errorf("corrupt voice payload %s", ref)
	}
	durationMS := int64(binary.BigEndian.Uint64(value[:8]))
	return value[8:], durationMS, nil
}
