package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"chat-sync/audio"
	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"
	apperrors "chat-sync/errors"
	"chat-sync/projection"
	"chat-sync/repositories"
	"chat-sync/services"

	"github.com/go-playground/validator/v10"
)

// Engine is the session surface exposed to the presentation layer:
// selecting a contact, reading the timeline, sending text and voice,
// recording and playback. It owns the SubscriptionManager, the Timeline
// and the audio state machines; nothing else touches them.
type Engine struct {
	log           *slog.Logger
	selfID        string
	validate      *validator.Validate
	directory     contract.Directory
	conversations services.IConversationService
	messages      repositories.IMessageRepository
	blobs         repositories.IBlobRepository
	store         *projection.Timeline
	subs          *SubscriptionManager
	recorder      *audio.Recorder
	playback      *audio.PlaybackController
	events        chan<- event.DomainEvent

	// bindMu serializes selection commits: the staleness re-check and
	// the subscription rebind form one atomic step, so a selection that
	// resolved slowly can never rebind the channel after a newer one
	// already has.
	bindMu sync.Mutex

	mu        sync.Mutex
	selected  *domain.Contact
	target    *domain.Target
	selectSeq uint64
}

func NewEngine(
	log *slog.Logger,
	directory contract.Directory,
	conversations services.IConversationService,
	messages repositories.IMessageRepository,
	blobs repositories.IBlobRepository,
	store *projection.Timeline,
	subs *SubscriptionManager,
	recorder *audio.Recorder,
	playback *audio.PlaybackController,
	events chan<- event.DomainEvent,
) *Engine {
	return &Engine{
		log:           log,
		selfID:        directory.CurrentUserID(),
		validate:      validator.New(),
		directory:     directory,
		conversations: conversations,
		messages:      messages,
		blobs:         blobs,
		store:         store,
		subs:          subs,
		recorder:      recorder,
		playback:      playback,
		events:        events,
	}
}

// SelectContact resolves the contact's target and rebinds the live
// subscription to it. Resolution may take a round-trip; if the user
// selects someone else meanwhile, the outdated result is discarded and
// the newer selection wins.
func (e *Engine) SelectContact(ctx context.Context, contact domain.Contact) error {
	e.mu.Lock()
	e.selected = &contact
	e.target = nil
	e.selectSeq++
	seq := e.selectSeq
	e.mu.Unlock()

	target, err := e.conversations.Resolve(ctx, e.selfID, contact)
	if err != nil {
		return err
	}

	e.bindMu.Lock()
	defer e.bindMu.Unlock()

	e.mu.Lock()
	if e.selectSeq != seq {
		e.mu.Unlock()
		e.log.Debug("Discarding stale resolution", "contact", contact.DisplayName)
		return nil
	}
	e.target = &target
	e.mu.Unlock()

	return e.subs.Bind(ctx, target)
}

// ClearSelection unbinds the subscription and clears the timeline.
func (e *Engine) ClearSelection() {
	e.bindMu.Lock()
	defer e.bindMu.Unlock()

	e.mu.Lock()
	e.selected = nil
	e.target = nil
	e.selectSeq++
	e.mu.Unlock()
	e.subs.Unbind()
}

// Contacts lists the user's directory entries.
func (e *Engine) Contacts(ctx context.Context) ([]domain.Contact, error) {
	return e.directory.ContactsFor(ctx, e.selfID)
}

// Messages returns a snapshot of the displayed timeline.
func (e *Engine) Messages() []domain.Message {
	return e.store.Messages()
}

// SendText sends a typed message through the optimistic path: the entry
// appears immediately as Pending and is reconciled with the server row
// once the insert returns. On failure it stays visibly Pending.
func (e *Engine) SendText(ctx context.Context, content string) error {
	target, ok := e.currentTarget()
	if !ok {
		return apperrors.ErrInvalidTarget
	}
	if err := e.validate.Struct(domain.SendTextCommand{Content: content}); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSend, err)
	}

	localID := e.store.AppendOptimistic(domain.Message{
		Body:      domain.TextBody,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})
	return e.deliver(ctx, localID, e.buildRow(target, content, "", 0))
}

// SendVoice stores the payload in the blob store and sends a voice
// message referencing it, through the same optimistic path as text.
func (e *Engine) SendVoice(ctx context.Context, note audio.VoiceNote) error {
	target, ok := e.currentTarget()
	if !ok {
		return apperrors.ErrInvalidTarget
	}
	cmd := domain.SendVoiceCommand{Data: note.Data, DurationSeconds: note.DurationSeconds}
	if err := e.validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSend, err)
	}

	ref, err := e.blobs.StorePayload(note.Data, note.DurationMS())
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrSend, err)
	}

	localID := e.store.AppendOptimistic(domain.Message{
		Body:      domain.VoiceBody,
		FileURL:   ref,
		Duration:  projection.FormatDuration(note.DurationMS()),
		CreatedAt: time.Now().UTC(),
	})
	return e.deliver(ctx, localID, e.buildRow(target, "", ref, note.DurationMS()))
}

func (e *Engine) deliver(ctx context.Context, localID string, row domain.RawMessageRow) error {
	saved, err := e.messages.InsertMessage(ctx, row)
	if err != nil {
		e.log.Warn("Send failed, message left pending", "local_id", localID, "error", err)
		return err
	}
	e.store.Reconcile(localID, saved)
	e.publish(event.MessageInserted{Row: saved})
	return nil
}

func (e *Engine) buildRow(target domain.Target, content, fileURL string, durationMS int64) domain.RawMessageRow {
	row := domain.RawMessageRow{
		SenderID:      e.selfID,
		Transcription: content,
		FileURL:       fileURL,
		DurationMS:    durationMS,
	}
	if target.Kind == domain.GroupTarget {
		row.GroupID = target.ID
	} else {
		row.ConversationID = target.ID
	}
	return row
}

// StartRecording begins a voice capture session. Recording without a
// selected target is refused and nothing is captured.
func (e *Engine) StartRecording(ctx context.Context) error {
	if _, ok := e.currentTarget(); !ok {
		return apperrors.ErrNoTarget
	}
	return e.recorder.Start(ctx)
}

// StopRecording finalizes the session and sends the note to the target
// selected at stop time. If the selection vanished while recording, the
// note is discarded.
func (e *Engine) StopRecording(ctx context.Context) error {
	note, err := e.recorder.Stop()
	if err != nil {
		return err
	}
	if _, ok := e.currentTarget(); !ok {
		e.log.Warn("Selection cleared during recording, voice note discarded")
		return apperrors.ErrNoTarget
	}
	return e.SendVoice(ctx, note)
}

// TogglePlayback plays or pauses the given voice message. The payload
// and its duration come from the blob store, never from UI state.
func (e *Engine) TogglePlayback(messageID string) (bool, error) {
	var found *domain.Message
	for _, msg := range e.store.Messages() {
		if msg.ID == messageID {
			found = &msg
			break
		}
	}
	if found == nil || found.Body != domain.VoiceBody {
		return false, apperrors.ErrNotVoiceMessage
	}

	data, _, err := e.blobs.GetPayload(found.FileURL)
	if err != nil {
		return false, err
	}
	return e.playback.Toggle(messageID, data)
}

func (e *Engine) currentTarget() (domain.Target, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.target == nil {
		return domain.Target{}, false
	}
	return *e.target, true
}

// publish hands the insert event to the fanout pipeline. Best effort:
// a full channel drops the event rather than blocking the send path.
func (e *Engine) publish(evt event.DomainEvent) {
	select {
	case e.events <- evt:
	default:
		e.log.Warn("Event channel full, dropping insert event", "target", evt.Target().ID)
	}
}
