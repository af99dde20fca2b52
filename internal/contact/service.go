package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhinavshiv7/portfolio/internal/events"
)

var (
	// ErrPersist wraps storage failures; no email is sent after one.
	ErrPersist = errors.New("contact: save failed")
	// ErrNotify wraps confirmation email failures. The record is kept.
	ErrNotify = errors.New("contact: confirmation email failed")
)

// Store appends contact records.
type Store interface {
	InsertContact(ctx context.Context, r *Record) error
}

// Notifier sends the confirmation email for a saved record.
type Notifier interface {
	Notify(ctx context.Context, r Record) error
}

// Service is the server-side pipeline. It keeps no state between calls.
type Service struct {
	store    Store
	notifier Notifier
	events   events.Publisher
	log      zerolog.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires the pipeline. A nil publisher disables events.
func NewService(store Store, notifier Notifier, pub events.Publisher, log zerolog.Logger) *Service {
	if pub == nil {
		pub = events.Discard
	}
	return &Service{
		store:    store,
		notifier: notifier,
		events:   pub,
		log:      log.With().Str("component", "contact").Logger(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit re-validates s, saves it, then sends the confirmation. Storage
// must succeed before any email is attempted.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Record, error) {
	if err := sub.Validate(); err != nil {
		s.log.Info().Err(err).Msg("rejected contact submission")
		return nil, err
	}

	rec := &Record{
		ID:        s.newID(),
		Name:      sub.Name,
		Email:     sub.Email,
		Company:   sub.Company,
		WhatsApp:  sub.WhatsApp,
		Message:   sub.Message,
		CreatedAt: s.now().UTC(),
	}

	s.log.Info().
		Str("contact_id", rec.ID).
		Str("name", rec.Name).
		Str("company", rec.Company).
		Msg("processing contact submission")

	if err := s.store.InsertContact(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("contact_id", rec.ID).Msg("failed to save contact")
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := s.notifier.Notify(ctx, *rec); err != nil {
		s.log.Error().Err(err).Str("contact_id", rec.ID).Msg("failed to send confirmation email")
		return rec, fmt.Errorf("%w: %w", ErrNotify, err)
	}

	evt := events.ContactSubmitted{
		ID:        rec.ID,
		Name:      rec.Name,
		Company:   rec.Company,
		CreatedAt: rec.CreatedAt,
	}
	if err := s.events.Publish(ctx, events.TopicContactSubmitted, evt); err != nil {
		s.log.Warn().Err(err).Str("contact_id", rec.ID).Msg("failed to publish contact event")
	}

	s.log.Info().Str("contact_id", rec.ID).Msg("contact saved and confirmation sent")
	return rec, nil
}

// Submitter adapts the service to the form's Submitter, for forms served
// by this process.
func (s *Service) Submitter() Submitter {
	return SubmitterFunc(func(ctx context.Context, sub Submission) error {
		_, err := s.Submit(ctx, sub)
		return err
	})
}
