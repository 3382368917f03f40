package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/albinolog/contracts/internal/handoff"
	"github.com/albinolog/contracts/internal/model"
)

type HandoffService struct {
	quotes          *QuoteService
	builder         *handoff.Builder
	dispatcher      handoff.Dispatcher
	clearOnDispatch bool
	log             zerolog.Logger
}

func NewHandoffService(
	quotes *QuoteService,
	builder *handoff.Builder,
	dispatcher handoff.Dispatcher,
	clearOnDispatch bool,
	log zerolog.Logger,
) *HandoffService {
	return &HandoffService{
		quotes:          quotes,
		builder:         builder,
		dispatcher:      dispatcher,
		clearOnDispatch: clearOnDispatch,
		log:             log,
	}
}

// ScheduleVisit builds the signing-visit message for the stored quote and
// dispatches it. The record is cleared only once the link is known to be
// open, so a failed handoff can be retried without filling the quote form
// again. With a deferred dispatcher that happens in ConfirmOpened.
func (s *HandoffService) ScheduleVisit(ctx context.Context, profileID string, addr model.VisitAddress) (*handoff.Message, error) {
	record, err := s.quotes.Current(ctx, profileID)
	if err != nil {
		return nil, err
	}

	msg, err := s.builder.ContractMessage(*record, addr)
	if err != nil {
		if errors.Is(err, handoff.ErrIncompleteAddress) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, msg.URL); err != nil {
		return nil, fmt.Errorf("dispatch handoff: %w", err)
	}

	if s.clearOnDispatch && !handoff.IsDeferred(s.dispatcher) {
		if err := s.quotes.Discard(ctx, profileID); err != nil {
			// the message is already out; keep going
			s.log.Warn().Err(err).Str("quote_id", record.QuoteID).Msg("failed to clear contract record")
		}
	}
	s.log.Info().Str("quote_id", record.QuoteID).Msg("visit handoff dispatched")
	return &msg, nil
}

// ConfirmOpened is called once a deferred handoff link has actually been
// opened. It clears the record when the clear policy asks for it.
func (s *HandoffService) ConfirmOpened(ctx context.Context, profileID string) error {
	if !s.clearOnDispatch {
		return nil
	}
	if err := s.quotes.Discard(ctx, profileID); err != nil {
		return err
	}
	s.log.Info().Msg("visit handoff opened")
	return nil
}

// JoinTeam builds and dispatches a team application message.
func (s *HandoffService) JoinTeam(ctx context.Context, app model.TeamApplication) (*handoff.Message, error) {
	msg, err := s.builder.TeamMessage(app)
	if err != nil {
		if errors.Is(err, handoff.ErrIncompleteApplication) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}
	if err := s.dispatcher.Dispatch(ctx, msg.URL); err != nil {
		return nil, fmt.Errorf("dispatch handoff: %w", err)
	}
	return &msg, nil
}
