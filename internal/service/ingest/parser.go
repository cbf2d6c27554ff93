package ingest_service

import (
	"encoding/json"
	"fmt"

	"greenloop-feed-service/internal/custom_errors"
	"greenloop-feed-service/internal/model"
)

// parseEvent decodes a raw payload into one of the known event kinds.
// Payloads that fail to decode or validate map to ErrMalformedEvent;
// recognized JSON with an unrecognized messageType maps to
// ErrUnknownEventType.
func (s *Service) parseEvent(raw []byte) (model.Event, error) {
	var envelope model.EventEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %s", custom_errors.ErrMalformedEvent, err)
	}

	switch envelope.MessageType {
	case model.EventPostCreated:
		var event model.PostCreatedEvent
		if err := s.decode(raw, &event); err != nil {
			return nil, err
		}
		return event, nil
	case model.EventPostUpdated:
		var event model.PostUpdatedEvent
		if err := s.decode(raw, &event); err != nil {
			return nil, err
		}
		return event, nil
	case model.EventPostDeleted:
		var event model.PostDeletedEvent
		if err := s.decode(raw, &event); err != nil {
			return nil, err
		}
		return event, nil
	case model.EventUserFollowed:
		var event model.UserFollowedEvent
		if err := s.decode(raw, &event); err != nil {
			return nil, err
		}
		return event, nil
	case model.EventUserUnfollowed:
		var event model.UserUnfollowedEvent
		if err := s.decode(raw, &event); err != nil {
			return nil, err
		}
		return event, nil
	case "":
		return nil, fmt.Errorf("%w: missing messageType", custom_errors.ErrMalformedEvent)
	default:
		return nil, fmt.Errorf("%w: %s", custom_errors.ErrUnknownEventType, envelope.MessageType)
	}
}

func (s *Service) decode(raw []byte, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s", custom_errors.ErrMalformedEvent, err)
	}
	if err := s.validate.Struct(dest); err != nil {
		return fmt.Errorf("%w: %s", custom_errors.ErrMalformedEvent, err)
	}
	return nil
}
