package service

import (
	"context"

	"cooking-assistant-be/internal/dto"
	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/assistant"
	"cooking-assistant-be/pkg/events"
	"cooking-assistant-be/pkg/rag/session"
	"cooking-assistant-be/pkg/store"

	"github.com/pkg/errors"
)

type IAssistantService interface {
	Search(ctx context.Context, sessionKey string, req *dto.SearchRequest) (*dto.SearchResult, error)
	Modify(ctx context.Context, sessionKey string, req *dto.ModifyRequest) (*store.Recipe, error)
	ResetSession(ctx context.Context, sessionKey string) (*dto.ResetResponse, error)
}

type assistantService struct {
	sessionManager   *session.Manager
	dispatcher       *assistant.Dispatcher
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewAssistantService(
	sessionManager *session.Manager,
	dispatcher *assistant.Dispatcher,
	publisherService IPublisherService,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		sessionManager:   sessionManager,
		dispatcher:       dispatcher,
		publisherService: publisherService,
		logger:           log,
	}
}

func (s *assistantService) Search(ctx context.Context, sessionKey string, req *dto.SearchRequest) (*dto.SearchResult, error) {
	sess, err := s.sessionManager.LoadOrCreate(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}

	outcome, err := s.dispatcher.Dispatch(ctx, sess, assistant.Request{
		Query:          req.Query,
		IsFollowUp:     req.IsFollowUp,
		IsModification: req.IsModification,
		CurrentRecipe:  req.CurrentRecipe,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, string(outcome.Intent.Action), sessionKey, outcome.Intent.Query, len(outcome.Results))

	if outcome.Reset {
		if _, err := s.sessionManager.Flush(ctx, sessionKey); err != nil {
			return nil, errors.Wrap(err, "flush session")
		}
		return &dto.SearchResult{Reset: resetResponse()}, nil
	}

	if err := s.sessionManager.Save(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	return &dto.SearchResult{Search: &dto.SearchResponse{
		Results:  outcome.Results,
		IsRecipe: true,
		IsDetail: outcome.IsDetail,
		Session:  sess.Snapshot(),
	}}, nil
}

// Modify returns a *recipe.ModificationError as its error when the model
// could not produce a changed recipe.
func (s *assistantService) Modify(ctx context.Context, sessionKey string, req *dto.ModifyRequest) (*store.Recipe, error) {
	sess, err := s.sessionManager.LoadOrCreate(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "load session")
	}

	formatted, modErr := s.dispatcher.Modify(ctx, sess, *req.Recipe, req.Modification)
	if modErr != nil {
		return nil, modErr
	}

	if err := s.sessionManager.Save(ctx, sess); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	s.publish(ctx, events.ActivityModify, sessionKey, req.Modification, 1)
	return &formatted, nil
}

func (s *assistantService) ResetSession(ctx context.Context, sessionKey string) (*dto.ResetResponse, error) {
	fresh, err := s.sessionManager.Flush(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "flush session")
	}
	if err := s.sessionManager.Save(ctx, fresh); err != nil {
		return nil, errors.Wrap(err, "save session")
	}

	s.publish(ctx, events.ActivityReset, sessionKey, "", 0)
	return resetResponse(), nil
}

func (s *assistantService) publish(ctx context.Context, activity, sessionKey, query string, resultCount int) {
	event := events.NewActivityEvent(activity, sessionKey, query, resultCount)
	if err := s.publisherService.SendActivity(ctx, event); err != nil {
		s.logger.Warn("ASSISTANT", "Failed to publish activity", map[string]interface{}{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}

func resetResponse() *dto.ResetResponse {
	return &dto.ResetResponse{
		Message: assistant.ResetMessage,
		Reset:   true,
		Session: store.EmptySnapshot(),
	}
}
