package service

import (
	"context"
	"errors"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ChoiceService handles choice business logic.
type ChoiceService struct {
	choices ChoiceStore
	log     zerolog.Logger
}

// NewChoiceService creates a new ChoiceService.
func NewChoiceService(choices ChoiceStore, log zerolog.Logger) *ChoiceService {
	return &ChoiceService{
		choices: choices,
		log:     log.With().Str("component", "choice_service").Logger(),
	}
}

// GetOrCreate returns the choice labelled exactly text, creating it when absent.
func (s *ChoiceService) GetOrCreate(ctx context.Context, text string) (*model.Choice, error) {
	if text == "" {
		return nil, invalid("choice", "This field may not be blank.")
	}
	return s.choices.GetOrCreate(ctx, text)
}

// List returns every choice, newest first.
func (s *ChoiceService) List(ctx context.Context) ([]model.Choice, error) {
	choices, err := s.choices.List(ctx)
	if err != nil {
		return nil, err
	}
	if choices == nil {
		choices = []model.Choice{}
	}
	return choices, nil
}

// Get retrieves a choice by id.
func (s *ChoiceService) Get(ctx context.Context, id int64) (*model.Choice, error) {
	return s.choices.GetByID(ctx, id)
}

// Create stores a new choice. The text must not already exist.
func (s *ChoiceService) Create(ctx context.Context, text string) (*model.Choice, error) {
	if text == "" {
		return nil, invalid("choice", "This field may not be blank.")
	}
	choice := &model.Choice{Text: text}
	if err := s.choices.Create(ctx, choice); err != nil {
		return nil, duplicateChoice(err)
	}
	s.log.Info().Int64("choice_id", choice.ID).Msg("Choice created")
	return choice, nil
}

// Rename changes a choice's text. Every question referencing it sees the new label.
func (s *ChoiceService) Rename(ctx context.Context, id int64, text string) (*model.Choice, error) {
	if text == "" {
		return nil, invalid("choice", "This field may not be blank.")
	}
	choice := &model.Choice{ID: id, Text: text}
	if err := s.choices.Update(ctx, choice); err != nil {
		return nil, duplicateChoice(err)
	}
	return choice, nil
}

// Delete removes a choice and its option memberships.
// It fails with repository.ErrChoiceInUse while a question still uses it as answer.
func (s *ChoiceService) Delete(ctx context.Context, id int64) error {
	if err := s.choices.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("choice_id", id).Msg("Choice deleted")
	return nil
}

func duplicateChoice(err error) error {
	if errors.Is(err, repository.ErrDuplicateChoice) {
		return invalid("choice", "choice with this choice already exists.")
	}
	return err
}
