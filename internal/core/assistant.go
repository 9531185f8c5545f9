// ABOUTME: Ask sends a prompt to the chat model with relevant note passages as context
// ABOUTME: Falls back to the bare prompt when the index is empty
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harper/vault-assistant/internal/logging"
	"github.com/harper/vault-assistant/internal/models"
)

// Completer performs a single chat completion
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Answer is the reply to Ask along with the context that was sent
type Answer struct {
	Reply   string `json:"reply"`
	Context string `json:"context"`
}

// Assistant answers prompts using the vault as context
type Assistant struct {
	retriever *Retriever
	completer Completer
	logger    *log.Logger
}

// NewAssistant creates an assistant over retriever and completer
func NewAssistant(retriever *Retriever, completer Completer) *Assistant {
	return &Assistant{
		retriever: retriever,
		completer: completer,
		logger:    logging.New("Assistant"),
	}
}

// Ask builds the augmented context for prompt and sends both to the chat model
func (a *Assistant) Ask(ctx context.Context, prompt string, k int) (Answer, error) {
	notes, err := a.retriever.BuildAugmentedContext(ctx, prompt, k)
	switch {
	case errors.Is(err, models.ErrEmptyIndex):
		a.logger.Warn("index is empty, sending prompt without notes")
		notes = ""
	case err != nil:
		return Answer{}, err
	}

	reply, err := a.completer.Complete(ctx, systemPrompt(notes), prompt)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Reply: reply, Context: notes}, nil
}

func systemPrompt(notes string) string {
	if notes == "" {
		return ""
	}
	return fmt.Sprintf("Answer using the following passages from the user's notes where they are relevant.\n\n%s", notes)
}
