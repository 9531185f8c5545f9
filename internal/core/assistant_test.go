// ABOUTME: Tests for Ask
// ABOUTME: Checks the context handed to the chat model and the empty index fallback
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/harper/vault-assistant/internal/models"
)

type recordingCompleter struct {
	system string
	prompt string
	err    error
}

func (c *recordingCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	c.system = system
	c.prompt = prompt
	if c.err != nil {
		return "", c.err
	}
	return "reply", nil
}

func TestAsk_IncludesContext(t *testing.T) {
	embedder := newKeywordEmbedder("tomato", "rose")
	store := indexedStore(t, embedder,
		models.Document{ID: "veg.md", Label: "veg", Text: "plant tomato in may"},
		models.Document{ID: "flowers.md", Label: "flowers", Text: "prune rose bushes"},
	)
	completer := &recordingCompleter{}
	assistant := NewAssistant(NewRetriever(embedder, store, ""), completer)

	answer, err := assistant.Ask(context.Background(), "when do I plant tomato?", 1)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if answer.Reply != "reply" {
		t.Errorf("Reply = %q", answer.Reply)
	}
	if answer.Context != "plant tomato in may" {
		t.Errorf("Context = %q", answer.Context)
	}
	if !strings.Contains(completer.system, "plant tomato in may") {
		t.Errorf("system message missing notes: %q", completer.system)
	}
	if completer.prompt != "when do I plant tomato?" {
		t.Errorf("prompt = %q", completer.prompt)
	}
}

func TestAsk_EmptyIndexSendsBarePrompt(t *testing.T) {
	completer := &recordingCompleter{}
	assistant := NewAssistant(NewRetriever(newKeywordEmbedder("a"), &memStore{}, ""), completer)

	answer, err := assistant.Ask(context.Background(), "hello", 3)
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if completer.system != "" || answer.Context != "" {
		t.Errorf("expected no context, system = %q", completer.system)
	}
}

func TestAsk_Errors(t *testing.T) {
	t.Run("retrieval error aborts", func(t *testing.T) {
		store := &memStore{loadErr: fmt.Errorf("%w: broken", models.ErrCorruptIndex)}
		completer := &recordingCompleter{}
		_, err := NewAssistant(NewRetriever(newKeywordEmbedder("a"), store, ""), completer).Ask(context.Background(), "q", 1)
		if !errors.Is(err, models.ErrCorruptIndex) {
			t.Errorf("error = %v, want ErrCorruptIndex", err)
		}
		if completer.prompt != "" {
			t.Error("chat model should not be called when retrieval fails")
		}
	})

	t.Run("completion error", func(t *testing.T) {
		completer := &recordingCompleter{err: fmt.Errorf("%w: 500", models.ErrProvider)}
		_, err := NewAssistant(NewRetriever(newKeywordEmbedder("a"), &memStore{}, ""), completer).Ask(context.Background(), "q", 1)
		if !errors.Is(err, models.ErrProvider) {
			t.Errorf("error = %v, want ErrProvider", err)
		}
	})
}
