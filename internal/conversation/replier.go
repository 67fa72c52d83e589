package conversation

import (
	"context"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/oakline/frontdesk/pkg/logging"
)

// FallbackReply is spoken when no completion backend is configured.
const FallbackReply = "Thanks for calling. Please provide your question and I'll have someone follow up."

// ApologyReply is spoken when the completion backend fails mid-call. Kept
// distinct from FallbackReply so transcripts show which path fired.
const ApologyReply = "I'm sorry, I'm having a little trouble right now. Please leave your question and someone will follow up shortly."

var replierTracer = otel.Tracer("frontdesk.internal.conversation.replier")

// Replier turns a conversation history into the next spoken reply. It never
// fails outward; every implementation degrades to a deterministic string so
// the caller always hears something.
type Replier interface {
	Reply(ctx context.Context, history []ChatMessage) string
}

type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIReplier generates replies with OpenAI chat completions using fixed
// low-randomness sampling.
type OpenAIReplier struct {
	client  chatClient
	model   string
	timeout time.Duration
	logger  *logging.Logger
}

// NewOpenAIReplier builds a replier around an OpenAI-compatible client.
func NewOpenAIReplier(client chatClient, model string, timeout time.Duration, logger *logging.Logger) *OpenAIReplier {
	if client == nil {
		panic("conversation: chat client cannot be nil")
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OpenAIReplier{client: client, model: model, timeout: timeout, logger: logger}
}

// Reply submits the full trimmed history and returns the completion text, or
// ApologyReply if the backend errors or returns nothing usable.
func (r *OpenAIReplier) Reply(ctx context.Context, history []ChatMessage) string {
	ctx, span := replierTracer.Start(ctx, "conversation.completion")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.model", r.model),
		attribute.Int("frontdesk.history_len", len(history)),
	)

	messages := make([]openai.ChatCompletionMessage, 0, len(history))
	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: 0.2,
		MaxTokens:   220,
		Messages:    messages,
	})
	if err != nil {
		span.RecordError(err)
		r.logger.Error("completion call failed", "error", err)
		return ApologyReply
	}
	if len(resp.Choices) == 0 {
		err := errors.New("conversation: completion returned no choices")
		span.RecordError(err)
		r.logger.Error("completion returned no choices")
		return ApologyReply
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// StaticReplier answers every turn with the configured fallback line. Used
// when no completion backend is available.
type StaticReplier struct{}

// NewStaticReplier returns the deterministic fallback replier.
func NewStaticReplier() *StaticReplier {
	return &StaticReplier{}
}

// Reply implements Replier.
func (r *StaticReplier) Reply(ctx context.Context, history []ChatMessage) string {
	return FallbackReply
}
