// Package openai interprets free-text messages into plant-bot intents
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// AgentResponse defines the structured output from the OpenAI agent
type AgentResponse struct {
	CommandName string `json:"command_name" jsonschema_description:"The command to execute, e.g., ConsultWatering or GeneralQuery"`
	PlantName   string `json:"plant_name" jsonschema_description:"The user's plant the request refers to, matched against the provided list"`
	UserMessage string `json:"user_message" jsonschema_description:"A message to show back to the user in their original language"`
}

// AssistantService defines the interface for interpreting free-text
// user messages.
type AssistantService interface {
	InterpretUserQuery(ctx context.Context, userMessage string, plantNames []string) (*AgentResponse, error)
}

// assistantServiceImpl implements the AssistantService interface
type assistantServiceImpl struct {
	client openai.Client
	schema interface{}
}

// GenerateSchema generates a JSON schema for a given type
func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// NewAssistantService creates and initializes a new AssistantService
func NewAssistantService(apiKey string) (AssistantService, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is empty")
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	schema := GenerateSchema[AgentResponse]()

	return &assistantServiceImpl{
		client: client,
		schema: schema,
	}, nil
}

// InterpretUserQuery sends a message to the OpenAI agent and returns the
// structured response.
func (s *assistantServiceImpl) InterpretUserQuery(ctx context.Context, userMessage string, plantNames []string) (*AgentResponse, error) {
	systemPrompt := fmt.Sprintf(`You are the assistant behind a houseplant-care Telegram bot. Users track their plants, growth measurements, watering schedules and community-service hours through slash commands, but sometimes they just type plain text at you.

The user's registered plants: %s

Behavior:
1. If the user is asking about watering a specific plant from the list (when to water it, whether it needs water, its schedule):
   - command_name = "ConsultWatering"
   - plant_name: the matching name exactly as it appears in the list; if no plant matches clearly, leave plant_name as an empty string.
   - user_message: a short, friendly one-line confirmation in the user's language.
2. For anything else (greetings, plant-care questions, small talk):
   - command_name = "GeneralQuery"
   - plant_name = ""
   - user_message: a brief helpful reply in the user's language. When the request maps onto a bot command, mention it (e.g. /measure, /water, /help).

You reply in the same language the user wrote in. Output **strictly** in JSON.`, plantNames)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "agent_response",
		Description: openai.String("Structured response containing command, plant name, and user message"),
		Schema:      s.schema,
		Strict:      openai.Bool(true),
	}

	respFormat := openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
	}

	chat, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userMessage),
		},
		ResponseFormat: respFormat,
		Model:          openai.ChatModelGPT4o,
	})

	if err != nil {
		return nil, fmt.Errorf("error calling OpenAI API: %w", err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return nil, errors.New("received empty response from OpenAI")
	}

	var agentResp AgentResponse
	err = json.Unmarshal([]byte(chat.Choices[0].Message.Content), &agentResp)
	if err != nil {
		log.Printf("Failed to unmarshal OpenAI response: %s\nRaw response: %s", err, chat.Choices[0].Message.Content)
		return nil, fmt.Errorf("error unmarshalling OpenAI response: %w", err)
	}

	return &agentResp, nil
}
