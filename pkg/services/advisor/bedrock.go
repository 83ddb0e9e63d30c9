package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"
)

// BedrockModels is tried in order until one accepts the request.
var BedrockModels = []string{
	"anthropic.claude-3-sonnet-20240229-v1:0",
	"anthropic.claude-3-haiku-20240307-v1:0",
	"anthropic.claude-v2:1",
	"anthropic.claude-v2",
	"anthropic.claude-instant-v1",
	"amazon.titan-text-express-v1",
}

// Model access errors move on to the next model.
var skippableBedrockCodes = map[string]bool{
	"AccessDeniedException":     true,
	"ValidationException":       true,
	"ResourceNotFoundException": true,
}

type ConverseAPI interface {
	Converse(
		ctx context.Context,
		params *bedrockruntime.ConverseInput,
		optFns ...func(*bedrockruntime.Options),
	) (*bedrockruntime.ConverseOutput, error)
}

type bedrockProvider struct {
	client ConverseAPI
	models []string
}

func NewBedrockProvider(_ context.Context, settings Settings) (Provider, error) {
	if settings.AWS == nil {
		return nil, ErrNotConfigured
	}
	return newBedrockProvider(bedrockruntime.NewFromConfig(*settings.AWS), settings.Model), nil
}

func newBedrockProvider(client ConverseAPI, preferred string) *bedrockProvider {
	models := make([]string, 0, len(BedrockModels)+1)
	if preferred != "" {
		models = append(models, preferred)
	}
	for _, m := range BedrockModels {
		if m != preferred {
			models = append(models, m)
		}
	}
	return &bedrockProvider{client: client, models: models}
}

func (p *bedrockProvider) Name() string { return ProviderBedrock }

func (p *bedrockProvider) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	logger := zerolog.Ctx(ctx)

	input := &bedrockruntime.ConverseInput{
		System: []types.SystemContentBlock{
			&types.SystemContentBlockMemberText{Value: system},
		},
		Messages: []types.Message{
			{
				Role:    types.ConversationRoleUser,
				Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: user}},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   awssdk.Int32(int32(maxTokens)),
			Temperature: awssdk.Float32(0.2),
		},
	}

	for _, model := range p.models {
		input.ModelId = awssdk.String(model)
		out, err := p.client.Converse(ctx, input)
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) && skippableBedrockCodes[apiErr.ErrorCode()] {
				logger.Debug().Str("model", model).Str("code", apiErr.ErrorCode()).Msg("bedrock model unavailable")
				continue
			}
			return "", fmt.Errorf("bedrock %s: %w", model, err)
		}
		return converseText(out), nil
	}

	return "", fmt.Errorf("no Bedrock model available, enable model access in the Bedrock console")
}

func converseText(out *bedrockruntime.ConverseOutput) string {
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return ""
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return sb.String()
}
