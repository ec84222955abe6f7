package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// OpenAIProvider OpenAI 兼容后端（eino ChatModel）
type OpenAIProvider struct {
	chatModel model.ChatModel
	modelName string
}

// NewOpenAIProvider 创建 OpenAI 后端
func NewOpenAIProvider(ctx context.Context, apiKey, baseURL, modelName string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for openai provider")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	return &OpenAIProvider{chatModel: cm, modelName: modelName}, nil
}

// Name 后端标识
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.modelName
}

// Generate 调用 ChatModel 生成回复
func (p *OpenAIProvider) Generate(ctx context.Context, messages []Message) (*Result, error) {
	in := make([]*schema.Message, 0, len(messages))
	for _, m := range messages {
		in = append(in, &schema.Message{
			Role:    roleToSchema(m.Role),
			Content: m.Content,
		})
	}

	resp, err := p.chatModel.Generate(ctx, in)
	if err != nil {
		return nil, err
	}

	result := &Result{Content: resp.Content}
	// token 用量尽力而为
	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		result.TokensUsed = resp.ResponseMeta.Usage.TotalTokens
	}
	return result, nil
}

// roleToSchema 将字符串角色转换为 schema.RoleType
func roleToSchema(role string) schema.RoleType {
	switch role {
	case "system":
		return schema.System
	case "assistant":
		return schema.Assistant
	case "user":
		return schema.User
	default:
		return schema.User
	}
}
