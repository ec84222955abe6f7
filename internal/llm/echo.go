package llm

import "context"

// EchoProvider 回声后端，未部署真实模型时使用
// 输出是确定性的，便于联调和集成测试
type EchoProvider struct{}

// NewEchoProvider 创建回声后端
func NewEchoProvider() *EchoProvider {
	return &EchoProvider{}
}

// Name 后端标识
func (p *EchoProvider) Name() string {
	return "echo"
}

// Generate 回显最后一轮用户输入
func (p *EchoProvider) Generate(ctx context.Context, messages []Message) (*Result, error) {
	var prompt string
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			prompt = messages[i].Content
			break
		}
	}
	return &Result{
		Content:    "Echo: " + prompt + " (This is a stub response)",
		TokensUsed: 0,
	}, nil
}
