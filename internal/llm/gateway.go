package llm

import (
	"context"
	"time"
)

// ErrorMarker 诊断回复的前缀，下游据此区分正常输出
const ErrorMarker = "[LLM Error]"

// unavailableContent 无后端时的固定诊断文本
const unavailableContent = ErrorMarker + " generation backend is not loaded"

// Gateway 生成网关
// 把后端的各种失败（不可达、异常、超时）统一转换为可持久化的诊断文本：
// 对话连续性优先于严格的错误传播
type Gateway struct {
	provider Provider // 为 nil 表示后端未加载
	timeout  time.Duration
}

// NewGateway 创建生成网关
func NewGateway(provider Provider, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Gateway{provider: provider, timeout: timeout}
}

// Loaded 后端是否可用
func (g *Gateway) Loaded() bool {
	return g.provider != nil
}

// Backend 后端标识，用于管理端展示
func (g *Gateway) Backend() string {
	if g.provider == nil {
		return "none"
	}
	return g.provider.Name()
}

// Generate 以完整历史为上下文生成回复，prompt 作为最后一轮 user 追加
// 永不返回错误：失败路径产出带 ErrorMarker 前缀的诊断内容，token 计 0
func (g *Gateway) Generate(ctx context.Context, history []Message, prompt string) *Result {
	msgs := make([]Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: "user", Content: prompt})

	if g.provider == nil {
		return &Result{Content: unavailableContent}
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.provider.Generate(ctx, msgs)
	if err != nil {
		return &Result{Content: ErrorMarker + " " + err.Error()}
	}
	if result == nil {
		return &Result{Content: unavailableContent}
	}
	return result
}
