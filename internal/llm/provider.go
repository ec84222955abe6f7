// Package llm 封装文本生成后端
// 后端被视作黑盒：消息进，文本与 token 用量出，或者错误
package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pocketllm/portal/internal/config"
)

// Message 一轮对话
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result 一次生成的结果
type Result struct {
	Content    string `json:"content"`
	TokensUsed int    `json:"tokens_used"`
}

// Provider 生成后端
type Provider interface {
	// Name 后端标识，用于管理端展示
	Name() string
	Generate(ctx context.Context, messages []Message) (*Result, error)
}

// ProviderFactory 按配置构造后端
type ProviderFactory func(cfg *config.Config) (Provider, error)

// Registry 后端注册表
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry 创建注册表
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// Register 注册后端工厂
func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Build 按名称构造后端
func (r *Registry) Build(name string, cfg *config.Config) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", name)
	}
	return f(cfg)
}
