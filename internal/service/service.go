// Package service 组装业务服务
package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/pocketllm/portal/internal/cache"
	"github.com/pocketllm/portal/internal/config"
	"github.com/pocketllm/portal/internal/llm"
	"github.com/pocketllm/portal/internal/metrics"
	"github.com/pocketllm/portal/internal/repository"
	"github.com/pocketllm/portal/internal/service/auth"
	"github.com/pocketllm/portal/internal/service/chat"
)

// Services 服务集合
type Services struct {
	Chat    *chat.Service
	Auth    *auth.Service
	Cache   *cache.ResponseCache
	Gateway *llm.Gateway
	Metrics *metrics.Metrics
}

// NewServices 创建服务集合
func NewServices(repos *repository.Repositories, cfg *config.Config, kv cache.KV) *Services {
	registry := llm.NewRegistry()
	registry.Register("echo", func(cfg *config.Config) (llm.Provider, error) {
		return llm.NewEchoProvider(), nil
	})
	registry.Register("ollama", func(cfg *config.Config) (llm.Provider, error) {
		p := llm.NewOllamaProvider(cfg.LLM.Ollama.BaseURL, cfg.LLM.Ollama.Model)
		p.Threads = cfg.LLM.Threads
		return p, nil
	})
	registry.Register("openai", func(cfg *config.Config) (llm.Provider, error) {
		return llm.NewOpenAIProvider(context.Background(), cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.BaseURL, cfg.LLM.OpenAI.Model)
	})

	var provider llm.Provider
	name := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if name != "" {
		p, err := registry.Build(name, cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize LLM provider %q: %v, chat will return diagnostic responses", name, err)
		} else {
			provider = p
			log.Printf("LLM provider initialized: %s", p.Name())
		}
	} else {
		log.Printf("Warning: no LLM provider configured, chat will return diagnostic responses")
	}

	gateway := llm.NewGateway(provider, time.Duration(cfg.LLM.Timeout)*time.Second)
	responseCache := cache.NewResponseCache(kv, time.Duration(cfg.Cache.TTL)*time.Second)
	m := metrics.New()

	return &Services{
		Chat:    chat.NewService(repos.Chat, responseCache, gateway, m),
		Auth:    auth.NewService(repos.Auth),
		Cache:   responseCache,
		Gateway: gateway,
		Metrics: m,
	}
}
