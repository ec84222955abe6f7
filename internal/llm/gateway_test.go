package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pocketllm/portal/internal/config"
)

// stubProvider 返回固定结果或固定错误的后端
type stubProvider struct {
	result *Result
	err    error
	got    []Message
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Generate(ctx context.Context, messages []Message) (*Result, error) {
	p.got = messages
	if p.err != nil {
		return nil, p.err
	}
	return p.result, nil
}

// slowProvider 阻塞到 ctx 取消为止
type slowProvider struct{}

func (p *slowProvider) Name() string { return "slow" }

func (p *slowProvider) Generate(ctx context.Context, messages []Message) (*Result, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestGatewayEcho(t *testing.T) {
	g := NewGateway(NewEchoProvider(), time.Second)

	result := g.Generate(context.Background(), nil, "hello")

	want := "Echo: hello (This is a stub response)"
	if result.Content != want {
		t.Errorf("Expected %q, got %q", want, result.Content)
	}
	if result.TokensUsed != 0 {
		t.Errorf("Expected 0 tokens, got %d", result.TokensUsed)
	}
}

func TestGatewayAppendsPromptAsFinalUserTurn(t *testing.T) {
	p := &stubProvider{result: &Result{Content: "ok"}}
	g := NewGateway(p, time.Second)

	history := []Message{
		{Role: "user", Content: "first"},
		{Role: "assistant", Content: "reply"},
	}
	g.Generate(context.Background(), history, "second")

	if len(p.got) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(p.got))
	}
	last := p.got[2]
	if last.Role != "user" || last.Content != "second" {
		t.Errorf("Expected final user turn %q, got %+v", "second", last)
	}
}

func TestGatewayProviderErrorBecomesDiagnostic(t *testing.T) {
	p := &stubProvider{err: errors.New("connection refused")}
	g := NewGateway(p, time.Second)

	result := g.Generate(context.Background(), nil, "hello")

	if !strings.HasPrefix(result.Content, ErrorMarker) {
		t.Errorf("Expected diagnostic prefix %q, got %q", ErrorMarker, result.Content)
	}
	if !strings.Contains(result.Content, "connection refused") {
		t.Errorf("Expected diagnostic to include cause, got %q", result.Content)
	}
	if result.TokensUsed != 0 {
		t.Errorf("Expected 0 tokens on failure, got %d", result.TokensUsed)
	}
}

func TestGatewayNilProvider(t *testing.T) {
	g := NewGateway(nil, time.Second)

	if g.Loaded() {
		t.Error("Expected Loaded to be false with nil provider")
	}
	if g.Backend() != "none" {
		t.Errorf("Expected backend %q, got %q", "none", g.Backend())
	}

	result := g.Generate(context.Background(), nil, "hello")
	if !strings.HasPrefix(result.Content, ErrorMarker) {
		t.Errorf("Expected diagnostic prefix, got %q", result.Content)
	}
}

func TestGatewayTimeout(t *testing.T) {
	g := NewGateway(&slowProvider{}, 50*time.Millisecond)

	start := time.Now()
	result := g.Generate(context.Background(), nil, "hello")
	elapsed := time.Since(start)

	if elapsed > time.Second {
		t.Errorf("Expected timeout around 50ms, took %v", elapsed)
	}
	if !strings.HasPrefix(result.Content, ErrorMarker) {
		t.Errorf("Expected diagnostic on timeout, got %q", result.Content)
	}
}

func TestGatewayBackendName(t *testing.T) {
	g := NewGateway(NewEchoProvider(), time.Second)

	if !g.Loaded() {
		t.Error("Expected Loaded to be true")
	}
	if g.Backend() != "echo" {
		t.Errorf("Expected backend %q, got %q", "echo", g.Backend())
	}
}

func TestRegistryBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("Echo", func(cfg *config.Config) (Provider, error) {
		return NewEchoProvider(), nil
	})

	// 名称匹配不区分大小写
	p, err := r.Build("echo", nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if p.Name() != "echo" {
		t.Errorf("Expected provider %q, got %q", "echo", p.Name())
	}

	if _, err := r.Build("unknown", nil); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
