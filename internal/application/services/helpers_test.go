package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/reglet-dev/apmlc/internal/application/dto"
	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"github.com/reglet-dev/apmlc/internal/domain/patterns"
	"github.com/reglet-dev/apmlc/internal/domain/services"
	"github.com/reglet-dev/apmlc/internal/domain/values"
)

// stubBackend is a deterministic generative backend that records its requests.
type stubBackend struct {
	err      error
	reply    string
	mu       sync.Mutex
	requests []ports.GenerationRequest
	calls    atomic.Int32
	block    bool
}

func (s *stubBackend) Generate(ctx context.Context, req ports.GenerationRequest) (string, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.reply, s.err
}

func (s *stubBackend) lastRequest() ports.GenerationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[len(s.requests)-1]
}

type recordingSink struct {
	mu      sync.Mutex
	records []dto.CompileMetrics
}

func (r *recordingSink) Record(m dto.CompileMetrics) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, m)
}

type mapCache struct {
	mu    sync.Mutex
	items map[string]*entities.CompilationArtifact
}

func (c *mapCache) Put(_ context.Context, id string, a *entities.CompilationArtifact) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil {
		c.items = make(map[string]*entities.CompilationArtifact)
	}
	c.items[id] = a
	return nil
}

func (c *mapCache) Get(_ context.Context, id string) (*entities.CompilationArtifact, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.items[id]
	return a, ok, nil
}

func (c *mapCache) History(ctx context.Context, id string) ([]*entities.CompilationArtifact, error) {
	a, ok, _ := c.Get(ctx, id)
	if !ok {
		return nil, nil
	}
	return []*entities.CompilationArtifact{a}, nil
}

type stubConsent struct {
	answer bool
	calls  atomic.Int32
}

func (s *stubConsent) ConfirmExternalCall(context.Context, string) (bool, error) {
	s.calls.Add(1)
	return s.answer, nil
}

type compilerDeps struct {
	backend  ports.GenerativeFallback
	repairer ports.RepairCapability
	sink     ports.MetricsSink
	cache    ports.ArtifactCache
	consent  ports.ConsentPrompter
	scrubber ports.TextScrubber
}

func newTestCompiler(deps compilerDeps) *CompileDocumentUseCase {
	registry := patterns.NewDefaultRegistry()
	runtime := values.DefaultRuntimeTarget()
	return NewCompileDocumentUseCase(
		NewValidationRepairService(services.NewIssueDetector(), deps.repairer, deps.scrubber, 0, 0, nil),
		services.NewDocumentParser(),
		services.NewPatternAnalyzer(registry),
		services.NewRuleBasedGenerator(registry),
		services.NewArtifactAssembler(registry, runtime),
		NewFallbackAdapter(deps.backend, nil, DefaultStyleGuide(runtime.Marker()), 0, 0, nil),
		services.NewConsistencyEnforcer(runtime),
		deps.cache,
		deps.sink,
		deps.consent,
		0,
		nil,
	)
}

const loginDoc = `name: Login Demo

## UI Components

login_form: {
  type: "form_input",
  action: "submitLogin",
  bind: user_name
}
`

const teleportDoc = `## UI Components

teleporter: {
  type: "quantum_teleport_widget",
  target: "mars"
}
`

const hybridDoc = `## UI Components

login_form: {
  type: "form_input",
  action: "submitLogin"
}

live_feed: {
  type: "ticker",
  transport: "websocket"
}
`

const generatedPage = "Here you go:\n```html\n<!DOCTYPE html>\n<html>\n<head>\n" +
	"<script src=\"https://unpkg.com/vue@3.3.4/dist/vue.global.js\"></script>\n" +
	"<style>.ticker { color: #00ff88; }</style>\n</head>\n<body>\n" +
	"<div class=\"ticker\">{{ appName }}</div>\n" +
	"<script>\nconst { createApp } = Vue;\ncreateApp({}).mount('#app');\n</script>\n" +
	"</body>\n</html>\n```"

// mountedPage is a reply shaped the way backends answer the style guide:
// markup inside the #app mount with its own data() and methods.
const mountedPage = "```html\n<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<title>Feed</title>\n" +
	"<script src=\"https://unpkg.com/vue@3/dist/vue.global.js\"></script>\n" +
	"<style>\n.ticker { color: #00ff88; }\n</style>\n</head>\n<body>\n" +
	"<div id=\"app\">\n" +
	"  <div class=\"ticker\" @click.prevent=\"refreshTicker\">\n" +
	"    <div v-for=\"item in tickerItems\" :key=\"item.id\">{{ item.text }}</div>\n" +
	"  </div>\n" +
	"</div>\n" +
	"<script>\nconst { createApp } = Vue;\ncreateApp({\n" +
	"  data() {\n    return {\n      // streamed rows\n      tickerItems: [],\n      tickerLabel: \"Live, now\",\n    };\n  },\n" +
	"  methods: {\n    refreshTicker() {\n      this.tickerItems = [{ id: 1, text: '}' }];\n    },\n" +
	"    async connect(url) {\n      await fetch(url);\n    }\n  }\n}).mount('#app');\n</script>\n" +
	"</body>\n</html>\n```"
