package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/reglet-dev/apmlc/internal/application/errors"
	"github.com/reglet-dev/apmlc/internal/application/ports"
	"github.com/reglet-dev/apmlc/internal/domain/entities"
	"golang.org/x/net/html"
)

const (
	// DefaultFallbackMaxTokens bounds the generative response.
	DefaultFallbackMaxTokens = 4000
	// DefaultMaxPromptChars caps the document text embedded in a prompt.
	DefaultMaxPromptChars = 16000
	// baseMarkupExcerpt is how much rule-based markup the prompt carries.
	baseMarkupExcerpt = 1000
)

// StyleGuide fixes naming and theme conventions for generated code.
type StyleGuide struct {
	DataNames    []string
	MethodNames  []string
	CSSClasses   []string
	Colors       []string
	RuntimeLabel string
}

// DefaultStyleGuide returns the conventions used by the rule-based generators.
func DefaultStyleGuide(runtimeMarker string) StyleGuide {
	return StyleGuide{
		DataNames:    []string{"appTitle", "user_name", "user_description", "current_view"},
		MethodNames:  []string{"submitForm", "handleClick", "nextStep", "previousStep"},
		CSSClasses:   []string{"app-container", "component", "btn", "btn-primary", "modal-overlay"},
		Colors:       []string{"#0a0a0a (background)", "#00ff88 (accent)", "#ffffff (text)"},
		RuntimeLabel: runtimeMarker,
	}
}

// Directives renders the guide as system directives.
func (g StyleGuide) Directives() string {
	var sb strings.Builder
	sb.WriteString("You are an expert Vue 3 developer compiling APML specifications into working applications.\n")
	sb.WriteString("Follow these conventions exactly:\n")
	fmt.Fprintf(&sb, "- Data property names: %s\n", strings.Join(g.DataNames, ", "))
	fmt.Fprintf(&sb, "- Method names: %s\n", strings.Join(g.MethodNames, ", "))
	fmt.Fprintf(&sb, "- CSS classes: %s\n", strings.Join(g.CSSClasses, ", "))
	fmt.Fprintf(&sb, "- Colors: %s\n", strings.Join(g.Colors, ", "))
	fmt.Fprintf(&sb, "- Load the runtime as %s from a CDN and mount on #app\n", g.RuntimeLabel)
	sb.WriteString("Return a complete HTML document starting with <!DOCTYPE html>.")
	return sb.String()
}

// FallbackInput is what the compile use case hands the adapter.
type FallbackInput struct {
	DocumentText string
	BaseMarkup   string
	Unresolved   []string
}

// FallbackOutput is generated code extracted from a backend reply.
// Bindings, Methods and Definitions are read from the script's data() and
// methods so a merge can declare what the markup refers to.
type FallbackOutput struct {
	Definitions map[string]string
	Markup      string
	Script      string
	Style       string
	Bindings    []entities.Binding
	Methods     []string
}

// Fragment renders the output as a fragment for merging with rule-based ones.
func (o *FallbackOutput) Fragment() entities.Fragment {
	return entities.Fragment{
		Markup:      o.Markup,
		Bindings:    o.Bindings,
		Methods:     o.Methods,
		Definitions: o.Definitions,
	}
}

// FallbackAdapter bounds requests to the generative backend and extracts its output.
type FallbackAdapter struct {
	backend        ports.GenerativeFallback
	scrubber       ports.TextScrubber
	logger         *slog.Logger
	guide          StyleGuide
	maxTokens      int
	maxPromptChars int
}

// NewFallbackAdapter creates an adapter around backend.
func NewFallbackAdapter(
	backend ports.GenerativeFallback,
	scrubber ports.TextScrubber,
	guide StyleGuide,
	maxTokens int,
	maxPromptChars int,
	logger *slog.Logger,
) *FallbackAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	if maxTokens <= 0 {
		maxTokens = DefaultFallbackMaxTokens
	}
	if maxPromptChars <= 0 {
		maxPromptChars = DefaultMaxPromptChars
	}
	return &FallbackAdapter{
		backend:        backend,
		scrubber:       scrubber,
		guide:          guide,
		maxTokens:      maxTokens,
		maxPromptChars: maxPromptChars,
		logger:         logger,
	}
}

// Provider names the backend for consent prompts and logs.
func (a *FallbackAdapter) Provider() string {
	if named, ok := a.backend.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "generative backend"
}

// Available reports whether a backend is configured.
func (a *FallbackAdapter) Available() bool {
	return a != nil && a.backend != nil
}

// BuildRequest renders the bounded request for in.
func (a *FallbackAdapter) BuildRequest(in FallbackInput) ports.GenerationRequest {
	text := in.DocumentText
	if a.scrubber != nil {
		text = a.scrubber.Scrub(text)
	}
	text = truncate(text, a.maxPromptChars)

	var sb strings.Builder
	sb.WriteString("Compile this APML to Vue 3 application:\n\n")
	sb.WriteString(text)
	sb.WriteString("\n\nEXISTING BASE CODE (enhance, don't replace):\n")
	sb.WriteString(truncate(in.BaseMarkup, baseMarkupExcerpt))
	sb.WriteString("...\n\nFOCUS ON THESE UNKNOWN PATTERNS/UNRESOLVED COMPONENTS:\n")
	for _, u := range in.Unresolved {
		sb.WriteString("- ")
		sb.WriteString(u)
		sb.WriteByte('\n')
	}
	sb.WriteString("\nGenerate markup for the unresolved components that fits the existing base code.")

	return ports.GenerationRequest{
		Prompt:           sb.String(),
		SystemDirectives: a.guide.Directives(),
		MaxTokens:        a.maxTokens,
	}
}

// Generate calls the backend and extracts markup, script and style from the reply.
func (a *FallbackAdapter) Generate(ctx context.Context, in FallbackInput) (*FallbackOutput, error) {
	if !a.Available() {
		return nil, apperrors.NewGenerationError("no generative backend configured", nil)
	}

	reply, err := a.backend.Generate(ctx, a.BuildRequest(in))
	if err != nil {
		reason := "backend call failed"
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = "backend call timed out"
		}
		return nil, apperrors.NewGenerationError(reason, err)
	}

	out, err := Extract(reply)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("extracted generative output", "markup_bytes", len(out.Markup), "script_bytes", len(out.Script))
	return out, nil
}

// Extract pulls generated code out of an opaque backend reply.
// A full HTML document wins over a <template> block. Inside a document the
// #app mount element is unwrapped so its content can sit in another mount.
func Extract(reply string) (*FallbackOutput, error) {
	scan := scanReply(StripCodeFences(reply))

	var out *FallbackOutput
	switch {
	case scan.doctype || scan.hasBody:
		markup := scan.body.String()
		if scan.hasApp {
			markup = scan.app.String()
		}
		markup = strings.TrimSpace(markup)
		if markup == "" {
			return nil, apperrors.NewExtractionError("html document has an empty body")
		}
		out = &FallbackOutput{Markup: markup}
	case scan.hasTemplate:
		if !scan.templateClosed {
			return nil, apperrors.NewExtractionError("unterminated <template> block")
		}
		markup := strings.TrimSpace(scan.template.String())
		if markup == "" {
			return nil, apperrors.NewExtractionError("empty <template> block")
		}
		out = &FallbackOutput{Markup: markup}
	default:
		return nil, apperrors.NewExtractionError("no html document or <template> block found")
	}

	out.Script = scan.lastScript()
	out.Style = strings.TrimSpace(scan.style)
	out.Bindings, out.Methods, out.Definitions = ScriptMembers(out.Script)
	return out, nil
}

// replyScan collects the raw source of the parts of a reply the compiler keeps.
// Every captured piece comes from Tokenizer.Raw, so attribute syntax such as
// @submit.prevent or :value is kept byte for byte.
type replyScan struct {
	body     strings.Builder // <body> content without script and style elements
	app      strings.Builder // content of the first element with id="app"
	template strings.Builder // content of the outermost first <template>
	scripts  []string        // inline script bodies in document order
	style    string          // first <style> body

	doctype, hasBody, hasApp, hasTemplate, templateClosed, styleSeen bool

	inBody, inScript, inlineScript, inStyle bool
	appTag                                  string
	appDepth, templateDepth                 int
}

func scanReply(text string) *replyScan {
	s := &replyScan{}
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return s
		}
		raw := string(z.Raw())

		switch tt {
		case html.DoctypeToken:
			if strings.HasPrefix(strings.ToLower(strings.TrimSpace(string(z.Text()))), "html") {
				s.doctype = true
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			s.startTag(z, tt, raw)
		case html.EndTagToken:
			name, _ := z.TagName()
			s.endTag(string(name), raw)
		case html.TextToken:
			switch {
			case s.inScript:
				if s.inlineScript {
					s.scripts[len(s.scripts)-1] += raw
				}
			case s.inStyle:
				if !s.styleSeen {
					s.style += raw
				}
			default:
				s.capture(raw)
			}
		default:
			s.capture(raw)
		}
	}
}

func (s *replyScan) startTag(z *html.Tokenizer, tt html.TokenType, raw string) {
	name, hasAttr := z.TagName()
	tag := string(name)
	var id string
	src := false
	for hasAttr {
		var key, val []byte
		key, val, hasAttr = z.TagAttr()
		switch string(key) {
		case "id":
			id = string(val)
		case "src":
			src = true
		}
	}
	open := tt == html.StartTagToken

	switch tag {
	case "body":
		if !s.hasBody {
			s.inBody, s.hasBody = true, true
		}
		return
	case "script":
		s.inScript, s.inlineScript = open, !src
		if s.inScript && s.inlineScript {
			s.scripts = append(s.scripts, "")
		}
		return
	case "style":
		s.inStyle = open
		return
	}

	if open && s.appDepth > 0 && tag == s.appTag {
		s.appDepth++
	}
	if open && s.templateDepth > 0 && tag == "template" {
		s.templateDepth++
	}
	s.capture(raw)

	if open && id == "app" && !s.hasApp && s.appDepth == 0 {
		s.appTag, s.appDepth, s.hasApp = tag, 1, true
	}
	if open && tag == "template" && !s.hasTemplate {
		s.templateDepth, s.hasTemplate = 1, true
	}
}

func (s *replyScan) endTag(tag, raw string) {
	switch tag {
	case "body":
		s.inBody = false
		return
	case "script":
		s.inScript = false
		return
	case "style":
		if s.inStyle {
			s.styleSeen = true
		}
		s.inStyle = false
		return
	}

	if s.appDepth > 0 && tag == s.appTag {
		if s.appDepth--; s.appDepth == 0 {
			s.captureBody(raw)
			s.captureTemplate(raw)
			return
		}
	}
	if s.templateDepth > 0 && tag == "template" {
		if s.templateDepth--; s.templateDepth == 0 {
			s.templateClosed = true
			s.captureBody(raw)
			s.captureApp(raw)
			return
		}
	}
	s.capture(raw)
}

func (s *replyScan) capture(raw string) {
	s.captureBody(raw)
	s.captureApp(raw)
	s.captureTemplate(raw)
}

func (s *replyScan) captureBody(raw string) {
	if s.inBody {
		s.body.WriteString(raw)
	}
}

func (s *replyScan) captureApp(raw string) {
	if s.appDepth > 0 {
		s.app.WriteString(raw)
	}
}

func (s *replyScan) captureTemplate(raw string) {
	if s.templateDepth > 0 && !s.templateClosed {
		s.template.WriteString(raw)
	}
}

// lastScript is the last non-empty inline script.
func (s *replyScan) lastScript() string {
	for i := len(s.scripts) - 1; i >= 0; i-- {
		if body := strings.TrimSpace(s.scripts[i]); body != "" {
			return body
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
