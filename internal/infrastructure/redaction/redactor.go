// Package redaction scrubs secrets from document text before it leaves the process.
package redaction

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/viper"
	"github.com/zricethezav/gitleaks/v8/config"
	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces a secret when hash mode is off.
const Placeholder = "[REDACTED]"

// Redactor replaces secrets in APML text sent to repair and generative backends.
// All fields are read-only after construction, making it safe for concurrent use.
type Redactor struct {
	patterns []*regexp.Regexp
	hashMode bool
	salt     string

	// If nil, only the regex patterns apply.
	gitleaksDetector *detect.Detector
}

// Config holds the configuration for the Redactor.
type Config struct {
	// Custom patterns to redact (e.g. "INT-[A-Z0-9]{16}")
	Patterns []string
	// If true, replace with a salted hash instead of [REDACTED]
	HashMode bool
	Salt     string
	// If true, skip the gitleaks rule set and use only regex patterns
	DisableGitleaks bool
	Logger          *slog.Logger
}

// Finding is one secret located in a document.
type Finding struct {
	Rule string `json:"rule" yaml:"rule"`
	Line int    `json:"line" yaml:"line"`
}

// New creates a new Redactor with the given configuration.
func New(cfg Config) (*Redactor, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Redactor{
		hashMode: cfg.HashMode,
		salt:     cfg.Salt,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)+len(defaultPatterns)),
	}

	if !cfg.DisableGitleaks {
		detector, err := newGitleaksDetector()
		if err != nil {
			logger.Warn("gitleaks rules unavailable, using regex patterns only", "error", err)
		} else {
			r.gitleaksDetector = detector
		}
	}

	for _, p := range defaultPatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile default pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to compile custom pattern %s: %w", p, err)
		}
		r.patterns = append(r.patterns, re)
	}

	return r, nil
}

// newGitleaksDetector loads the gitleaks default rule set.
func newGitleaksDetector() (*detect.Detector, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(config.DefaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read gitleaks config: %w", err)
	}

	var vc config.ViperConfig
	if err := v.Unmarshal(&vc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gitleaks config: %w", err)
	}

	cfg, err := vc.Translate()
	if err != nil {
		return nil, fmt.Errorf("failed to translate gitleaks config: %w", err)
	}

	return detect.NewDetector(cfg), nil
}

// Scrub replaces every secret in text. It satisfies ports.TextScrubber.
func (r *Redactor) Scrub(text string) string {
	if text == "" {
		return ""
	}

	result := text
	if r.gitleaksDetector != nil {
		for _, finding := range r.gitleaksDetector.Detect(detect.Fragment{Raw: result}) {
			if finding.Secret == "" {
				continue
			}
			result = strings.ReplaceAll(result, finding.Secret, r.replacement(finding.Secret))
		}
	}

	for _, re := range r.patterns {
		result = re.ReplaceAllStringFunc(result, r.replacement)
	}
	return result
}

// Find reports the secrets in text without modifying it, ordered by line.
func (r *Redactor) Find(text string) []Finding {
	var findings []Finding
	if r.gitleaksDetector != nil {
		for _, f := range r.gitleaksDetector.Detect(detect.Fragment{Raw: text}) {
			findings = append(findings, Finding{Rule: f.RuleID, Line: f.StartLine + 1})
		}
	}

	for i, line := range strings.Split(text, "\n") {
		for _, re := range r.patterns {
			if re.MatchString(line) && !hasFinding(findings, i+1) {
				findings = append(findings, Finding{Rule: "pattern:" + re.String(), Line: i + 1})
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool { return findings[i].Line < findings[j].Line })
	return findings
}

func hasFinding(findings []Finding, line int) bool {
	for _, f := range findings {
		if f.Line == line {
			return true
		}
	}
	return false
}

func (r *Redactor) replacement(secret string) string {
	if r.hashMode {
		return r.hash(secret)
	}
	return Placeholder
}

// hash returns a truncated HMAC-SHA256 of the secret so repeated secrets stay correlatable.
// Format: [hmac:a1b2c3d4e5f6g7h8]
func (r *Redactor) hash(secret string) string {
	mac := hmac.New(sha256.New, []byte(r.salt))
	mac.Write([]byte(secret))
	return fmt.Sprintf("[hmac:%s]", hex.EncodeToString(mac.Sum(nil))[:16])
}

// defaultPatterns contains regexes for common secrets.
var defaultPatterns = []string{
	// AWS Access Key ID
	`\b((?:AKIA|ABIA|ACCA|ASIA)[0-9A-Z]{16})\b`,
	// Generic Private Key Header
	`-----BEGIN [A-Z ]+ PRIVATE KEY-----`,
	// Github Token
	`gh[pousr]_[A-Za-z0-9_]{36,255}`,
	// Slack Token
	`xox[baprs]-([0-9a-zA-Z]{10,48})?`,
	// Anthropic API key
	`sk-ant-[A-Za-z0-9_\-]{20,}`,
}
