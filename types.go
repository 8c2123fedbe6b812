package authoring

import (
	"time"

	"github.com/sharanyavinod/aem-spa-page-model-manager/pkg/audit"
)

// Utils detects the authoring state of a page document and renders the
// markup required to boot the CMS editor tooling. The zero value is not
// usable; construct instances through New or NewFromSettings.
type Utils struct {
	apiDomain string
	cfg       utilsConfig
}

// Response stores a typed result produced by a rule evaluation.
type Response[T any] struct {
	Value T
}

// RuleContext carries inputs needed when evaluating a detection rule.
type RuleContext struct {
	Snapshot any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Page     string
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) withDefaults() RuleContext {
	return ctx.withDefaultNow().withDefaultMaps()
}

func (ctx RuleContext) pageLabel() string {
	if ctx.Page != "" {
		return ctx.Page
	}
	return "unknown"
}

// Evaluator executes detection rule expressions against a page context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// Option configures a Utils instance at construction time.
type Option func(*utilsConfig)

type utilsConfig struct {
	evaluator Evaluator
	ruleCache RuleCache
	functions *FunctionRegistry
	logger    DecisionLogger
	hooks     audit.Hooks
	libraries LibrarySet
}

func applyOptions(opts []Option) utilsConfig {
	cfg := utilsConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEvaluator configures the rule evaluator used by EvaluateRule.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *utilsConfig) {
		cfg.evaluator = e
	}
}

// WithLibraries overrides the built-in editor client library set.
func WithLibraries(set LibrarySet) Option {
	return func(cfg *utilsConfig) {
		cfg.libraries = set.clone()
	}
}

// WithAuditHooks attaches audit hooks notified on state decisions. Hooks are
// cloned and nil entries dropped.
func WithAuditHooks(hooks audit.Hooks) Option {
	normalized := cloneAuditHooks(hooks)
	return func(cfg *utilsConfig) {
		cfg.hooks = normalized
	}
}

func cloneAuditHooks(hooks audit.Hooks) audit.Hooks {
	if len(hooks) == 0 {
		return nil
	}
	normalized := make([]audit.Hook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		normalized = append(normalized, hook)
	}
	if len(normalized) == 0 {
		return nil
	}
	return audit.Hooks(normalized)
}

func (u *Utils) evaluator() Evaluator {
	return u.cfg.evaluator
}

func (u *Utils) withEvaluator(e Evaluator) {
	u.cfg.evaluator = e
}

func (u *Utils) ruleCache() RuleCache {
	return u.cfg.ruleCache
}

func (u *Utils) functionRegistry() *FunctionRegistry {
	return u.cfg.functions
}

func (u *Utils) decisionLogger() DecisionLogger {
	if u.cfg.logger != nil {
		return u.cfg.logger
	}
	return noopDecisionLogger{}
}

func (u *Utils) librarySet() LibrarySet {
	if u.cfg.libraries.isZero() {
		return defaultLibraries
	}
	return u.cfg.libraries
}
