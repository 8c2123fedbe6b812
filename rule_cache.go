package authoring

// RuleCache stores compiled rule programs keyed by expression strings.
type RuleCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithRuleCache registers a compiled-rule cache on the Utils instance.
func WithRuleCache(cache RuleCache) Option {
	return func(cfg *utilsConfig) {
		cfg.ruleCache = cache
	}
}
