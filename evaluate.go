package authoring

import (
	"errors"
	"fmt"
	"time"

	"github.com/sharanyavinod/aem-spa-page-model-manager/document"
)

var ErrNoEvaluator = errors.New("authoring: evaluator not configured")

// EvaluateRule executes a custom detection rule against doc. The rule sees
// the page snapshot (url, query, meta, title) plus now/args/metadata
// bindings and must be written for the configured evaluator engine.
func (u *Utils) EvaluateRule(doc document.Document, expr string) (Response[any], error) {
	ctx := RuleContext{
		Snapshot: pageSnapshot(doc),
		Page:     pageLabel(doc),
	}
	return u.EvaluateRuleWith(ctx, expr)
}

// EvaluateRuleWith executes expr using ctx. Callers supply their own
// snapshot when evaluating outside a parsed document.
func (u *Utils) EvaluateRuleWith(ctx RuleContext, expr string) (Response[any], error) {
	if expr == "" {
		return Response[any]{}, fmt.Errorf("authoring: expression must not be empty")
	}
	evaluator, err := u.resolveEvaluator()
	if err != nil {
		return Response[any]{}, err
	}
	ctx = ctx.withDefaults()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, expr, ctx.pageLabel(), evalErr)
	active, _ := value.(bool)
	u.decisionLogger().LogDecision(DecisionLogEvent{
		Op:       DecisionOpRule,
		Page:     ctx.pageLabel(),
		Engine:   engine,
		Expr:     expr,
		Active:   active,
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return Response[any]{}, evalErr
	}
	return Response[any]{Value: value}, nil
}

func (u *Utils) resolveEvaluator() (Evaluator, error) {
	evaluator := u.evaluator()
	if evaluator != nil {
		return evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := u.ruleCache(); cache != nil {
		exprOpts = append(exprOpts, ExprWithRuleCache(cache))
	}
	if registry := u.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	u.withEvaluator(defaultEvaluator)
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*authoring.exprEvaluator":
		return "expr"
	case "*authoring.celEvaluator":
		return "cel"
	case "*authoring.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}

// pageSnapshot flattens a document into the bindings exposed to rules.
func pageSnapshot(doc document.Document) map[string]any {
	meta := map[string]any{}
	for name, value := range doc.MetaProperties() {
		meta[name] = value
	}
	query := map[string]any{}
	snapshot := map[string]any{
		"meta":  meta,
		"query": query,
		"title": doc.Title(),
	}
	if u := doc.URL(); u != nil {
		for name, values := range u.Query() {
			if len(values) > 0 {
				query[name] = values[0]
			}
		}
		snapshot["url"] = map[string]any{
			"scheme": u.Scheme,
			"host":   u.Host,
			"path":   u.Path,
		}
	}
	return snapshot
}
