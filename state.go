package authoring

import (
	"context"
	"time"

	"github.com/sharanyavinod/aem-spa-page-model-manager/document"
	"github.com/sharanyavinod/aem-spa-page-model-manager/pkg/audit"
)

// IsStateActive reports whether the requested state is active for doc. Only
// StateAuthoring is recognised; it is active when exactly one of the query
// parameter and the meta property indicates edit mode.
func (u *Utils) IsStateActive(doc document.Document, state State) bool {
	start := time.Now()
	var trace Trace
	active := false
	if state == StateAuthoring {
		trace = u.explain(doc, ModeEdit)
		active = trace.Active
	}
	u.decisionLogger().LogDecision(DecisionLogEvent{
		Op:       DecisionOpState,
		Page:     pageLabel(doc),
		State:    state,
		Active:   active,
		Duration: time.Since(start),
	})
	u.auditDecision(doc, state, active, trace)
	return active
}

// IsEditMode reports whether the page carries an edit signal from exactly
// one source.
func (u *Utils) IsEditMode(doc document.Document) bool {
	return u.modeActive(doc, ModeEdit)
}

// IsPreviewMode reports whether the page carries a preview signal from
// exactly one source.
func (u *Utils) IsPreviewMode(doc document.Document) bool {
	return u.modeActive(doc, ModePreview)
}

// IsRemoteApp reports whether doc belongs to a remote SPA deployment. Remote
// apps are addressed through the aemmode query parameter; pages rendered
// inside AEM never carry it.
func (u *Utils) IsRemoteApp(doc document.Document) bool {
	return doc.HasQueryParameter(AEMModeParam)
}

// IsInEditor reports whether any editor context applies to doc.
func (u *Utils) IsInEditor(doc document.Document) bool {
	return u.IsEditMode(doc) || u.IsPreviewMode(doc) || u.IsRemoteApp(doc)
}

func (u *Utils) modeActive(doc document.Document, mode Mode) bool {
	start := time.Now()
	trace := u.explain(doc, mode)
	u.decisionLogger().LogDecision(DecisionLogEvent{
		Op:       DecisionOpMode,
		Page:     pageLabel(doc),
		Mode:     mode,
		Active:   trace.Active,
		Duration: time.Since(start),
	})
	return trace.Active
}

// ExplainMode returns the full provenance of a mode decision: what each
// signal source contributed and the resulting verdict.
func (u *Utils) ExplainMode(doc document.Document, mode Mode) Trace {
	return u.explain(doc, mode)
}

func (u *Utils) explain(doc document.Document, mode Mode) Trace {
	queryValue, queryFound := doc.QueryParameter(AEMModeParam)
	viaQuery := queryFound && ParseMode(queryValue) == mode
	metaValue, metaFound := doc.MetaProperty(MetaPropertyWCMMode)
	viaMeta := metaFound && ParseMode(metaValue) == mode

	return newTrace(pageLabel(doc), mode, viaQuery != viaMeta, []SourceReading{
		{Source: SourceQueryParam, Value: queryValue, Found: queryFound, Indicates: viaQuery},
		{Source: SourceMetaProperty, Value: metaValue, Found: metaFound, Indicates: viaMeta},
	})
}

func (u *Utils) auditDecision(doc document.Document, state State, active bool, trace Trace) {
	if !u.cfg.hooks.Enabled() {
		return
	}
	_ = u.cfg.hooks.Notify(context.Background(), audit.Event{
		Verb:       "decide",
		ObjectType: "page",
		ObjectID:   pageLabel(doc),
		Metadata: map[string]any{
			"state":    string(state),
			"active":   active,
			"trace_id": trace.ID,
		},
	})
}

func pageLabel(doc document.Document) string {
	if u := doc.URL(); u != nil && u.Path != "" {
		return u.Path
	}
	return "unknown"
}
