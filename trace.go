package authoring

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Source names a detection signal source.
type Source string

const (
	// SourceQueryParam is the aemmode URL query parameter.
	SourceQueryParam Source = "query"
	// SourceMetaProperty is the cq:wcmmode page meta property.
	SourceMetaProperty Source = "meta"
)

// Trace captures provenance for one mode decision: every source consulted
// and the verdict they produced together.
type Trace struct {
	ID      string          `json:"id"`
	Page    string          `json:"page"`
	Mode    Mode            `json:"mode"`
	Active  bool            `json:"active"`
	Sources []SourceReading `json:"sources"`
}

// SourceReading details what a single source contributed to a decision.
type SourceReading struct {
	Source    Source `json:"source"`
	Value     string `json:"value,omitempty"`
	Found     bool   `json:"found"`
	Indicates bool   `json:"indicates"`
}

func newTrace(page string, mode Mode, active bool, sources []SourceReading) Trace {
	return Trace{
		ID:      uuid.NewString(),
		Page:    page,
		Mode:    mode,
		Active:  active,
		Sources: sources,
	}
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated
// via ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
