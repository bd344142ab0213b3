package report

import (
	"fmt"
	"time"

	"github.com/lilyle-2211/game-analytics-dashboard/domain/core"
)

// Dashboard tabs. Each report belongs to exactly one.
const (
	TabAcquisition  core.TabKey = "acquisition"
	TabEngagement   core.TabKey = "engagement"
	TabMonetization core.TabKey = "monetization"
	TabLTV          core.TabKey = "ltv"
)

// Tabs lists all dashboard tabs in display order
func Tabs() []core.TabKey {
	return []core.TabKey{TabAcquisition, TabEngagement, TabMonetization, TabLTV}
}

// ParamKind types a report parameter for validation and binding
type ParamKind string

const (
	ParamDate   ParamKind = "date"
	ParamNumber ParamKind = "number"
)

// Param describes one named parameter a report's SQL expects
type Param struct {
	Name        string      `json:"name"`
	Kind        ParamKind   `json:"kind"`
	Default     interface{} `json:"default"`
	Description string      `json:"description,omitempty"`
}

// Definition is a parameterized warehouse report: the SQL text plus the
// metadata the dashboard needs to surface it.
type Definition struct {
	Key         core.ReportKey `json:"key"`
	Tab         core.TabKey    `json:"tab"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	SQL         string         `json:"-"`
	Params      []Param        `json:"params,omitempty"`
}

// DefaultParams returns the parameter map with every declared default
func (d Definition) DefaultParams() map[string]interface{} {
	out := make(map[string]interface{}, len(d.Params))
	for _, p := range d.Params {
		out[p.Name] = p.Default
	}
	return out
}

// ResolveParams merges user-supplied overrides over the declared
// defaults, rejecting parameters the report does not declare and values
// that do not match the declared kind.
func (d Definition) ResolveParams(overrides map[string]string) (map[string]interface{}, error) {
	out := d.DefaultParams()
	for name, raw := range overrides {
		p, ok := d.paramByName(name)
		if !ok {
			return nil, fmt.Errorf("report %s does not accept parameter %q", d.Key, name)
		}
		val, err := p.parse(raw)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}

func (d Definition) paramByName(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (p Param) parse(raw string) (interface{}, error) {
	switch p.Kind {
	case ParamDate:
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q expects a YYYY-MM-DD date: %w", p.Name, err)
		}
		return t, nil
	case ParamNumber:
		var f float64
		if _, err := fmt.Sscanf(raw, "%g", &f); err != nil {
			return nil, fmt.Errorf("parameter %q expects a number: %w", p.Name, err)
		}
		return f, nil
	default:
		return raw, nil
	}
}

// Row is one result row, column name to value
type Row map[string]interface{}

// Table is the tabular result of executing a report
type Table struct {
	Report  core.ReportKey `json:"report"`
	Columns []string       `json:"columns"`
	Rows    []Row          `json:"rows"`

	// Run identifies this execution. Exports and warehouse logs carry
	// it so a workbook can be traced back to the queries that built it.
	Run core.CalculationID `json:"run_id"`

	ExecutedAt time.Time     `json:"executed_at"`
	Elapsed    time.Duration `json:"elapsed_ns"`
}

// FloatColumn extracts a numeric column as float64s, skipping rows
// where the value is missing or not numeric. Drivers hand back a mix of
// int64/float64/[]byte, so this normalizes.
func (t *Table) FloatColumn(name string) []float64 {
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		v, ok := row[name]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case float32:
			out = append(out, float64(n))
		case int64:
			out = append(out, float64(n))
		case int:
			out = append(out, float64(n))
		case []byte:
			var f float64
			if _, err := fmt.Sscanf(string(n), "%g", &f); err == nil {
				out = append(out, f)
			}
		}
	}
	return out
}
