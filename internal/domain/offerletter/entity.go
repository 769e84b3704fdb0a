package offerletter

import "time"

// NodeType enum
type NodeType string

const (
	NodeText     NodeType = "text"
	NodeVariable NodeType = "variable"
)

// Node is one piece of letter content. Text nodes carry literal copy;
// variable nodes carry the key of a template variable to substitute.
type Node struct {
	Type  NodeType `json:"type"`
	Value string   `json:"value"`
}

// Variable is a named placeholder bound at render time.
type Variable struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Template is the offer letter for one pay grade. At most one template
// exists per (client, job structure, pay grade).
type Template struct {
	ID             string
	ClientID       string
	JobStructureID string
	PayGradeID     string
	Header         map[string]string
	Footer         map[string]string
	Content        []Node
	Variables      []Variable
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResolveVariables maps variable keys to their effective values, preferring
// overrides over the stored defaults.
func (t Template) ResolveVariables(overrides map[string]string) map[string]string {
	resolved := make(map[string]string, len(t.Variables))
	for _, v := range t.Variables {
		resolved[v.Key] = v.Value
	}
	for k, v := range overrides {
		resolved[k] = v
	}
	return resolved
}
