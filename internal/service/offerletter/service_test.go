package offerletter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianhr/payroll-backend-go/internal/domain/offerletter"
)

func TestRenderParagraphs(t *testing.T) {
	nodes := []offerletter.Node{
		{Type: offerletter.NodeText, Value: "Dear "},
		{Type: offerletter.NodeVariable, Value: "candidate_name"},
		{Type: offerletter.NodeText, Value: ",\nWe are pleased to offer you the "},
		{Type: offerletter.NodeVariable, Value: "grade_name"},
		{Type: offerletter.NodeText, Value: " position at "},
		{Type: offerletter.NodeVariable, Value: "total_compensation"},
		{Type: offerletter.NodeText, Value: " per annum."},
	}
	resolved := map[string]string{
		"candidate_name":     "Adaeze Obi",
		"grade_name":         "Senior Analyst",
		"total_compensation": "9600000.00",
	}

	paragraphs := renderParagraphs(nodes, resolved)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, "Dear Adaeze Obi,", paragraphs[0])
	assert.Equal(t, "We are pleased to offer you the Senior Analyst position at 9600000.00 per annum.", paragraphs[1])
}

func TestRenderParagraphsUnresolvedVariableIsBlank(t *testing.T) {
	nodes := []offerletter.Node{
		{Type: offerletter.NodeText, Value: "Hello "},
		{Type: offerletter.NodeVariable, Value: "missing"},
	}

	paragraphs := renderParagraphs(nodes, map[string]string{})
	require.Len(t, paragraphs, 1)
	assert.Equal(t, "Hello", paragraphs[0])
}

func TestMapLines(t *testing.T) {
	lines := mapLines(map[string]string{
		"company": "Meridian HR",
		"address": "14 Adeola Odeku St",
		"phone":   "",
	})

	// Stable key order, blanks dropped.
	assert.Equal(t, []string{"14 Adeola Odeku St", "Meridian HR"}, lines)
}
