package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	doc := Document{
		Title:       "Offer of Employment",
		HeaderLines: []string{"Meridian HR", "Lagos, Nigeria"},
		Paragraphs: []string{
			"Dear Adaeze Obi,",
			"We are pleased to offer you the position of Senior Analyst at an annual compensation of NGN 9,600,000.",
		},
		FooterLines: []string{"This offer is valid for 14 days."},
	}

	out, err := Render(doc)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderEmptyDocument(t *testing.T) {
	out, err := Render(Document{Title: "Offer of Employment"})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
