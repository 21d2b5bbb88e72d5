package mallard_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/mallard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<?xml version="1.0" encoding="utf-8"?>
<page xmlns="http://projectmallard.org/1.0/" type="topic" id="net-wireless">
  <info>
    <link type="guide" xref="net"/>
    <desc>Connect to a wireless network.</desc>
  </info>
  <title>Wireless networking</title>
  <p>Open the <gui>system menu</gui> and select your network.</p>
</page>`

func TestParsePage_extracts_title_and_text(t *testing.T) {
	t.Parallel()

	page, err := mallard.ParsePage([]byte(samplePage))
	require.NoError(t, err)

	assert.Equal(t, "Wireless networking", page.Title)
	assert.Contains(t, page.Content, "Connect to a wireless network.")
	assert.Contains(t, page.Content, "Open the system menu and select your network.")
}

func TestParsePage_rejects_malformed_xml(t *testing.T) {
	t.Parallel()

	_, err := mallard.ParsePage([]byte("<page><title>unclosed"))
	require.Error(t, err)
	assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
}

func TestParsePage_rejects_empty_document(t *testing.T) {
	t.Parallel()

	_, err := mallard.ParsePage([]byte(""))
	require.Error(t, err)
}

func TestLocaleCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		language string
		lang     string
		want     []string
	}{
		{"full locale with region", "pl_PL:en", "", []string{"pl_PL", "pl", "C", "en_GB"}},
		{"LANG fallback", "", "de_DE.UTF-8", []string{"de_DE", "de", "C", "en_GB"}},
		{"bare language", "fr", "", []string{"fr", "C", "en_GB"}},
		{"empty environment", "", "", []string{"C", "en_GB"}},
		{"duplicates removed", "C", "", []string{"C", "en_GB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, mallard.LocaleCandidates(tt.language, tt.lang))
		})
	}
}
