package web

import (
	"bytes"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates(nil)
	require.NoError(t, err)
	for _, name := range []string{"index.html", "edit.html", "rename.html", "404.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	buf := &bytes.Buffer{}
	require.NoError(t, tmpl.ExecuteTemplate(buf, "error.html", "<b>boom</b>"))
	assert.Contains(t, buf.String(), "&lt;b&gt;boom&lt;/b&gt;")
}

func TestStatic(t *testing.T) {
	for _, name := range []string{"style.css", "favicon.png"} {
		_, err := fs.Stat(Static(), name)
		assert.NoError(t, err, name)
	}
}
