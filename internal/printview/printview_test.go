package printview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# CONTRATO\n**CONTRATANTE:** <Empresa>", Options{AutoPrint: true})
	require.NoError(t, err)

	assert.Contains(t, out, "<title>Contrato de Prestação de Serviços</title>")
	assert.Contains(t, out, "<h1>CONTRATO</h1>")
	assert.Contains(t, out, "<strong>CONTRATANTE:</strong> &lt;Empresa&gt;")
	assert.Contains(t, out, "window.print()")
}

func TestRender_WithoutAutoPrint(t *testing.T) {
	out, err := Render("texto", Options{Title: "Prévia"})
	require.NoError(t, err)
	assert.NotContains(t, out, "window.print()")
	assert.Contains(t, out, "<title>Prévia</title>")
}
