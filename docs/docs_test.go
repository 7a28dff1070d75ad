package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/tienda-pos/docs"
)

func TestSwagger_RegistradoYValido(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	for _, p := range []string{"/api/sales/entry/submit", "/api/sales/export", "/api/cash", "/api/charts/sales"} {
		assert.Contains(t, doc.Paths, p)
	}
}
