package numeric_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-pos/pkg/numeric"
)

func TestParse_VacioNoEsCero(t *testing.T) {
	o, err := numeric.Parse("   ")
	require.NoError(t, err)
	assert.False(t, o.IsSet())
	assert.True(t, o.Or(decimal.NewFromInt(7)).Equal(decimal.NewFromInt(7)))

	zero, err := numeric.Parse("0")
	require.NoError(t, err)
	assert.True(t, zero.IsSet())
	assert.True(t, zero.Or(decimal.NewFromInt(7)).IsZero())
}

func TestParse_ComaDecimal(t *testing.T) {
	o, err := numeric.Parse("12,50")
	require.NoError(t, err)
	assert.Equal(t, "12.5", o.String())
}

func TestParse_Invalido(t *testing.T) {
	_, err := numeric.Parse("doce")
	assert.Error(t, err)
}

func TestIntOr(t *testing.T) {
	n, err := numeric.Optional{}.IntOr(0)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = numeric.Of(decimal.NewFromInt(5)).IntOr(0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = numeric.Of(decimal.RequireFromString("2.5")).IntOr(0)
	assert.Error(t, err)
}

func TestUnmarshalJSON(t *testing.T) {
	var in struct {
		Price numeric.Optional `json:"price"`
		Cost  numeric.Optional `json:"cost"`
		Stock numeric.Optional `json:"stock"`
		Extra numeric.Optional `json:"extra"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price": 10.5, "cost": "", "stock": "3", "extra": null}`), &in))

	assert.Equal(t, "10.5", in.Price.String())
	assert.False(t, in.Cost.IsSet())
	assert.Equal(t, "3", in.Stock.String())
	assert.False(t, in.Extra.IsSet())
}

func TestMarshalJSON_SinDefinirEsNull(t *testing.T) {
	b, err := json.Marshal(struct {
		A numeric.Optional `json:"a"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": null}`, string(b))
}

func TestIsNegative(t *testing.T) {
	assert.False(t, numeric.Optional{}.IsNegative())
	assert.True(t, numeric.Of(decimal.NewFromInt(-1)).IsNegative())
}
