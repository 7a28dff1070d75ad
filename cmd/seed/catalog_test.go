package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCatalog_UTF8ConEncabezado(t *testing.T) {
	raw := []byte("name,sku,stock,cost,price\nCamisa estampada,CAM-01,10,45.50,90\nTaza,,3,,25\n")
	ps, err := parseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, ps, 2)

	assert.Equal(t, "Camisa estampada", ps[0].Name)
	require.NotNil(t, ps[0].SKU)
	assert.Equal(t, "CAM-01", *ps[0].SKU)
	assert.Equal(t, 10, ps[0].Stock)
	assert.True(t, ps[0].Cost.Equal(decimal.RequireFromString("45.5")))

	assert.Nil(t, ps[1].SKU, "SKU vacío queda nulo")
	assert.True(t, ps[1].Cost.IsZero())
	assert.True(t, ps[1].Active)
}

func TestParseCatalog_ISO88591YPuntoYComa(t *testing.T) {
	// "Cañón" en ISO-8859-1: ñ = 0xF1, ó = 0xF3
	raw := []byte("nombre;sku;stock;costo;precio\nCa\xf1\xf3n;;2;1,5;3\n")
	ps, err := parseCatalog(raw)
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "Cañón", ps[0].Name)
	assert.True(t, ps[0].Cost.Equal(decimal.RequireFromString("1.5")))
}

func TestParseCatalog_ErroresConLinea(t *testing.T) {
	_, err := parseCatalog([]byte("Gorra,,-1,0,10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 1")

	_, err = parseCatalog([]byte(",SKU,1,0,10\n"))
	assert.ErrorContains(t, err, "nombre vacío")
}
