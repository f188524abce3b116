package xmlexport_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/xmlexport"
)

func movements() []dto.MovementResponse {
	at := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return []dto.MovementResponse{
		{
			ID:           "mov-1",
			TechnicianID: "tec-1",
			MaterialID:   "mat-m",
			Type:         "entrada",
			Quantity:     decimal.NewFromInt(15),
			UnitCost:     decimal.NewFromInt(1000),
			Origin:       "Manual",
			Date:         at,
		},
		{
			ID:           "mov-2",
			TechnicianID: "tec-1",
			MaterialID:   "mat-m",
			Type:         "salida",
			Quantity:     decimal.NewFromInt(2),
			UnitCost:     decimal.NewFromInt(1000),
			Origin:       "poliza",
			PolicyNumber: "POL-77",
			Reason:       "reparación & ajuste",
			Date:         at.Add(time.Hour),
		},
	}
}

func TestEncodeKardex_EstructuraYResumen(t *testing.T) {
	out, err := xmlexport.NewKardexEncoder().EncodeKardex(context.Background(), "tec-1", movements(), time.Now())
	require.NoError(t, err)
	require.Len(t, out.Digest, 64)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out.Content))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "tec-1", root.SelectAttrValue("tecnico", ""))
	assert.Len(t, root.SelectElements("Movimiento"), 2)

	poliza := root.FindElement("./Movimiento[@id='mov-2']/Poliza")
	require.NotNil(t, poliza)
	assert.Equal(t, "POL-77", poliza.Text())

	salida := root.FindElement("./Resumen/Total[@tipo='salida']")
	require.NotNil(t, salida)
	assert.Equal(t, "2", salida.Text())
}

func TestDigest_EstableAnteOrdenDeAtributos(t *testing.T) {
	out, err := xmlexport.NewKardexEncoder().EncodeKardex(context.Background(), "tec-1", movements(), time.Now())
	require.NoError(t, err)

	reordered := bytes.Replace(out.Content,
		[]byte(`id="mov-1" tipo="entrada"`),
		[]byte(`tipo="entrada" id="mov-1"`), 1)
	require.NotEqual(t, out.Content, reordered)

	digest, err := xmlexport.Digest(reordered)
	require.NoError(t, err)
	assert.Equal(t, out.Digest, digest)

	tampered := []byte(strings.Replace(string(out.Content), "<Cantidad>15</Cantidad>", "<Cantidad>16</Cantidad>", 1))
	digest, err = xmlexport.Digest(tampered)
	require.NoError(t, err)
	assert.NotEqual(t, out.Digest, digest)
}
