// Package xmlexport serializa el kardex de un técnico a XML con huella SHA-256 sobre su forma C14N.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/dto"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/application/report"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
)

var _ report.KardexEncoder = (*KardexEncoder)(nil)

// NamespaceKardex espacio de nombres del documento.
const NamespaceKardex = "urn:acsolution:kardex:1"

// KardexEncoder construye el documento con etree y calcula el digest canónico.
type KardexEncoder struct{}

func NewKardexEncoder() *KardexEncoder { return &KardexEncoder{} }

// EncodeKardex devuelve el XML y la huella hex de su forma canónica.
func (e *KardexEncoder) EncodeKardex(_ context.Context, technicianID string, movements []dto.MovementResponse, generatedAt time.Time) (*report.KardexDocument, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Kardex")
	root.CreateAttr("xmlns", NamespaceKardex)
	root.CreateAttr("tecnico", technicianID)
	root.CreateAttr("generado", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("movimientos", strconv.Itoa(len(movements)))

	totals := map[string]decimal.Decimal{}
	for _, m := range movements {
		mov := root.CreateElement("Movimiento")
		mov.CreateAttr("id", m.ID)
		mov.CreateAttr("tipo", m.Type)
		mov.CreateAttr("fecha", m.Date.UTC().Format(time.RFC3339))

		mov.CreateElement("Material").SetText(m.MaterialID)
		mov.CreateElement("Cantidad").SetText(m.Quantity.String())
		mov.CreateElement("CostoUnitario").SetText(m.UnitCost.StringFixed(2))

		origin := mov.CreateElement("Origen")
		origin.CreateAttr("tipo", m.Origin)
		if m.OriginRefID != "" {
			origin.CreateAttr("referencia", m.OriginRefID)
		}
		if m.PolicyNumber != "" {
			mov.CreateElement("Poliza").SetText(m.PolicyNumber)
		}
		if m.Reason != "" {
			mov.CreateElement("Motivo").SetText(m.Reason)
		}
		if m.UserID != "" {
			mov.CreateElement("Usuario").SetText(m.UserID)
		}
		totals[m.Type] = totals[m.Type].Add(m.Quantity)
	}

	summary := root.CreateElement("Resumen")
	for _, t := range []string{"entrada", "apartado", "salida", "devolucion", "ajuste"} {
		if q, ok := totals[t]; ok {
			total := summary.CreateElement("Total")
			total.CreateAttr("tipo", t)
			total.SetText(q.String())
		}
	}

	doc.Indent(2)
	content, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar kardex: %w", err)
	}
	digest, err := Digest(content)
	if err != nil {
		return nil, err
	}
	return &report.KardexDocument{Content: content, Digest: digest}, nil
}

// Digest SHA-256 (hex) de la forma canónica C14N. El orden de los atributos no cambia la huella.
func Digest(content []byte) (string, error) {
	canonical, err := canonicalize(content)
	if err != nil {
		return "", fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
