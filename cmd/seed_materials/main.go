// seed_materials carga el catálogo de materiales en PostgreSQL a partir del XML
// exportado por el sistema de compras (codificación ISO-8859-1).
//
// Uso: go run ./cmd/seed_materials [ruta/Materiales.xml]
// Por defecto busca Materiales.xml en el directorio actual. Usa la misma
// configuración (DATABASE_URL, DB_*) que la API. Es idempotente: los materiales
// existentes se actualizan.
package main

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/domain/entity"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/internal/infrastructure/postgres"
	"github.com/danieldelarosaginzalez-wq/ACSOLUTION-sub002/pkg/config"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Materiales []materialXML `xml:"material"`
}

type materialXML struct {
	Codigo    string `xml:"codigo,attr"`
	Nombre    string `xml:"nombre,attr"`
	Unidad    string `xml:"unidad,attr"`
	Costo     string `xml:"costo,attr"`
	Categoria string `xml:"categoria,attr"`
	Minimo    string `xml:"stock_minimo,attr"`
	Activo    string `xml:"activo,attr"`
}

func main() {
	xmlPath := "Materiales.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	materials, skipped, err := parseCatalog(f, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewMaterialRepository(pool)
	var created, updated int
	for _, m := range materials {
		existing, err := repo.GetByID(ctx, m.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Consultar %s: %v\n", m.ID, err)
			os.Exit(1)
		}
		if existing == nil {
			err = repo.Create(ctx, m)
			created++
		} else {
			m.CreatedAt = existing.CreatedAt
			err = repo.Update(ctx, m)
			updated++
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Guardar %s: %v\n", m.ID, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Catálogo %s: %d creados, %d actualizados, %d omitidos\n", xmlPath, created, updated, skipped)
}

// parseCatalog decodifica el XML y descarta filas incompletas o con números inválidos.
func parseCatalog(r io.Reader, now time.Time) ([]*entity.Material, int, error) {
	var c catalogo
	dec := xml.NewDecoder(r)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&c); err != nil {
		return nil, 0, err
	}

	var out []*entity.Material
	skipped := 0
	seen := make(map[string]bool)
	for _, v := range c.Materiales {
		code := strings.TrimSpace(v.Codigo)
		name := strings.TrimSpace(v.Nombre)
		if code == "" || name == "" || seen[code] {
			skipped++
			continue
		}
		cost, err := parseAmount(v.Costo)
		if err != nil {
			skipped++
			continue
		}
		minimum, err := parseAmount(v.Minimo)
		if err != nil {
			skipped++
			continue
		}
		status := entity.MaterialStatusActive
		if strings.EqualFold(strings.TrimSpace(v.Activo), "no") {
			status = entity.MaterialStatusInactive
		}
		unit := strings.TrimSpace(v.Unidad)
		if unit == "" {
			unit = "und"
		}
		seen[code] = true
		out = append(out, &entity.Material{
			ID:           code,
			Name:         name,
			UnitMeasure:  unit,
			UnitCost:     cost,
			Category:     strings.TrimSpace(v.Categoria),
			MinimumStock: minimum,
			Status:       status,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return out, skipped, nil
}

// parseAmount acepta coma decimal ("1250,50"); vacío es cero. Negativos no.
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("valor negativo %s", s)
	}
	return d, nil
}
