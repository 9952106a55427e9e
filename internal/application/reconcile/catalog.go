// Package reconcile filtra los flujos de entradas y reparaciones contra el catálogo de materiales
// y resuelve el identificador de cada registro a su código de material canónico.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/jhoicas/repair-rate/internal/domain"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
)

// MatchKind indica por qué clave se resolvió un identificador.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchMaterialCode
	MatchBoardCode
)

// Catalog conjunto confiable de identificadores.
//
// Orden de resolución: primero coincidencia directa con el código de material y, si no existe,
// con el código de placa. Un código de placa compartido por varios materiales resuelve al primero
// en orden de catálogo y queda registrado en Ambiguous.
type Catalog struct {
	materials []entity.Material
	byCode    map[string]int
	byBoard   map[string]int
	ambiguous map[string][]string
}

// NewCatalog construye el catálogo. Sin materiales devuelve domain.ErrEmptyReferenceSet.
// Los códigos se normalizan (recorte de espacios) igual que los registros que se comparan contra ellos.
func NewCatalog(materials []entity.Material) (*Catalog, error) {
	c := &Catalog{
		byCode:    make(map[string]int, len(materials)),
		byBoard:   make(map[string]int, len(materials)),
		ambiguous: make(map[string][]string),
	}
	for _, m := range materials {
		m.Code = normalizeID(m.Code)
		m.BoardCode = normalizeID(m.BoardCode)
		if m.Code == "" {
			continue
		}
		if _, dup := c.byCode[m.Code]; dup {
			continue
		}
		c.byCode[m.Code] = len(c.materials)
		c.materials = append(c.materials, m)
	}
	if len(c.materials) == 0 {
		return nil, fmt.Errorf("reconcile: catálogo: %w", domain.ErrEmptyReferenceSet)
	}

	for i, m := range c.materials {
		if m.BoardCode == "" {
			continue
		}
		if first, ok := c.byBoard[m.BoardCode]; ok {
			if len(c.ambiguous[m.BoardCode]) == 0 {
				c.ambiguous[m.BoardCode] = []string{c.materials[first].Code}
			}
			c.ambiguous[m.BoardCode] = append(c.ambiguous[m.BoardCode], m.Code)
			continue
		}
		c.byBoard[m.BoardCode] = i
	}
	return c, nil
}

func normalizeID(s string) string { return strings.TrimSpace(s) }

// Len cantidad de materiales confiables.
func (c *Catalog) Len() int { return len(c.materials) }

// Materials devuelve el catálogo en su orden original.
func (c *Catalog) Materials() []entity.Material {
	out := make([]entity.Material, len(c.materials))
	copy(out, c.materials)
	return out
}

// Ambiguous códigos de placa asociados a más de un material.
func (c *Catalog) Ambiguous() map[string][]string { return c.ambiguous }

// Resolve devuelve el código de material canónico para id.
func (c *Catalog) Resolve(id string) (string, MatchKind) {
	id = normalizeID(id)
	if id == "" {
		return "", MatchNone
	}
	if i, ok := c.byCode[id]; ok {
		return c.materials[i].Code, MatchMaterialCode
	}
	if i, ok := c.byBoard[id]; ok {
		return c.materials[i].Code, MatchBoardCode
	}
	return "", MatchNone
}

// Describe devuelve la descripción del material, o "" si no existe.
func (c *Catalog) Describe(code string) string {
	if i, ok := c.byCode[normalizeID(code)]; ok {
		return c.materials[i].Description
	}
	return ""
}
