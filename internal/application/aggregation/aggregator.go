// Package aggregation agrupa entradas y reparaciones por (identificador, mes) y las une
// con outer join rellenando con cero el lado ausente.
package aggregation

import (
	"sort"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repairrate"
	"github.com/shopspring/decimal"
)

// Window limita los meses considerados. Un extremo cero no limita.
type Window struct {
	Start entity.Bucket
	End   entity.Bucket
}

// Contains indica si b cae dentro de la ventana (extremos incluidos).
func (w Window) Contains(b entity.Bucket) bool {
	if !w.Start.IsZero() && b.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && w.End.Before(b) {
		return false
	}
	return true
}

// Stats conteos de la agregación.
type Stats struct {
	StockOutOfWindow  int
	RepairOutOfWindow int
	Groups            int
}

type key struct {
	id     string
	bucket entity.Bucket
}

// Aggregate suma cantidad de entradas y de reparaciones por (identificador, mes).
// Toda clave presente en cualquiera de los dos lados aparece en el resultado; el lado ausente vale 0.
// La ventana se aplica a ambos flujos, así las filas de resumen salen de los mismos datos que el cuerpo.
// El orden de salida (identificador, luego mes cronológico) no depende del orden de entrada.
func Aggregate(stock []entity.StockEvent, repairs []entity.RepairEvent, w Window) ([]entity.MonthlyAggregate, Stats) {
	var st Stats
	groups := make(map[key]*entity.MonthlyAggregate)
	get := func(k key) *entity.MonthlyAggregate {
		g, ok := groups[k]
		if !ok {
			g = &entity.MonthlyAggregate{
				Identifier: k.id,
				Bucket:     k.bucket,
				InboundQty: decimal.Zero,
				RepairQty:  decimal.Zero,
			}
			groups[k] = g
		}
		return g
	}

	for _, e := range stock {
		b := entity.BucketOfDate(e.Date)
		if !w.Contains(b) {
			st.StockOutOfWindow++
			continue
		}
		g := get(key{e.MaterialCode, b})
		g.InboundQty = g.InboundQty.Add(e.Quantity)
	}
	for _, e := range repairs {
		b, err := e.Bucket()
		if err != nil || !w.Contains(b) {
			st.RepairOutOfWindow++
			continue
		}
		g := get(key{e.BoardCode, b})
		g.RepairQty = g.RepairQty.Add(decimal.NewFromInt(e.Count))
	}

	out := make([]entity.MonthlyAggregate, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Identifier != out[j].Identifier {
			return out[i].Identifier < out[j].Identifier
		}
		return out[i].Bucket.Before(out[j].Bucket)
	})
	st.Groups = len(out)
	return out, st
}

// LabelTally unidades reparadas por (etiqueta, mes).
type LabelTally struct {
	Label  entity.Label
	Bucket entity.Bucket
	Qty    decimal.Decimal
}

// ClassifyRepairs clasifica cada reparación dentro de la ventana y suma sus unidades por etiqueta y mes.
// Las clasificaciones se devuelven en el orden de entrada.
func ClassifyRepairs(repairs []entity.RepairEvent, w Window) ([]entity.RepairClassification, []LabelTally) {
	type tallyKey struct {
		label  entity.Label
		bucket entity.Bucket
	}
	classes := make([]entity.RepairClassification, 0, len(repairs))
	tally := make(map[tallyKey]decimal.Decimal)
	for _, e := range repairs {
		b, err := e.Bucket()
		if err != nil || !w.Contains(b) {
			continue
		}
		c := repairrate.Classify(e.BoardCode, b, e.RepairDate)
		classes = append(classes, c)
		k := tallyKey{c.Label, b}
		tally[k] = tally[k].Add(decimal.NewFromInt(e.Count))
	}

	out := make([]LabelTally, 0, len(tally))
	for k, qty := range tally {
		out = append(out, LabelTally{Label: k.label, Bucket: k.bucket, Qty: qty})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label < out[j].Label
		}
		return out[i].Bucket.Before(out[j].Bucket)
	})
	return classes, out
}
