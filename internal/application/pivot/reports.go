package pivot

import (
	"github.com/jhoicas/repair-rate/internal/application/aggregation"
	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/jhoicas/repair-rate/internal/domain/repairrate"
	"github.com/shopspring/decimal"
)

// Labels textos de encabezados y filas de resumen.
type Labels struct {
	Identifier  string
	Description string
	Global      string // fila de tasa global del mes
	Total       string // total mensual de entradas y de etiquetas
	Cumulative  string // total de reparaciones
}

// DefaultLabels textos por defecto.
func DefaultLabels() Labels {
	return Labels{
		Identifier:  "material_code",
		Description: "material_desc",
		Global:      "当月全局总计",
		Total:       "月度合计",
		Cumulative:  "累计",
	}
}

// RateTable tasa de reparación por material y mes, con la tasa global del mes al final.
func RateTable(aggs []entity.MonthlyAggregate, describe func(string) string, l Labels, rules []HighlightRule) *Table {
	rows := repairrate.RowRates(aggs)
	cells := make([]Cell, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, Cell{Identifier: r.Identifier, Bucket: r.Bucket, Value: r.RatePercent})
	}
	t := Build(cells, describe)
	global := make(map[entity.Bucket]decimal.Decimal)
	for _, g := range repairrate.GlobalRates(aggs) {
		global[g.Bucket] = g.RatePercent
	}
	t.AppendSummary(l.Global, global)
	t.Name, t.Title = "repair_rate", "Tasa de reparación mensual (%)"
	t.IdentifierHeader, t.DescriptionHeader = l.Identifier, l.Description
	t.Format = FormatPercent
	t.Highlights = rules
	return t
}

// RepairCountTable reparaciones por material y mes, con el total del mes al final.
func RepairCountTable(aggs []entity.MonthlyAggregate, describe func(string) string, l Labels) *Table {
	return quantityTable(aggs, describe, l, func(a entity.MonthlyAggregate) decimal.Decimal { return a.RepairQty },
		"repair_count", "Reparaciones por mes", l.Cumulative)
}

// InboundTable entradas por material y mes, con el total del mes al final.
func InboundTable(aggs []entity.MonthlyAggregate, describe func(string) string, l Labels) *Table {
	return quantityTable(aggs, describe, l, func(a entity.MonthlyAggregate) decimal.Decimal { return a.InboundQty },
		"inbound_qty", "Entradas por mes", l.Total)
}

func quantityTable(aggs []entity.MonthlyAggregate, describe func(string) string, l Labels,
	pick func(entity.MonthlyAggregate) decimal.Decimal, name, title, summary string) *Table {
	cells := make([]Cell, 0, len(aggs))
	for _, a := range aggs {
		cells = append(cells, Cell{Identifier: a.Identifier, Bucket: a.Bucket, Value: pick(a)})
	}
	t := Build(cells, describe)
	t.AppendSummary(summary, t.ColumnTotals())
	t.Name, t.Title = name, title
	t.IdentifierHeader, t.DescriptionHeader = l.Identifier, l.Description
	t.Format = FormatQuantity
	return t
}

// LatencyTable unidades reparadas por etiqueta de latencia y mes. Siempre hay una fila por
// etiqueta (ERI, YRR, LTR, NA), aunque no tenga reparaciones.
func LatencyTable(tally []aggregation.LabelTally, l Labels) *Table {
	cells := make([]Cell, 0, len(tally))
	for _, x := range tally {
		cells = append(cells, Cell{Identifier: x.Label.String(), Bucket: x.Bucket, Value: x.Qty})
	}
	t := Build(cells, nil)

	byLabel := make(map[string]Row, len(t.Rows))
	for _, r := range t.Rows {
		byLabel[r.Identifier] = r
	}
	rows := make([]Row, 0, len(entity.Labels())+1)
	for _, lb := range entity.Labels() {
		r, ok := byLabel[lb.String()]
		if !ok {
			r = Row{Identifier: lb.String(), Values: make([]decimal.Decimal, len(t.Columns))}
		}
		rows = append(rows, r)
	}
	t.Rows = rows
	t.AppendSummary(l.Total, t.ColumnTotals())
	t.Name, t.Title = "repair_latency", "Reparaciones por latencia"
	t.IdentifierHeader, t.DescriptionHeader = "label", ""
	t.Format = FormatQuantity
	return t
}
