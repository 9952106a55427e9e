// Package repairrate contiene los servicios de dominio puros del cálculo de tasa de reparación:
// tasa por fila, tasa global del mes y clasificación de latencia. Sin I/O ni estado.
package repairrate

import (
	"github.com/jhoicas/repair-rate/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rate devuelve repair / inbound * 100 redondeado a 2 decimales.
// Si cualquiera de los dos es cero la tasa es 0.00: el cero real y la ausencia de datos no se distinguen.
func Rate(repair, inbound decimal.Decimal) decimal.Decimal {
	if inbound.IsZero() || repair.IsZero() {
		return decimal.Zero
	}
	return repair.Div(inbound).Mul(hundred).Round(2)
}

// RowRates calcula la tasa de cada agregado, en el mismo orden de entrada.
func RowRates(aggs []entity.MonthlyAggregate) []entity.RateRow {
	rows := make([]entity.RateRow, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, entity.RateRow{
			Identifier:  a.Identifier,
			Bucket:      a.Bucket,
			RatePercent: Rate(a.RepairQty, a.InboundQty),
		})
	}
	return rows
}

// MonthTotals suma entradas y reparaciones de todos los identificadores por mes.
type MonthTotals struct {
	InboundQty decimal.Decimal
	RepairQty  decimal.Decimal
}

// TotalsByBucket agrupa los agregados por mes sumando ambos lados.
func TotalsByBucket(aggs []entity.MonthlyAggregate) map[entity.Bucket]MonthTotals {
	totals := make(map[entity.Bucket]MonthTotals)
	for _, a := range aggs {
		t := totals[a.Bucket]
		t.InboundQty = t.InboundQty.Add(a.InboundQty)
		t.RepairQty = t.RepairQty.Add(a.RepairQty)
		totals[a.Bucket] = t
	}
	return totals
}

// GlobalRates calcula la tasa global de cada mes: primero suma, después divide.
// Nunca es el promedio de las tasas por fila (sesgaría hacia los identificadores de bajo volumen).
func GlobalRates(aggs []entity.MonthlyAggregate) []entity.RateRow {
	totals := TotalsByBucket(aggs)
	buckets := make([]entity.Bucket, 0, len(totals))
	for b := range totals {
		buckets = append(buckets, b)
	}
	entity.SortBuckets(buckets)

	rows := make([]entity.RateRow, 0, len(buckets))
	for _, b := range buckets {
		t := totals[b]
		rows = append(rows, entity.RateRow{
			Bucket:      b,
			RatePercent: Rate(t.RepairQty, t.InboundQty),
			IsGlobal:    true,
		})
	}
	return rows
}
