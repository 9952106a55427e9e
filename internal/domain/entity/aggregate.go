package entity

import "github.com/shopspring/decimal"

// MonthlyAggregate fila derivada por (identificador, mes). Se recalcula completa en cada ejecución.
// Ningún lado es negativo; la contribución ausente vale 0.
type MonthlyAggregate struct {
	Identifier string
	Bucket     Bucket
	InboundQty decimal.Decimal
	RepairQty  decimal.Decimal
}

// RateRow tasa de reparación derivada de un MonthlyAggregate (o de la suma del mes si IsGlobal).
type RateRow struct {
	Identifier  string
	Bucket      Bucket
	RatePercent decimal.Decimal
	IsGlobal    bool
}
