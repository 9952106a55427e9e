package repository

import "context"

// RawStockRow fila cruda de entradas a almacén.
type RawStockRow struct {
	Line         int
	MaterialCode any
	Sequence     any
	Date         any
	Quantity     any
}

// StockRepository puerto de lectura de las entradas de producción a almacén.
type StockRepository interface {
	ListStockEvents(ctx context.Context) ([]RawStockRow, error)
}
