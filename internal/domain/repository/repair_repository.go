package repository

import "context"

// RawRepairRow fila cruda de reparaciones. RepairDate es opcional.
type RawRepairRow struct {
	Line       int
	BoardCode  any
	Count      any
	Year       any
	Month      any
	RepairDate any
}

// RepairRepository puerto de lectura de los registros de reparación en campo.
type RepairRepository interface {
	ListRepairEvents(ctx context.Context) ([]RawRepairRow, error)
}
