package entity

import "time"

// RepairEvent representa un registro de reparación en campo.
// RepairDate es nil si la fecha no vino o no pudo interpretarse: el registro sigue
// sumando en la agregación pero se clasifica como NA.
type RepairEvent struct {
	BoardCode     string
	Count         int64 // >= 0
	Year          int
	Month         int // 1-12
	RepairDate    *time.Time
	RepairDateRaw string
}

// Bucket devuelve el mes nominal (Year, Month) del registro.
func (e RepairEvent) Bucket() (Bucket, error) {
	return BucketOf(e.Year, e.Month)
}
