package repairrate

import (
	"time"

	"github.com/jhoicas/repair-rate/internal/domain/entity"
)

// Umbrales en días, evaluados en este orden.
const (
	ThresholdLTR = 540
	ThresholdYRR = 180
	ThresholdERI = 0
)

// DiffDays devuelve reference - repair en días calendario.
// Positivo significa que la reparación es anterior al mes de referencia.
func DiffDays(reference, repair time.Time) int {
	ref := time.Date(reference.Year(), reference.Month(), reference.Day(), 0, 0, 0, 0, time.UTC)
	rep := time.Date(repair.Year(), repair.Month(), repair.Day(), 0, 0, 0, 0, time.UTC)
	return int((ref.Unix() - rep.Unix()) / 86400)
}

// LabelFor mapea la diferencia en días a su etiqueta.
// diff == 0 y diff negativo caen en NA a propósito.
func LabelFor(diffDays int) entity.Label {
	switch {
	case diffDays > ThresholdLTR:
		return entity.LabelLTR
	case diffDays > ThresholdYRR:
		return entity.LabelYRR
	case diffDays > ThresholdERI:
		return entity.LabelERI
	default:
		return entity.LabelNA
	}
}

// Classify clasifica una reparación respecto del primer día de su mes nominal.
func Classify(materialCode string, ref entity.Bucket, repairDate *time.Time) entity.RepairClassification {
	c := entity.RepairClassification{
		MaterialCode: materialCode,
		Reference:    ref.FirstDay(),
		RepairDate:   repairDate,
		Label:        entity.LabelNA,
	}
	if repairDate == nil {
		return c
	}
	d := DiffDays(c.Reference, *repairDate)
	c.DiffDays = &d
	c.Label = LabelFor(d)
	return c
}
