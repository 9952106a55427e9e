package entity

import (
	"fmt"
	"time"
)

// Label etiqueta de latencia de una reparación.
type Label int

// Orden de las etiquetas: ERI < YRR < LTR, NA al final.
const (
	LabelERI Label = iota // early-return index
	LabelYRR              // year-range return
	LabelLTR              // long-term return
	LabelNA               // no clasificable o diferencia no positiva
)

var labelNames = [...]string{"ERI", "YRR", "LTR", "NA"}

// Labels devuelve todas las etiquetas en orden.
func Labels() []Label {
	return []Label{LabelERI, LabelYRR, LabelLTR, LabelNA}
}

func (l Label) String() string {
	if l < LabelERI || l > LabelNA {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel interpreta el nombre de una etiqueta.
func ParseLabel(s string) (Label, error) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	return LabelNA, fmt.Errorf("etiqueta desconocida: %q", s)
}

// RepairClassification resultado de clasificar una reparación.
type RepairClassification struct {
	MaterialCode string
	Reference    time.Time  // primer día de (Year, Month)
	RepairDate   *time.Time // nil si no hay fecha
	DiffDays     *int       // nil si no hay fecha
	Label        Label
}
