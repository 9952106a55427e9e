package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEvent representa una entrada de producción a almacén.
// La clave compuesta (MaterialCode, Sequence, Date) es única: un duplicado es un conflicto.
type StockEvent struct {
	MaterialCode string
	Sequence     string
	Date         time.Time
	Quantity     decimal.Decimal // >= 0
}

// StockKey clave compuesta de StockEvent.
type StockKey struct {
	MaterialCode string
	Sequence     string
	Date         string // 2006-01-02
}

// Key devuelve la clave compuesta del evento.
func (e StockEvent) Key() StockKey {
	return StockKey{
		MaterialCode: e.MaterialCode,
		Sequence:     e.Sequence,
		Date:         e.Date.Format("2006-01-02"),
	}
}
