package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// Fuente de catálogo, entradas o reparaciones ilegible: aborta antes de calcular.
	ErrSourceUnavailable = errors.New("fuente de datos no disponible")
	// Catálogo de materiales vacío: todo filtro posterior quedaría vacío.
	ErrEmptyReferenceSet = errors.New("conjunto de referencia vacío")
	ErrMalformedRow      = errors.New("fila mal formada")
	ErrUnparseableDate   = errors.New("fecha no interpretable")
	// Sin filas tras filtrar y agregar: no-op, no es un fallo.
	ErrEmptyResultSet = errors.New("sin datos tras filtrar y agregar")
	ErrSinkWrite      = errors.New("no se pudo escribir el reporte")
	ErrDuplicate      = errors.New("registro duplicado")
	ErrInvalidConfig  = errors.New("configuración inválida")
)
