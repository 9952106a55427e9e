package entity

// Material representa una entrada del catálogo de materiales (universo de identificadores confiables).
// Se crea al ingerir el catálogo y no se modifica después.
type Material struct {
	Code        string // código de material, clave única
	Description string
	BoardCode   string // código de placa (referencia cruzada opcional)
}
