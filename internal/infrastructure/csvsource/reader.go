// Package csvsource lee las exportaciones CSV de las hojas de cálculo de catálogo,
// entradas y reparaciones. Las columnas se buscan por nombre de encabezado.
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Codificaciones soportadas.
const (
	EncodingUTF8    = "utf-8"
	EncodingGB18030 = "gb18030"
)

// decoder devuelve un lector UTF-8. En UTF-8 se descarta el BOM que agrega Excel.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", EncodingUTF8, "utf8":
		return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())), nil
	case EncodingGB18030, "gbk":
		return transform.NewReader(r, simplifiedchinese.GB18030.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", encoding)
	}
}

// column nombres aceptados para una columna; el primero es el canónico.
type column struct {
	names    []string
	required bool
}

// table resultado de leer un CSV: filas con el número de línea y acceso por columna.
type table struct {
	index map[string]int // nombre canónico -> posición
	rows  [][]string
	lines []int
}

// cell devuelve nil si la columna no existe o la celda está fuera de rango.
func (t *table) cell(row int, name string) any {
	i, ok := t.index[name]
	if !ok || i >= len(t.rows[row]) {
		return nil
	}
	return t.rows[row][i]
}

// readFile abre path, decodifica y resuelve encabezados.
func readFile(path, encoding string, cols []column) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f, encoding, cols)
}

func read(r io.Reader, encoding string, cols []column) (*table, error) {
	dec, err := decoder(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("archivo vacío, sin encabezado")
	}
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}

	t := &table{index: make(map[string]int)}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, c := range cols {
		found := false
		for _, n := range c.names {
			if i, ok := pos[strings.ToLower(n)]; ok {
				t.index[c.names[0]] = i
				found = true
				break
			}
		}
		if !found && c.required {
			missing = append(missing, c.names[0])
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("faltan columnas: %s", strings.Join(missing, ", "))
	}

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer fila: %w", err)
		}
		if isEmptyRecord(rec) {
			continue
		}
		line, _ := cr.FieldPos(0)
		t.rows = append(t.rows, rec)
		t.lines = append(t.lines, line)
	}
	return t, nil
}

func isEmptyRecord(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
