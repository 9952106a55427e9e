package csvsource_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/jhoicas/repair-rate/internal/infrastructure/csvsource"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestCatalog_BOMYEncabezadosEnChino(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("物料代码,物料描述,板代码\nM1,主板,B1\n,,\nM2,电源,\n")...)
	path := writeFile(t, "catalog.csv", data)

	rows, err := csvsource.NewCatalogRepository(path, "utf-8").ListMaterials(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2, "la fila vacía se omite")
	assert.Equal(t, "M1", rows[0].Code)
	assert.Equal(t, "主板", rows[0].Description)
	assert.Equal(t, "B1", rows[0].BoardCode)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "", rows[1].BoardCode)
}

func TestStock_GB18030(t *testing.T) {
	text := "material_code,seq,date,quantity\nM1,1,2023年01月15日,100\n"
	encoded, err := simplifiedchinese.GB18030.NewEncoder().String(text)
	require.NoError(t, err)
	path := writeFile(t, "stock.csv", []byte(encoded))

	rows, err := csvsource.NewStockRepository(path, "gb18030").ListStockEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2023年01月15日", rows[0].Date)
	assert.Equal(t, "100", rows[0].Quantity)
}

func TestRepairs_ColumnaOpcionalAusente(t *testing.T) {
	path := writeFile(t, "repairs.csv", []byte("board_code,count,year,month\nB1,5,2023,1\n"))

	rows, err := csvsource.NewRepairRepository(path, "").ListRepairEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].RepairDate)
	assert.Equal(t, "5", rows[0].Count)
}

func TestRepairs_FaltaColumnaObligatoria(t *testing.T) {
	path := writeFile(t, "repairs.csv", []byte("board_code,count,year\nB1,5,2023\n"))

	_, err := csvsource.NewRepairRepository(path, "utf-8").ListRepairEvents(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "month")
}

func TestCatalog_ArchivoInexistente(t *testing.T) {
	_, err := csvsource.NewCatalogRepository(filepath.Join(t.TempDir(), "nope.csv"), "utf-8").
		ListMaterials(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog_CodificacionDesconocida(t *testing.T) {
	path := writeFile(t, "catalog.csv", []byte("material_code\nM1\n"))
	_, err := csvsource.NewCatalogRepository(path, "latin9").ListMaterials(context.Background())
	assert.Error(t, err)
}
