package csvsource

import (
	"context"
	"fmt"

	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var (
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
	_ repository.StockRepository   = (*StockRepo)(nil)
	_ repository.RepairRepository  = (*RepairRepo)(nil)
)

// Encabezados reconocidos, en inglés (tablas) o en chino (hojas de cálculo).
var (
	materialColumns = []column{
		{names: []string{"material_code", "物料代码", "物料编码"}, required: true},
		{names: []string{"material_desc", "物料描述"}},
		{names: []string{"board_code", "板代码", "转换代码"}},
	}
	stockColumns = []column{
		{names: []string{"material_code", "物料代码", "物料编码"}, required: true},
		{names: []string{"seq", "序号"}},
		{names: []string{"date", "入库时间", "入库日期"}, required: true},
		{names: []string{"quantity", "入库数量", "数量"}, required: true},
	}
	repairColumns = []column{
		{names: []string{"board_code", "板代码"}, required: true},
		{names: []string{"count", "返修数量", "数量"}, required: true},
		{names: []string{"year", "年"}, required: true},
		{names: []string{"month", "月"}, required: true},
		{names: []string{"repair_date", "返修日期", "生产日期"}},
	}
)

// CatalogRepo catálogo desde CSV.
type CatalogRepo struct {
	path, encoding string
}

func NewCatalogRepository(path, encoding string) *CatalogRepo {
	return &CatalogRepo{path: path, encoding: encoding}
}

func (r *CatalogRepo) ListMaterials(ctx context.Context) ([]repository.RawMaterialRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readFile(r.path, r.encoding, materialColumns)
	if err != nil {
		return nil, fmt.Errorf("csv catálogo %s: %w", r.path, err)
	}
	out := make([]repository.RawMaterialRow, len(t.rows))
	for i := range t.rows {
		out[i] = repository.RawMaterialRow{
			Line:        t.lines[i],
			Code:        t.cell(i, "material_code"),
			Description: t.cell(i, "material_desc"),
			BoardCode:   t.cell(i, "board_code"),
		}
	}
	return out, nil
}

// StockRepo entradas desde CSV.
type StockRepo struct {
	path, encoding string
}

func NewStockRepository(path, encoding string) *StockRepo {
	return &StockRepo{path: path, encoding: encoding}
}

func (r *StockRepo) ListStockEvents(ctx context.Context) ([]repository.RawStockRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readFile(r.path, r.encoding, stockColumns)
	if err != nil {
		return nil, fmt.Errorf("csv entradas %s: %w", r.path, err)
	}
	out := make([]repository.RawStockRow, len(t.rows))
	for i := range t.rows {
		out[i] = repository.RawStockRow{
			Line:         t.lines[i],
			MaterialCode: t.cell(i, "material_code"),
			Sequence:     t.cell(i, "seq"),
			Date:         t.cell(i, "date"),
			Quantity:     t.cell(i, "quantity"),
		}
	}
	return out, nil
}

// RepairRepo reparaciones desde CSV.
type RepairRepo struct {
	path, encoding string
}

func NewRepairRepository(path, encoding string) *RepairRepo {
	return &RepairRepo{path: path, encoding: encoding}
}

func (r *RepairRepo) ListRepairEvents(ctx context.Context) ([]repository.RawRepairRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := readFile(r.path, r.encoding, repairColumns)
	if err != nil {
		return nil, fmt.Errorf("csv reparaciones %s: %w", r.path, err)
	}
	out := make([]repository.RawRepairRow, len(t.rows))
	for i := range t.rows {
		out[i] = repository.RawRepairRow{
			Line:       t.lines[i],
			BoardCode:  t.cell(i, "board_code"),
			Count:      t.cell(i, "count"),
			Year:       t.cell(i, "year"),
			Month:      t.cell(i, "month"),
			RepairDate: t.cell(i, "repair_date"),
		}
	}
	return out, nil
}
