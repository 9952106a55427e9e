package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/repair-rate/internal/domain/repository"
)

var (
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
	_ repository.StockRepository   = (*StockRepo)(nil)
	_ repository.RepairRepository  = (*RepairRepo)(nil)
)

// SQLite tiene tipado dinámico: las columnas se escanean a any y el normalizador decide.

type materialRow struct {
	Code  any `db:"material_code"`
	Desc  any `db:"material_desc"`
	Board any `db:"board_code"`
}

type stockRow struct {
	Code     any `db:"material_code"`
	Seq      any `db:"seq"`
	Date     any `db:"date"`
	Quantity any `db:"quantity"`
}

type repairRow struct {
	Board      any `db:"board_code"`
	Count      any `db:"count"`
	Year       any `db:"year"`
	Month      any `db:"month"`
	RepairDate any `db:"repair_date"`
}

// CatalogRepo catálogo de materiales.
type CatalogRepo struct {
	db    *sqlx.DB
	table string
}

func NewCatalogRepository(db *sqlx.DB, t Tables) *CatalogRepo {
	return &CatalogRepo{db: db, table: t.Material}
}

func (r *CatalogRepo) ListMaterials(ctx context.Context) ([]repository.RawMaterialRow, error) {
	var rows []materialRow
	q := fmt.Sprintf(`SELECT material_code, material_desc, board_code FROM %s ORDER BY rowid`, quote(r.table))
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("ListMaterials failed: %w", err)
	}
	out := make([]repository.RawMaterialRow, len(rows))
	for i, m := range rows {
		out[i] = repository.RawMaterialRow{Line: i + 1, Code: m.Code, Description: m.Desc, BoardCode: m.Board}
	}
	return out, nil
}

// StockRepo entradas de producción.
type StockRepo struct {
	db    *sqlx.DB
	table string
}

func NewStockRepository(db *sqlx.DB, t Tables) *StockRepo {
	return &StockRepo{db: db, table: t.Stock}
}

func (r *StockRepo) ListStockEvents(ctx context.Context) ([]repository.RawStockRow, error) {
	var rows []stockRow
	q := fmt.Sprintf(`SELECT material_code, seq, date, quantity FROM %s ORDER BY rowid`, quote(r.table))
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("ListStockEvents failed: %w", err)
	}
	out := make([]repository.RawStockRow, len(rows))
	for i, s := range rows {
		out[i] = repository.RawStockRow{Line: i + 1, MaterialCode: s.Code, Sequence: s.Seq, Date: s.Date, Quantity: s.Quantity}
	}
	return out, nil
}

// RepairRepo registros de reparación.
type RepairRepo struct {
	db         *sqlx.DB
	table      string
	dateColumn string
}

func NewRepairRepository(db *sqlx.DB, t Tables) *RepairRepo {
	return &RepairRepo{db: db, table: t.Repair, dateColumn: t.RepairDateColumn}
}

func (r *RepairRepo) ListRepairEvents(ctx context.Context) ([]repository.RawRepairRow, error) {
	dateExpr := "NULL"
	if r.dateColumn != "" {
		dateExpr = quote(r.dateColumn)
	}
	var rows []repairRow
	q := fmt.Sprintf(`SELECT board_code, count, year, month, %s AS repair_date FROM %s ORDER BY rowid`,
		dateExpr, quote(r.table))
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("ListRepairEvents failed: %w", err)
	}
	out := make([]repository.RawRepairRow, len(rows))
	for i, x := range rows {
		out[i] = repository.RawRepairRow{
			Line: i + 1, BoardCode: x.Board, Count: x.Count, Year: x.Year, Month: x.Month, RepairDate: x.RepairDate,
		}
	}
	return out, nil
}
