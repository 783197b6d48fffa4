package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"milkledger/internal/core/apperror"
	"milkledger/internal/core/id"
	"milkledger/internal/domain/farm"
)

const farmTable = "farm_records"

var farmColumns = ExtractDBColumns[farmRow]()

// farmRow maps the table onto the model. The tri-state opening-stock
// override is stored as two columns: a nullable value and a touched flag.
type farmRow struct {
	ID              id.ID     `db:"id"`
	Date            string    `db:"date"`
	MorningQty      float64   `db:"morning_qty"`
	EveningQty      float64   `db:"evening_qty"`
	TotalQty        float64   `db:"total_qty"`
	OpeningStock    *float64  `db:"opening_stock"`
	OpeningStockSet bool      `db:"opening_stock_set"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (row farmRow) toModel() farm.FarmRecord {
	return farm.FarmRecord{
		ID:           row.ID,
		Date:         row.Date,
		MorningQty:   row.MorningQty,
		EveningQty:   row.EveningQty,
		TotalQty:     row.TotalQty,
		OpeningStock: farm.OverrideFromColumns(row.OpeningStock, row.OpeningStockSet),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// FarmRepo implements farm.Repository on PostgreSQL.
type FarmRepo struct {
	txm     *TxManager
	builder squirrel.StatementBuilderType
}

// NewFarmRepo creates a new farm repository.
func NewFarmRepo(txm *TxManager) *FarmRepo {
	return &FarmRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Ensure interface compliance.
var _ farm.Repository = (*FarmRepo)(nil)

// Upsert inserts or overwrites the record for its date. The stored row
// keeps its identity on conflict; r is updated to match.
func (r *FarmRepo) Upsert(ctx context.Context, rec *farm.FarmRecord) error {
	value, set := rec.OpeningStock.Columns()
	q := r.builder.Insert(farmTable).
		Columns(farmColumns...).
		Values(rec.ID, rec.Date, rec.MorningQty, rec.EveningQty, rec.TotalQty,
			value, set, rec.CreatedAt, rec.UpdatedAt).
		Suffix(`ON CONFLICT (date) DO UPDATE SET
			morning_qty = EXCLUDED.morning_qty,
			evening_qty = EXCLUDED.evening_qty,
			total_qty = EXCLUDED.total_qty,
			opening_stock = EXCLUDED.opening_stock,
			opening_stock_set = EXCLUDED.opening_stock_set,
			updated_at = EXCLUDED.updated_at`).
		Suffix("RETURNING id, created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...)
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("upsert farm record: %w", err)
	}
	return nil
}

// GetByDate retrieves one day's record.
func (r *FarmRepo) GetByDate(ctx context.Context, date string) (*farm.FarmRecord, error) {
	q := r.builder.Select(farmColumns...).
		From(farmTable).
		Where(squirrel.Eq{"date": date}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row farmRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("farm record", date)
		}
		return nil, fmt.Errorf("get farm record: %w", err)
	}
	rec := row.toModel()
	return &rec, nil
}

// List retrieves the full production log ordered by date.
func (r *FarmRepo) List(ctx context.Context) ([]farm.FarmRecord, error) {
	return r.list(ctx, r.builder.Select(farmColumns...).From(farmTable).OrderBy("date"))
}

// ListRange retrieves records with from <= date < to, ordered by date.
func (r *FarmRepo) ListRange(ctx context.Context, from, to string) ([]farm.FarmRecord, error) {
	q := r.builder.Select(farmColumns...).
		From(farmTable).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.Lt{"date": to}).
		OrderBy("date")
	return r.list(ctx, q)
}

func (r *FarmRepo) list(ctx context.Context, q squirrel.SelectBuilder) ([]farm.FarmRecord, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []farmRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("select farm records: %w", err)
	}

	out := make([]farm.FarmRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

// Delete removes one day's record.
func (r *FarmRepo) Delete(ctx context.Context, recordID id.ID) error {
	q := r.builder.Delete(farmTable).Where(squirrel.Eq{"id": recordID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete farm record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("farm record", recordID)
	}
	return nil
}
