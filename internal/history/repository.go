package history

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

// Repository is an append-only audit log of sync runs. The pipeline never
// reads it back; the job works the same with history disabled.
type Repository struct {
	db  *sql.DB
	log *logger.BaseLogger
}

func NewRepository(db *sql.DB, writer io.Writer) *Repository {
	return &Repository{
		db:  db,
		log: logger.NewLogger(writer, "[history]"),
	}
}

// Migrate creates the audit table if it does not exist yet.
func (r *Repository) Migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS sync_runs (
			id UUID PRIMARY KEY,
			marketplace TEXT NOT NULL,
			stock_records INT NOT NULL,
			non_zero_stocks INT NOT NULL,
			stock_batches INT NOT NULL,
			price_records INT NOT NULL,
			price_batches INT NOT NULL,
			duration_ms BIGINT NOT NULL,
			error TEXT,
			started_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("creating sync_runs table: %w", err)
	}
	return nil
}

// RecordRun stores the outcome of one target's cycle. report may be nil when
// the cycle failed before producing one.
func (r *Repository) RecordRun(marketplace string, report *pipeline.Report, runErr error) error {
	runID := uuid.New()

	var errText sql.NullString
	if runErr != nil {
		errText = sql.NullString{String: runErr.Error(), Valid: true}
	}

	var stockRecords, nonZero, stockBatches, priceRecords, priceBatches int
	var durationMs int64
	if report != nil {
		stockRecords = report.StockRecords
		nonZero = report.NonZeroStocks
		stockBatches = report.StockBatches
		priceRecords = report.PriceRecords
		priceBatches = report.PriceBatches
		durationMs = report.Duration.Milliseconds()
	}

	query := `
		INSERT INTO sync_runs
			(id, marketplace, stock_records, non_zero_stocks, stock_batches,
			 price_records, price_batches, duration_ms, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(query, runID, marketplace,
		stockRecords, nonZero, stockBatches, priceRecords, priceBatches,
		durationMs, errText)
	if err != nil {
		return fmt.Errorf("inserting sync run %s: %w", runID, err)
	}

	r.log.Log("recorded run %s for %s", runID, marketplace)
	return nil
}
