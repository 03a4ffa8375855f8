package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var DB *sql.DB

// Connect establishes database connection with default pool configuration
func Connect(dbURL string) error {
	config := shared.NewDefaultUnifiedConfiguration().Database
	return ConnectWithConfig(dbURL, &config)
}

// ConnectWithConfig establishes database connection with custom configuration
func ConnectWithConfig(dbURL string, config *shared.DatabaseConfig) error {
	var err error
	DB, err = sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	DB.SetMaxOpenConns(config.MaxOpenConns)
	DB.SetMaxIdleConns(config.MaxIdleConns)
	DB.SetConnMaxLifetime(config.ConnMaxLifetime)
	DB.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.PingTimeout)
	defer cancel()

	if err = DB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"max_open_conns":     config.MaxOpenConns,
		"max_idle_conns":     config.MaxIdleConns,
		"conn_max_lifetime":  config.ConnMaxLifetime,
		"conn_max_idle_time": config.ConnMaxIdleTime,
	}).Info("Connected to database successfully")

	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
		logrus.Info("Database connection closed")
	}
}

func Migrate(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	for _, stmt := range parseSQLStatements(string(content)) {
		if _, err := db.Exec(stmt); err != nil {
			// Statements are idempotent (IF NOT EXISTS); keep going on conflicts
			logrus.Warnf("Migration statement failed (continuing): %v", err)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}

// parseSQLStatements splits a schema file into statements, skipping comment lines
func parseSQLStatements(content string) []string {
	var statements []string
	var currentStatement strings.Builder

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		if currentStatement.Len() > 0 {
			currentStatement.WriteString(" ")
		}
		currentStatement.WriteString(line)

		if strings.HasSuffix(line, ";") {
			stmt := strings.TrimSpace(strings.TrimSuffix(currentStatement.String(), ";"))
			if stmt != "" {
				statements = append(statements, stmt)
			}
			currentStatement.Reset()
		}
	}

	if stmt := strings.TrimSpace(currentStatement.String()); stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

const loadRecordsQuery = `
	SELECT company, ticker, ipo_year,
	       ipo_price, current_price, first_day_price, acquisition_price,
	       first_day_pop,
	       year1_return, year3_annualized_return, year1_outperformance, year3_outperformance,
	       status, tags
	FROM ipo_records
	ORDER BY display_order, ticker`

// LoadRecords reads the full dataset snapshot in display order
func LoadRecords(ctx context.Context, db *sql.DB) ([]models.IPORecord, error) {
	rows, err := db.QueryContext(ctx, loadRecordsQuery)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryDatabase, "LOAD_RECORDS_FAILED",
			"failed to query ipo_records", "Database", "LoadRecords", true, err)
	}
	defer rows.Close()

	var records []models.IPORecord
	for rows.Next() {
		var r models.IPORecord
		var ipoPrice, currentPrice, firstDayPrice, acquisitionPrice sql.NullFloat64
		var year1Return, year3Return, year1Outperform, year3Outperform sql.NullFloat64
		var tags []string

		if err := rows.Scan(
			&r.Company, &r.Ticker, &r.Year,
			&ipoPrice, &currentPrice, &firstDayPrice, &acquisitionPrice,
			&r.FirstDayPop,
			&year1Return, &year3Return, &year1Outperform, &year3Outperform,
			&r.Status, pq.Array(&tags),
		); err != nil {
			return nil, shared.NewServiceError(shared.ErrorCategoryDatabase, "SCAN_RECORD_FAILED",
				"failed to scan ipo_records row", "Database", "LoadRecords", false, err)
		}

		r.IPOPrice = nullable(ipoPrice)
		r.CurrentPrice = nullable(currentPrice)
		r.FirstDayPrice = nullable(firstDayPrice)
		r.AcquisitionPrice = nullable(acquisitionPrice)
		r.Year1Return = nullable(year1Return)
		r.Year3AnnualizedReturn = nullable(year3Return)
		r.Year1Outperformance = nullable(year1Outperform)
		r.Year3Outperformance = nullable(year3Outperform)
		if tags == nil {
			tags = []string{}
		}
		r.Tags = tags

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryDatabase, "ITERATE_RECORDS_FAILED",
			"failed to read ipo_records", "Database", "LoadRecords", true, err)
	}

	logrus.WithFields(logrus.Fields{
		"component": "Database",
		"records":   len(records),
	}).Info("Loaded dataset from database")

	return records, nil
}

func nullable(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
