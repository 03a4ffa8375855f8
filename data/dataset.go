// Package data holds the bundled IPO dataset and resolves which dataset source
// the dashboard starts from.
package data

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fenilmodi00/ipo-dashboard/config"
	"github.com/fenilmodi00/ipo-dashboard/database"
	"github.com/fenilmodi00/ipo-dashboard/models"
	"github.com/fenilmodi00/ipo-dashboard/services"
	"github.com/fenilmodi00/ipo-dashboard/shared"
	"github.com/sirupsen/logrus"
)

//go:embed ipos.json
var bundled []byte

// Source names reported in dataset snapshots.
const (
	SourceBundled  = "bundled"
	SourceJSON     = "json"
	SourceHTML     = "html"
	SourceDatabase = "database"
)

// Bundled decodes the dataset shipped with the binary.
func Bundled() ([]models.IPORecord, error) {
	return Decode(bytes.NewReader(bundled))
}

// Decode reads a JSON array of records. Missing tag lists become empty lists.
func Decode(r io.Reader) ([]models.IPORecord, error) {
	var records []models.IPORecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryValidation, "INVALID_DATASET_JSON",
			"failed to decode dataset JSON", "Dataset", "Decode", false, err)
	}

	for i := range records {
		if records[i].Tags == nil {
			records[i].Tags = []string{}
		}
		if records[i].Status == "" {
			records[i].Status = models.StatusPublic
		}
	}
	return records, nil
}

// LoadFile reads a JSON dataset from disk.
func LoadFile(path string) ([]models.IPORecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, shared.NewServiceError(shared.ErrorCategoryConfiguration, "DATASET_FILE_UNREADABLE",
			fmt.Sprintf("failed to open dataset file %q", path), "Dataset", "LoadFile", false, err)
	}
	defer f.Close()

	return Decode(f)
}

// Load resolves the startup dataset. Sources are tried in order: DATASET_PATH,
// DATASET_HTML_PATH, DATABASE_URL, then the bundled dataset. The first
// configured source wins; a configured source that fails is an error rather than
// a silent fallback.
func Load(ctx context.Context, cfg *config.Config, importer *services.HTMLImporter) ([]models.IPORecord, string, error) {
	switch {
	case cfg.DatasetPath != "":
		records, err := LoadFile(cfg.DatasetPath)
		return records, SourceJSON, err

	case cfg.DatasetHTMLPath != "":
		records, err := importer.ImportFile(cfg.DatasetHTMLPath)
		if err != nil {
			return nil, SourceHTML, shared.WrapError(err, shared.ErrorCategoryProcessing, "HTML_IMPORT_FAILED", "Dataset", "Load", false)
		}
		return records, SourceHTML, nil

	case cfg.DatabaseURL != "":
		if err := database.Connect(cfg.DatabaseURL); err != nil {
			return nil, SourceDatabase, shared.NewServiceError(shared.ErrorCategoryDatabase, "DATABASE_UNAVAILABLE",
				"failed to connect to dataset database", "Dataset", "Load", true, err)
		}
		if err := database.Migrate(database.DB, "database/schema.sql"); err != nil {
			logrus.WithError(err).Warn("Migration warning")
		}
		records, err := database.LoadRecords(ctx, database.DB)
		if err != nil {
			return nil, SourceDatabase, shared.WrapError(err, shared.ErrorCategoryDatabase, "LOAD_RECORDS_FAILED", "Dataset", "Load", true)
		}
		return records, SourceDatabase, nil
	}

	logrus.WithField("component", "Dataset").Info("No dataset source configured, using bundled dataset")
	records, err := Bundled()
	return records, SourceBundled, err
}
