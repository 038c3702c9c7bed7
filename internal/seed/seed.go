// Package seed provides the initial record set used when no persisted
// snapshot exists yet: a local sample spreadsheet if one is present in the
// data directory, otherwise a bundled default dataset. Either source runs
// through the normalizer like any other upload.
package seed

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/yooku98/sales-dashboard/internal/domain"
	"github.com/yooku98/sales-dashboard/internal/normalizer"
	"github.com/yooku98/sales-dashboard/internal/tabular"
)

//go:embed sample_sales.csv
var sampleCSV []byte

// Local sample files consulted before falling back to the bundled dataset
var sampleFilenames = []string{"sales.csv", "sales.xlsx"}

// Load produces the seed record set and the name of the source it came
// from. Sources that are missing, unparseable, or normalize to nothing are
// skipped in favor of the next one.
func Load(dataDir string) ([]domain.Record, string) {
	for _, name := range sampleFilenames {
		path := filepath.Join(dataDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if records, ok := normalize(data, name); ok {
			return records, name
		}
	}

	if records, ok := normalize(sampleCSV, "sample_sales.csv"); ok {
		return records, "bundled sample"
	}
	return nil, ""
}

func normalize(data []byte, filename string) ([]domain.Record, bool) {
	table, err := tabular.Parse(data, filename)
	if err != nil {
		return nil, false
	}
	records, outcome := normalizer.NormalizeTable(table, filename)
	if !outcome.OK() {
		return nil, false
	}
	return records, true
}
