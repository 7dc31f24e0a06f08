package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/internal/constants"
	"github.com/ludo-technologies/codeguard/internal/fsutil"
)

// ReportFileName returns the file name of a report generated at t
func ReportFileName(t time.Time) string {
	return constants.ReportFilePrefix + t.Format(constants.ReportTimestampLayout) + ".json"
}

// SaveReport writes report as JSON into dir and returns the file path. A
// report generated in the same second as an existing file gets a numeric
// suffix instead of replacing it.
func SaveReport(report *domain.Report, dir string) (string, error) {
	path, err := freeReportPath(dir, report.Timestamp)
	if err != nil {
		return "", domain.NewIOError(fmt.Sprintf("failed to inspect report directory %s", dir), err)
	}
	if err := fsutil.WriteJSONAtomic(path, report); err != nil {
		return "", domain.NewIOError(fmt.Sprintf("failed to write report %s", path), err)
	}
	return path, nil
}

// freeReportPath returns the first report path in dir that does not exist yet
func freeReportPath(dir string, t time.Time) (string, error) {
	base := ReportFileName(t)
	stem := base[:len(base)-len(filepath.Ext(base))]
	for n := 0; ; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s-%d.json", stem, n)
		}
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", err
		}
	}
}
