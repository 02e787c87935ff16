package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wfm-api/pkg/models"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// HistoricalSeriesSource 履歴コール量系列の供給元
type HistoricalSeriesSource interface {
	LoadHistoricalSeries() ([]models.Observation, error)
}

// SeriesSourceFunc 関数をHistoricalSeriesSourceとして扱うためのアダプタ
type SeriesSourceFunc func() ([]models.Observation, error)

// LoadHistoricalSeries implements HistoricalSeriesSource.
func (f SeriesSourceFunc) LoadHistoricalSeries() ([]models.Observation, error) {
	return f()
}

var seriesDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"20060102",
}

// FileSeriesSource CSVまたはExcelファイルから履歴系列を読み込む。
// ヘッダーは date（元データの week も可）と call_volume を想定する。
type FileSeriesSource struct {
	path   string
	logger *logrus.Entry
}

// NewFileSeriesSource 新しいファイル系列ソースを作成
func NewFileSeriesSource(path string) *FileSeriesSource {
	return &FileSeriesSource{
		path:   path,
		logger: logrus.WithField("component", "historical_source"),
	}
}

// Path 読み込み対象のファイルパスを返す
func (s *FileSeriesSource) Path() string {
	return s.path
}

// LoadHistoricalSeries ファイルを1回読み込み、昇順の観測系列を返す。
// ファイルが存在しない・形式が不正な場合は ErrDataSourceUnavailable をラップして返す。
func (s *FileSeriesSource) LoadHistoricalSeries() ([]models.Observation, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".xlsx":
		rows, err = readExcelRows(s.path)
	default:
		rows, err = readCSVRows(s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataSourceUnavailable, s.path, err)
	}

	series, err := ParseSeriesRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataSourceUnavailable, s.path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":         s.path,
		"observations": len(series),
	}).Debug("historical series loaded")
	return series, nil
}

func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readCSV(f)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readExcelRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(f.GetSheetName(0))
}

// ParseSeriesCSV CSVの内容を観測系列に変換する
func ParseSeriesCSV(r io.Reader) ([]models.Observation, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return ParseSeriesRows(rows)
}

// ParseSeriesRows ヘッダー付きの表データを観測系列に変換する。
// 日付は厳密に昇順で重複がないこと、コール量は非負整数であることを要求する。
func ParseSeriesRows(rows [][]string) ([]models.Observation, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("header and at least one data row are required")
	}

	header := rows[0]
	dateIdx := findColumn(header, "date", "week", "timestamp", "日付")
	if dateIdx == -1 {
		return nil, fmt.Errorf("date column not found in header %v", header)
	}
	volumeIdx := findColumn(header, "call_volume", "calls", "volume", "コール数")
	if volumeIdx == -1 {
		return nil, fmt.Errorf("call_volume column not found in header %v", header)
	}

	series := make([]models.Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}
		if len(row) <= dateIdx || len(row) <= volumeIdx {
			return nil, fmt.Errorf("line %d: missing fields", line)
		}

		ts, ok := parseSeriesDate(strings.TrimSpace(row[dateIdx]))
		if !ok {
			return nil, fmt.Errorf("line %d: invalid date %q", line, row[dateIdx])
		}
		volume, err := strconv.Atoi(strings.TrimSpace(row[volumeIdx]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid call_volume %q", line, row[volumeIdx])
		}
		if volume < 0 {
			return nil, fmt.Errorf("line %d: negative call_volume %d", line, volume)
		}

		if n := len(series); n > 0 && !ts.After(series[n-1].Timestamp) {
			return nil, fmt.Errorf("line %d: date %s is not after %s",
				line, ts.Format("2006-01-02"), series[n-1].Timestamp.Format("2006-01-02"))
		}
		series = append(series, models.Observation{Timestamp: ts, CallVolume: volume})
	}

	if len(series) == 0 {
		return nil, fmt.Errorf("no data rows")
	}
	return series, nil
}

// findColumn 候補名のいずれかに一致する列のインデックスを返す（大文字小文字は無視）
func findColumn(header []string, candidates ...string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
			if strings.EqualFold(name, candidate) {
				return i
			}
		}
	}
	return -1
}

func parseSeriesDate(s string) (time.Time, bool) {
	for _, layout := range seriesDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
