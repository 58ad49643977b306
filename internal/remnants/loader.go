package remnants

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/Evgeny1337/seller-apis/internal/pipeline"
	"github.com/Evgeny1337/seller-apis/pkg/apierror"
	"github.com/Evgeny1337/seller-apis/pkg/logger"
)

const (
	DefaultURL = "https://timeworld.ru/upload/files/ostatki.zip"

	// Строка с подписями колонок в выгрузке поставщика (1-based).
	defaultHeaderRow = 18

	columnCode     = "Код"
	columnQuantity = "Количество"
	columnPrice    = "Цена"
)

// Loader downloads the vendor remnants archive and turns the spreadsheet
// inside into remnant rows. The archive entry is matched by extension; both
// the Excel sheet and its Windows-1251 CSV export are accepted.
type Loader struct {
	url       string
	headerRow int
	http      *http.Client
	log       *logger.BaseLogger
}

type Option func(*Loader)

func WithURL(url string) Option {
	return func(l *Loader) { l.url = url }
}

func WithHeaderRow(row int) Option {
	return func(l *Loader) {
		if row > 0 {
			l.headerRow = row
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) { l.http = client }
}

func NewLoader(writer io.Writer, opts ...Option) *Loader {
	l := &Loader{
		url:       DefaultURL,
		headerRow: defaultHeaderRow,
		http:      &http.Client{Timeout: 100 * time.Second},
		log:       logger.NewLogger(writer, "[remnants]"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load downloads the archive and returns the parsed snapshot.
func (l *Loader) Load(ctx context.Context) ([]pipeline.Remnant, error) {
	body, err := l.download(ctx)
	if err != nil {
		return nil, err
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, fmt.Errorf("opening remnants archive: %w", err)
	}

	for _, entry := range archive.File {
		ext := strings.ToLower(path.Ext(entry.Name))
		switch ext {
		case ".xls", ".xlsx", ".csv":
		default:
			continue
		}

		file, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", entry.Name, err)
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name, err)
		}

		var rows [][]string
		if ext == ".csv" {
			rows, err = readCSV(bytes.NewReader(content))
		} else {
			rows, err = readSheet(bytes.NewReader(content))
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name, err)
		}

		snapshot, err := l.parseRows(rows)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name, err)
		}
		l.log.Log("loaded %d remnants from %s", len(snapshot), entry.Name)
		return snapshot, nil
	}
	return nil, fmt.Errorf("remnants archive has no spreadsheet entry")
}

func (l *Loader) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, apierror.New("vendor", l.url, resp.StatusCode, respBody)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	l.log.Log("downloaded remnants archive, %d bytes", len(body))
	return body, nil
}

// readSheet reads the first worksheet into rows of strings.
func readSheet(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return book.GetRows(sheets[0])
}

// readCSV reads a Windows-1251 ';'-separated export.
func readCSV(r io.Reader) ([][]string, error) {
	decoder := transform.NewReader(r, charmap.Windows1251.NewDecoder())
	csvReader := csv.NewReader(decoder)
	csvReader.Comma = ';'
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

func (l *Loader) parseRows(rows [][]string) ([]pipeline.Remnant, error) {
	headerIdx := l.headerRow - 1
	if len(rows) <= headerIdx {
		return nil, fmt.Errorf("no header row at line %d, sheet has %d rows", l.headerRow, len(rows))
	}

	columns := make(map[string]int)
	for i, caption := range rows[headerIdx] {
		columns[strings.TrimSpace(caption)] = i
	}
	for _, required := range []string{columnCode, columnQuantity, columnPrice} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("column %q not found in header row %d", required, l.headerRow)
		}
	}

	var snapshot []pipeline.Remnant
	for _, row := range rows[headerIdx+1:] {
		code := strings.TrimSpace(cell(row, columns[columnCode]))
		if code == "" {
			continue
		}
		snapshot = append(snapshot, pipeline.Remnant{
			Code:     code,
			Quantity: strings.TrimSpace(cell(row, columns[columnQuantity])),
			Price:    strings.TrimSpace(cell(row, columns[columnPrice])),
		})
	}
	return snapshot, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
