package remnants

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/Evgeny1337/seller-apis/pkg/apierror"
)

func buildWorkbook(t *testing.T, headerRow int) []byte {
	t.Helper()
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)

	for row := 1; row < headerRow; row++ {
		require.NoError(t, book.SetCellValue(sheet, fmt.Sprintf("A%d", row), "шапка выгрузки"))
	}
	captions := []string{"Код", "Наименование товара", "Количество", "Цена"}
	for i, caption := range captions {
		cell, err := excelize.CoordinatesToCellName(i+1, headerRow)
		require.NoError(t, err)
		require.NoError(t, book.SetCellValue(sheet, cell, caption))
	}
	rows := [][]interface{}{
		{"68126", "Casio GA-100", ">10", "22'990.00 руб."},
		{"68127", "Casio MQ-24", "1", "3'490.00 руб."},
		{"68128", "Casio F-91W", "4", "2 190.00 руб."},
	}
	for r, values := range rows {
		for c, value := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, headerRow+1+r)
			require.NoError(t, err)
			require.NoError(t, book.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := book.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func buildArchive(t *testing.T, name string, content []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create(name)
	require.NoError(t, err)
	_, err = entry.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func serveArchive(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoader_Load_Workbook(t *testing.T) {
	archive := buildArchive(t, "ostatki.xlsx", buildWorkbook(t, defaultHeaderRow))
	server := serveArchive(t, archive)

	loader := NewLoader(io.Discard, WithURL(server.URL))
	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot, 3)
	assert.Equal(t, "68126", snapshot[0].Code)
	assert.Equal(t, ">10", snapshot[0].Quantity)
	assert.Equal(t, "22'990.00 руб.", snapshot[0].Price)
	assert.Equal(t, "1", snapshot[1].Quantity)
	assert.Equal(t, "4", snapshot[2].Quantity)
}

func TestLoader_Load_CSV(t *testing.T) {
	var plain strings.Builder
	for i := 1; i < 3; i++ {
		plain.WriteString("шапка выгрузки\n")
	}
	plain.WriteString("Код;Наименование товара;Количество;Цена\n")
	plain.WriteString("68126;Casio GA-100;>10;22'990.00 руб.\n")
	plain.WriteString("68127;Casio MQ-24;1;3'490.00 руб.\n")

	encoded, err := charmap.Windows1251.NewEncoder().String(plain.String())
	require.NoError(t, err)

	archive := buildArchive(t, "ostatki.csv", []byte(encoded))
	server := serveArchive(t, archive)

	loader := NewLoader(io.Discard, WithURL(server.URL), WithHeaderRow(3))
	snapshot, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot, 2)
	assert.Equal(t, "68126", snapshot[0].Code)
	assert.Equal(t, "22'990.00 руб.", snapshot[0].Price)
	assert.Equal(t, "1", snapshot[1].Quantity)
}

func TestLoader_Load_MissingColumn(t *testing.T) {
	book := excelize.NewFile()
	sheet := book.GetSheetName(0)
	require.NoError(t, book.SetCellValue(sheet, "A1", "Код"))
	require.NoError(t, book.SetCellValue(sheet, "B1", "Количество"))
	buf, err := book.WriteToBuffer()
	require.NoError(t, err)

	server := serveArchive(t, buildArchive(t, "ostatki.xlsx", buf.Bytes()))

	loader := NewLoader(io.Discard, WithURL(server.URL), WithHeaderRow(1))
	_, err = loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Цена")
}

func TestLoader_Load_NoSpreadsheetEntry(t *testing.T) {
	server := serveArchive(t, buildArchive(t, "readme.txt", []byte("nope")))

	loader := NewLoader(io.Discard, WithURL(server.URL))
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spreadsheet entry")
}

func TestLoader_Load_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	loader := NewLoader(io.Discard, WithURL(server.URL))
	_, err := loader.Load(context.Background())
	require.Error(t, err)

	var remoteErr *apierror.RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
}
