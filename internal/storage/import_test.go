package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spending.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestImportFileCSV(t *testing.T) {
	path := writeTempCSV(t, `日期,項目,類別,金額
2025-07-01,超市採買,伙食費,"2,350"
2025-07-15,捷運儲值,交通費,500
2025-08-02,電影票,休閒/娛樂,NT$320
`)

	store := NewMemoryStore()
	result, err := ImportFile(context.Background(), store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Parsed)
	assert.Equal(t, 3, result.Inserted)
	assert.Zero(t, result.Skipped)

	months, err := store.AvailableMonths(context.Background())
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, model.MonthKey{Name: "七月", Year: 2025}, months[0])
}

func TestImportFileNormalizesCategories(t *testing.T) {
	path := writeTempCSV(t, `date,description,category,amount
2025-07-01,groceries,food,1200
2025-07-02,bus pass,交通,600
`)

	store := NewMemoryStore()
	_, err := ImportFile(context.Background(), store, path, nil)
	require.NoError(t, err)

	categories, err := store.AvailableCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"交通費", "伙食費"}, categories)
}

func TestImportFileXLSXAllSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spending.xlsx")
	f := excelize.NewFile()
	header := []interface{}{"日期", "項目", "類別", "金額"}

	require.NoError(t, f.SetSheetName("Sheet1", "七月"))
	require.NoError(t, f.SetSheetRow("七月", "A1", &header))
	require.NoError(t, f.SetSheetRow("七月", "A2", &[]interface{}{"2025-07-01", "超市採買", "伙食費", 2350}))

	_, err := f.NewSheet("八月")
	require.NoError(t, err)
	// One sheet per month, header repeated.
	require.NoError(t, f.SetSheetRow("八月", "A1", &header))
	require.NoError(t, f.SetSheetRow("八月", "A2", &[]interface{}{"2025-08-02", "電影票", "休閒/娛樂", 320}))
	require.NoError(t, f.SetSheetRow("八月", "A3", &[]interface{}{"2025-08-05", "捷運儲值", "交通費", 500}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store := NewMemoryStore()
	result, err := ImportFile(context.Background(), store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Parsed)
	assert.Equal(t, 3, result.Inserted)
	assert.Zero(t, result.Skipped)

	months, err := store.AvailableMonths(context.Background())
	require.NoError(t, err)
	assert.Len(t, months, 2)
}

func TestImportFileSkipsBadRows(t *testing.T) {
	path := writeTempCSV(t, `日期,項目,類別,金額
2025-07-01,超市採買,伙食費,2350
not-a-date,壞資料,伙食費,100
2025-07-03,午餐,伙食費,abc
`)

	store := NewMemoryStore()
	result, err := ImportFile(context.Background(), store, path, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Parsed)
	assert.Equal(t, 2, result.Skipped)
}

func TestImportFileMissingColumns(t *testing.T) {
	path := writeTempCSV(t, `foo,bar
1,2
`)

	_, err := ImportFile(context.Background(), NewMemoryStore(), path, nil)
	assert.Error(t, err)
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spending.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	_, err := ImportFile(context.Background(), NewMemoryStore(), path, nil)
	assert.Error(t, err)
}
