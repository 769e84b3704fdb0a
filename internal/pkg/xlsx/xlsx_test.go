package xlsx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSheetRoundTrip(t *testing.T) {
	f, err := BuildSheet("Pay Grades", [][]interface{}{
		{"grade_name", "grade_code", "BASIC"},
		{"Grade 1", "G1", 150000},
		{"Grade 2", "G2", 250000.50},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"grade_name", "grade_code", "BASIC"}, rows[0])
	assert.Equal(t, "Grade 1", rows[1][0])
	assert.Equal(t, "G1", rows[1][1])
	assert.Equal(t, "150000", rows[1][2])
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	_, err := ReadRows(strings.NewReader("employee_code,days_present\nE-1,20\n"))
	require.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "grade_name", NormalizeHeader("  Grade_Name "))
	assert.Equal(t, "basic", NormalizeHeader("BASIC"))
}

func TestCellValue(t *testing.T) {
	row := []string{" a ", "b"}
	assert.Equal(t, "a", CellValue(row, 0))
	assert.Equal(t, "b", CellValue(row, 1))
	assert.Equal(t, "", CellValue(row, 2))
	assert.Equal(t, "", CellValue(row, -1))
}
