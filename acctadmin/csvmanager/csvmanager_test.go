package csvmanager

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.csv")
	content := "\ufeffFirstName,LastName,Username, Department\n" +
		"John,Smith,jsmith,IT\n" +
		"Jane,Doe,,HR\n" +
		"Bob,Brown,bbrown\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := CSVRowReader{}.ReadRows(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "John", rows[0].Get("FirstName"))
	assert.Equal(t, "jsmith", rows[0].Get("username"))
	assert.Equal(t, "IT", rows[0].Get("Department"))
	assert.Equal(t, 2, rows[0].Line)

	assert.Equal(t, "", rows[1].Get("Username"))
	assert.Equal(t, "", rows[2].Get("Department"))
	assert.Equal(t, "", rows[2].Get("Email"))
	assert.Equal(t, 4, rows[2].Line)
}

func TestReadSemicolon(t *testing.T) {
	rows, err := CSVRowReader{Comma: ';'}.Read(context.Background(),
		strings.NewReader("Username;Email\njsmith;js@example.com\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "js@example.com", rows[0].Get("email"))
}

func TestReadEmpty(t *testing.T) {
	_, err := CSVRowReader{}.Read(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadHeaderOnly(t *testing.T) {
	rows, err := CSVRowReader{}.Read(context.Background(), strings.NewReader("Username\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadRowsMissingFile(t *testing.T) {
	_, err := CSVRowReader{}.ReadRows(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewRowTrims(t *testing.T) {
	r := NewRow(7, map[string]string{" Username ": "  jsmith "})
	assert.Equal(t, "jsmith", r.Get("USERNAME"))
	assert.Equal(t, 7, r.Line)
}
