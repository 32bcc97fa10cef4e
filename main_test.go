package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("IFPROFILE_LOG_FILE", "")
	t.Setenv("IFPROFILE_OUTPUT_DIR", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestBatchConversion(t *testing.T) {
	dir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Profile", "Selector", "Ports", "Policy"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"leaf101", "eth1-1", "80/80,80/443,80/22", "pg"}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, "rack.xlsx")))
	require.NoError(t, f.Close())

	out, err := execute(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Rows written: 1")

	data, err := os.ReadFile(filepath.Join(dir, "rack.xlsx.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "leaf101,eth1-1,22,443,pg")
}

func TestBatchConversion_MissingFolder(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot find the path")
}
