package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_SampleFile(t *testing.T) {
	var out bytes.Buffer
	code := run(filepath.Join("..", "..", "internal", "adapter", "csvfile", "testdata", "sample.csv"), 2023, &out)

	assert.Equal(t, 0, code, out.String())
	report := out.String()
	assert.Contains(t, report, "Rows:          6")
	assert.Contains(t, report, "30/02 does not exist in 2023")
	assert.Contains(t, report, "placeholder station")
	assert.Contains(t, report, "PM2.5 missing on 1 of 6 rows")
	assert.Contains(t, report, "Validation passed.")
}

func TestRun_LeapYearAcceptsFebruary29(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leap.csv")
	data := "month,day,hour,PM2.5,PM10,CO,O3,TEMP,PRES,DEWP,station\n" +
		"Février,29,0,1,2,3,4,20,1000,10,A\n"
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	var out bytes.Buffer
	assert.Equal(t, 0, run(path, 2024, &out))
	assert.NotContains(t, out.String(), "does not exist")

	out.Reset()
	assert.Equal(t, 0, run(path, 2023, &out))
	assert.Contains(t, out.String(), "29/02 does not exist in 2023")
}

func TestRun_LoadFault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	data := "month,day,hour,PM2.5,PM10,CO,O3,TEMP,PRES,DEWP,station\n" +
		"Brumaire,1,0,1,2,3,4,20,1000,10,A\n"
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	var out bytes.Buffer
	assert.Equal(t, 1, run(path, 2023, &out))
	assert.Contains(t, out.String(), "FATAL")
	assert.Contains(t, out.String(), "invalid month")
}

func TestRun_MissingFile(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 1, run(filepath.Join(t.TempDir(), "nope.csv"), 2023, &out))
}

func TestRun_HeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	data := "month,day,hour,PM2.5,PM10,CO,O3,TEMP,PRES,DEWP,station\n"
	assert.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	var out bytes.Buffer
	assert.Equal(t, 1, run(path, 2023, &out))
	assert.Contains(t, out.String(), "Rows:          0")
	assert.Contains(t, out.String(), "file has no data rows")
	assert.NotContains(t, out.String(), "FATAL")
}
