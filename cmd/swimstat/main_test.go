package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fastjson"

	"github.com/swimstat/swimstat/internal/config"
)

const export = "1,\"PEREZ, ANA\",2008,CN Lugo,50 Libre,30.20,PI25M,20230115,Lugo,N\n" +
	"1,\"PEREZ, ANA\",2008,CN Lugo,50 Libre,29.80,PI25M,20230304,Lugo,N\n" +
	"1,\"PEREZ, ANA\",2008,CN Ourense,50 Libre,31.00,PI50M,20240610,Ourense,N\n" +
	"1,\"PEREZ, ANA\",2008,CN Ourense,50 Libre,15.40,PI50M,20240611,Ourense,S\n"

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("NO_COLOR", "1")
	path := filepath.Join(dir, "marcas.csv")
	require.NoError(t, os.WriteFile(path, []byte(export), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, content string) {
	t.Helper()
	path := config.DefaultConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRootHelpExplainsExport(t *testing.T) {
	setup(t)
	out, err := run(t)
	require.NoError(t, err)

	assert.Contains(t, out, "Consulta de marcas")
	assert.Contains(t, out, "Exportar a táboa a CSV")
	assert.Contains(t, out, "swimstat [file]")
}

func TestSummaryCmd(t *testing.T) {
	path := setup(t)
	out, err := run(t, "summary", path)
	require.NoError(t, err)

	assert.Contains(t, out, "PEREZ, ANA - 50 Libre")
	assert.Contains(t, out, "Records: 3")
	assert.Contains(t, out, "PB 25m: 29.80 (04/03/2023)")
	assert.Contains(t, out, "PB 50m: 31.00 (10/06/2024)")
	assert.Contains(t, out, "Legend:")
}

func TestSummaryCmdJSON(t *testing.T) {
	path := setup(t)
	out, err := run(t, "summary", path, "--json", "--kind", "any")
	require.NoError(t, err)

	v, err := fastjson.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 4, v.GetInt("records"))
	assert.InDelta(t, 15.4, v.GetFloat64("courses", "50m", "best"), 1e-9)
	assert.Equal(t, "any", string(v.GetStringBytes("filters", "kind")))
}

func TestRecordsCmdFilters(t *testing.T) {
	path := setup(t)
	out, err := run(t, "records", path, "--club", "CN Lugo", "--from", "01/02/2023")
	require.NoError(t, err)

	assert.Contains(t, out, "04/03/2023")
	assert.NotContains(t, out, "15/01/2023")
	assert.NotContains(t, out, "Ourense")
}

func TestRecordsCmdNoMatch(t *testing.T) {
	path := setup(t)
	out, err := run(t, "records", path, "--club", "CN Vigo")
	require.NoError(t, err)
	assert.Equal(t, "No records found.\n", out)
}

func TestConfigDefaultsAndFlagOverride(t *testing.T) {
	path := setup(t)
	writeConfig(t, "[filters]\nkind = \"splits\"\n")

	out, err := run(t, "records", path)
	require.NoError(t, err)
	assert.Contains(t, out, "15.40")
	assert.NotContains(t, out, "29.80")

	out, err = run(t, "records", path, "--kind", "any")
	require.NoError(t, err)
	assert.Contains(t, out, "15.40")
	assert.Contains(t, out, "29.80")
}

func TestBadKind(t *testing.T) {
	path := setup(t)
	_, err := run(t, "records", path, "--kind", "relay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --kind")
}

func TestBadDateIsAWarning(t *testing.T) {
	path := setup(t)
	out, err := run(t, "records", path, "--to", "2024/99/99", "--kind", "any")
	require.NoError(t, err)
	assert.Contains(t, out, "10/06/2024")
}

func TestMissingFile(t *testing.T) {
	setup(t)
	_, err := run(t, "summary", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}

func TestChartCmd(t *testing.T) {
	path := setup(t)
	outPath := filepath.Join(t.TempDir(), "chart.png")
	_, err := run(t, "chart", path, "--out", outPath, "--width", "400", "--height", "300")
	require.NoError(t, err)

	f, err := os.Open(outPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}

func TestChartCmdNoDatedRecords(t *testing.T) {
	path := setup(t)
	outPath := filepath.Join(t.TempDir(), "chart.png")
	_, err := run(t, "chart", path, "--out", outPath, "--club", "CN Vigo")
	require.Error(t, err)
	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDebugLogFile(t *testing.T) {
	path := setup(t)
	logPath := filepath.Join(t.TempDir(), "debug.log")
	_, err := run(t, "records", path, "--debug", logPath)
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded results")
}

func TestDefaultConfigTemplateParses(t *testing.T) {
	setup(t)
	path := config.DefaultConfigPath()
	require.NoError(t, ensureConfigFile(path))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Filters.Kind)
	assert.Nil(t, cfg.Log.File)

	// An existing file is left alone.
	require.NoError(t, os.WriteFile(path, []byte("[filters]\nkind = \"any\"\n"), 0o644))
	require.NoError(t, ensureConfigFile(path))
	cfg, err = config.LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Filters.Kind)
	assert.Equal(t, "any", *cfg.Filters.Kind)
}
