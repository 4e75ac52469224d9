package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"localecheck/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLocales(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("LOCALECHECK_DIR", "")
	t.Setenv("LOCALECHECK_REFERENCE", "")
	t.Setenv("LOCALECHECK_LOCALES", "")
	t.Setenv("LOCALECHECK_FORMAT", "")

	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func noConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.yaml")
}

func TestCheck_DefaultLocaleList(t *testing.T) {
	files := map[string]string{"en.json": `{"a":1,"b":2,"c":3}`}
	for _, name := range config.DefaultLocales {
		files[name] = `{"a":1,"b":2,"c":3}`
	}
	files["fr.json"] = `{"a":1,"c":3}`
	delete(files, "ja.json")
	dir := setupLocales(t, files)

	code, out, _ := execute(t, "--config", noConfig(t), "--no-color", dir)
	assert.Equal(t, exitIncomplete, code)

	want := strings.Join([]string{
		"de.json ✓ Complete",
		"es.json ✓ Complete",
		"fr.json still missing keys:",
		"  b",
		"it.json ✓ Complete",
		"Error reading ja.json: open " + filepath.Join(dir, "ja.json") + ": no such file or directory",
		"nl.json ✓ Complete",
		"pt.json ✓ Complete",
		"ru.json ✓ Complete",
		"",
		"❌ Some locale files still have missing keys.",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestCheck_AllComplete(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"en.json": `{"a":1}`,
		"de.json": `{"a":"eins"}`,
	})

	code, out, _ := execute(t, "--config", noConfig(t), "--no-color", "--locales", "de.json", dir)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "de.json ✓ Complete\n\n🎉 All locale files are now complete!\n", out)
}

func TestCheck_Deterministic(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"en.json": `{"z":1,"y":2,"x":3,"w":4}`,
		"de.json": `{"w":4}`,
		"es.json": `[]`,
	})
	args := []string{"--config", noConfig(t), "--locales", "de.json,es.json", dir}

	_, first, _ := execute(t, args...)
	_, second, _ := execute(t, args...)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "de.json still missing keys:\n  x\n  y\n  z\n")
}

func TestCheck_ReferenceMissingIsFatal(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"de.json": `{"a":1}`,
	})

	code, out, errOut := execute(t, "--config", noConfig(t), "--locales", "de.json", dir)
	assert.Equal(t, exitFatal, code)
	assert.Empty(t, out, "no report is printed without a reference")
	assert.Contains(t, errOut, "reference en.json")
}

func TestCheck_DiscoverWithEmptyLocales(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"en.json": `{"a":1,"b":2}`,
		"pl.json": `{"a":1,"b":2}`,
		"cs.json": `{"a":1}`,
	})

	code, out, _ := execute(t, "--config", noConfig(t), "--no-color", "--locales", "", dir)
	assert.Equal(t, exitIncomplete, code)
	assert.True(t, strings.HasPrefix(out, "cs.json still missing keys:\n  b\npl.json ✓ Complete\n"), out)
}

func TestCheck_ConfigFileAndFlagPrecedence(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"base.json": `{"a":1,"b":2}`,
		"it.json":   `{"a":1,"b":2,"old":3}`,
		"pt.json":   `{"a":1}`,
	})

	cfgPath := filepath.Join(t.TempDir(), "localecheck.yaml")
	cfg := config.DefaultConfig()
	cfg.Dir = dir
	cfg.Reference = "base.json"
	cfg.Locales = []string{"pt.json"}
	require.NoError(t, cfg.Save(cfgPath))

	code, out, _ := execute(t, "--config", cfgPath, "--no-color")
	assert.Equal(t, exitIncomplete, code)
	assert.Contains(t, out, "pt.json still missing keys:\n  b\n")

	code, out, _ = execute(t, "--config", cfgPath, "--no-color", "--locales", "it.json", "--show-extra")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "it.json ✓ Complete\nit.json has keys not in base.json:\n  old\n")
}

func TestCheck_JSONFormat(t *testing.T) {
	dir := setupLocales(t, map[string]string{
		"en.json": `{"a":1,"b":2}`,
		"ru.json": `{"a":1}`,
	})

	code, out, _ := execute(t, "--config", noConfig(t), "--format", "json", "--locales", "ru.json", dir)
	assert.Equal(t, exitIncomplete, code)
	assert.Contains(t, out, `"status": "missing-keys"`)
	assert.Contains(t, out, `"complete": false`)
}

func TestCheck_InvalidConfiguration(t *testing.T) {
	dir := setupLocales(t, map[string]string{"en.json": `{}`})

	code, _, errOut := execute(t, "--config", noConfig(t), "--format", "xml", dir)
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, errOut, "invalid configuration")

	code, _, errOut = execute(t, "--config", noConfig(t), "--locales", "en.json", dir)
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, errOut, "also listed as a target")
}

func TestInit(t *testing.T) {
	setupLocales(t, nil)
	path := filepath.Join(t.TempDir(), ".localecheck.yaml")

	code, out, _ := execute(t, "init", "--config", path)
	require.Equal(t, exitOK, code)
	assert.Equal(t, "Wrote "+path+"\n", out)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	code, _, errOut := execute(t, "init", "--config", path)
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = execute(t, "init", "--config", path, "--force")
	assert.Equal(t, exitOK, code)
}

func TestUnknownFlag(t *testing.T) {
	code, _, errOut := execute(t, "--bogus")
	assert.Equal(t, exitFatal, code)
	assert.Contains(t, errOut, "unknown flag")
}

func TestHelp_DocumentsWatchExitStatus(t *testing.T) {
	code, out, _ := execute(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "exit status is always 0")
	assert.Contains(t, out, "exits 0 on interrupt regardless of the last result")
}
