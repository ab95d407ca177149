package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/db"
)

type harness struct {
	t          *testing.T
	dir        string
	configPath string
}

func newHarness(t *testing.T, analytics bool) *harness {
	t.Helper()
	t.Setenv("THEMEKIT_SYSTEM_APPEARANCE", "dark")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`
logging:
  level: error
preferences:
  path: %s
  save_debounce: 1h
appearance:
  default_theme: system
analytics:
  enabled: %t
  database_path: %s
`, filepath.Join(dir, "preferences.json"), analytics, filepath.Join(dir, "analytics.db"))
	require.NoError(t, os.WriteFile(configPath, []byte(body), 0o644))

	return &harness{t: t, dir: dir, configPath: configPath}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	a := &app{}
	cmd := newRootCmd(a, "test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", h.configPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	require.NoError(h.t, a.close())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, out)
	return out
}

func TestRootCommandAliases(t *testing.T) {
	root := newRootCmd(&app{}, "dev")

	found, _, err := root.Find([]string{"themes", "list"})
	require.NoError(t, err)
	require.Equal(t, "list", found.Name())
	require.Equal(t, "theme", found.Parent().Name())

	found, _, err = root.Find([]string{"ui"})
	require.NoError(t, err)
	require.Equal(t, "palette", found.Name())
}

func TestThemeSetPersistsAcrossRuns(t *testing.T) {
	h := newHarness(t, true)

	require.Equal(t, "system (dark)\n", h.mustRun("theme", "current"))
	require.Equal(t, "Theme set to dark\n", h.mustRun("theme", "set", "dark"))
	require.Equal(t, "dark\n", h.mustRun("theme", "current"))

	list := h.mustRun("theme", "list")
	require.Contains(t, list, "*  dark")
	require.Contains(t, list, "system       auto")
}

func TestThemeSetRecordsActionHistory(t *testing.T) {
	h := newHarness(t, true)

	h.mustRun("theme", "set", "rose-pine")
	h.mustRun("theme", "set", "pitch-black")
	h.mustRun("actions", "run", "theme.light")

	var events []db.ActionEvent
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("actions", "history", "--json")), &events))
	require.Len(t, events, 2, "pitch-black has no action and is not recorded")
	require.Equal(t, "theme.light", events[0].ActionID)
	require.Equal(t, "theme.rosepine", events[1].ActionID)
	require.Equal(t, "success", events[0].Status)

	table := h.mustRun("actions", "history", "--action", "theme.rosepine")
	require.Contains(t, table, "theme.rosepine")
	require.NotContains(t, table, "theme.light")
}

func TestActionsHistoryRequiresAnalytics(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.run("actions", "history")
	require.ErrorIs(t, err, errAnalyticsDisabled)

	require.Contains(t, h.mustRun("actions", "run", "theme.dark"), "theme set to dark")
	require.NoFileExists(t, filepath.Join(h.dir, "analytics.db"))
}

func TestActionsRunErrors(t *testing.T) {
	h := newHarness(t, true)

	_, err := h.run("actions", "run", "theme.change")
	require.ErrorIs(t, err, actions.ErrNotPerformable)

	_, err = h.run("actions", "run", "theme.sepia")
	require.ErrorIs(t, err, actions.ErrActionNotFound)

	_, err = h.run("theme", "set", "sepia")
	require.Error(t, err)
}

func TestActionsListAndSearch(t *testing.T) {
	h := newHarness(t, true)

	list := h.mustRun("actions", "list")
	require.Contains(t, list, "theme.change")
	require.Contains(t, list, "  theme.rosepine")
	require.Contains(t, list, "Rosé Pine")
	require.Contains(t, list, "Change theme")

	found := h.mustRun("actions", "search", "purple")
	require.Contains(t, found, "theme.rosepine")
	require.NotContains(t, found, "theme.dark")

	require.Equal(t, "No matching actions\n", h.mustRun("actions", "search", "zzzz"))
}

func TestThemeShowFormats(t *testing.T) {
	h := newHarness(t, true)

	var roles map[string]any
	out := h.mustRun("theme", "show", "light", "--format", "json", "--override", "ACCENT=#ff0000")
	require.NoError(t, json.Unmarshal([]byte(out), &roles))
	require.Equal(t, "#ff0000", roles["accent"])
	require.Equal(t, false, roles["isDark"])

	out = h.mustRun("theme", "show", "rosepine", "--format", "yaml")
	roles = nil
	require.NoError(t, yaml.Unmarshal([]byte(out), &roles))
	require.Equal(t, "#191724", roles["background"])
	require.Equal(t, true, roles["isDark"])

	table := h.mustRun("theme", "show", "dark")
	require.Contains(t, table, "background")
	require.Contains(t, table, "#111319")

	_, err := h.run("theme", "show", "dark", "--format", "xml")
	require.ErrorContains(t, err, "unknown format")

	_, err = h.run("theme", "show", "--override", "accent")
	require.ErrorContains(t, err, "role=color")
}

func TestThemeOverridesApplyToCurrentTheme(t *testing.T) {
	h := newHarness(t, true)

	require.Equal(t, "accent = #00ff00\n", h.mustRun("theme", "override", "set", "ACCENT", "#00ff00"))
	require.Contains(t, h.mustRun("theme", "override", "list"), "accent  #00ff00")

	var roles map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("theme", "show", "--format", "json")), &roles))
	require.Equal(t, "#00ff00", roles["accent"])
	require.Equal(t, true, roles["isDark"], "system resolves to dark")

	h.mustRun("theme", "override", "unset", "accent")
	roles = nil
	require.NoError(t, json.Unmarshal([]byte(h.mustRun("theme", "show", "--format", "json")), &roles))
	require.NotEqual(t, "#00ff00", roles["accent"])
}

func TestThemeSyntax(t *testing.T) {
	h := newHarness(t, true)

	out := h.mustRun("theme", "syntax", "dark", "--lang", "go")
	require.Contains(t, out, "\x1b[")
	require.Contains(t, out, "greet")

	path := filepath.Join(h.dir, "sample.py")
	require.NoError(t, os.WriteFile(path, []byte("def pick():\n    return 1\n"), 0o644))
	require.Contains(t, h.mustRun("theme", "syntax", "--file", path, "--lang", "python"), "pick")

	_, err := h.run("theme", "syntax", "--lang", "cobol")
	require.ErrorContains(t, err, "no sample")
}

func TestMetricsFlag(t *testing.T) {
	h := newHarness(t, true)

	out := h.mustRun("--metrics", "actions", "run", "theme.light")
	require.Contains(t, out, "themekit_actions_performed_total")
	require.Contains(t, out, `action="theme.light"`)
}

func TestPaletteRequiresTerminal(t *testing.T) {
	if hasTTY() {
		t.Skip("running attached to a terminal")
	}
	h := newHarness(t, true)

	_, err := h.run("palette")
	require.ErrorIs(t, err, errNoTTY)
}

func TestWriteTableIgnoresANSIWidth(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeTable(&out, []string{"A", "B"}, [][]string{
		{"\x1b[31mred\x1b[0m", "x"},
		{"plain", "y"},
	}))
	require.Equal(t, "A      B\n\x1b[31mred\x1b[0m    x\nplain  y\n", out.String())
}

func TestDebugLogReportsConfigFile(t *testing.T) {
	h := newHarness(t, false)

	out := h.mustRun("--log-level", "debug", "--log-format", "json", "theme", "current")
	require.Contains(t, out, `"message":"loaded config file"`)
	require.Contains(t, out, `"config":"`+h.configPath+`"`)
	require.Contains(t, out, "system (dark)\n")
}
