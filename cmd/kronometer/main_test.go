package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-kronometer/internal/config"
)

// 2 Kerbin years, 3 days, 1h 1m 40s.
const sampleArg = "18471700"

// run executes the root command against a fresh settings file in a temp dir.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), config.SettingsFileName)
	return runWith(t, cfg, args...)
}

func runWith(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	t.Cleanup(a.close)

	var out bytes.Buffer
	root := newRootCmd(a)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--" + config.FlagConfig, cfg}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestDateCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Default", []string{"date", sampleArg}, "Year 3, Day 4\n"},
		{"With time", []string{"date", sampleArg, "--time", "--seconds"}, "Year 3, Day 4 - 1h1m, 40s\n"},
		{"New style", []string{"date", sampleArg, "--style", "new", "--time"}, "Year 3, Day 4 - 01:01:40\n"},
		{"Compact style", []string{"date", sampleArg, "--style", "compact", "--time", "--seconds"}, "y3, d04, 1:01:40\n"},
		{"Not a number", []string{"date", "NaN"}, "NaN\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Long", []string{"time", sampleArg}, "2 Years, 3 Days, 1 Hour, 1 Minute, 40 Seconds\n"},
		{"Significant", []string{"time", sampleArg, "--format", "significant"}, "2y, 3d, 1h\n"},
		{"Significant explicit", []string{"time", sampleArg, "--format", "significant", "--values", "2", "--explicit"}, "+ 2y, 3d\n"},
		{"Compact", []string{"time", "3661", "--format", "compact"}, "01:01:01\n"},
		{"Negative", []string{"time", "--format", "significant", "--", "-" + sampleArg}, "- 2y, 3d, 1h\n"},
		{"Negative after separator", []string{"time", "--", "-3600"}, "0 Years, 0 Days, -1 Hours, 0 Minutes, 0 Seconds\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"Bad timestamp", []string{"date", "soon"}, config.ErrArgTimestamp},
		{"Bad style", []string{"date", "1", "--style", "fancy"}, config.ErrUnknownStyle},
		{"Bad format", []string{"time", "1", "--format", "fancy"}, config.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	_, err := run(t, "date")
	assert.Error(t, err, "a timestamp argument is required")

	_, err = run(t, "time", "-3600")
	assert.Error(t, err, "a leading minus without -- is read as a flag")
}

func TestUnitsCommand(t *testing.T) {
	got, err := run(t, "units")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"Year", "9201600"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Day", "21600"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Second", "1"}, strings.Fields(lines[4]))
}

func TestExportCommand(t *testing.T) {
	t.Run("Stdout", func(t *testing.T) {
		got, err := run(t, "export", "--from", "0", "--years", "2")
		require.NoError(t, err)
		assert.Contains(t, got, "BEGIN:VCALENDAR")
		assert.Contains(t, got, "RRULE:")
		assert.Contains(t, got, "COUNT=2")
	})

	t.Run("File", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "kronometer.ics")
		got, err := run(t, "export", "--from", "0", "--out", out)
		require.NoError(t, err)
		assert.Empty(t, got)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "BEGIN:VEVENT")

		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())
	})

	t.Run("No years", func(t *testing.T) {
		got, err := run(t, "export", "--years", "0")
		require.NoError(t, err)
		assert.Equal(t, config.StubVCalendar, got)
	})
}

func TestSettingsReadFromConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), config.SettingsFileName)
	require.NoError(t, os.WriteFile(cfg, []byte("language: fr\n"), config.FilePermUserRW))

	got, err := runWith(t, cfg, "time", sampleArg)
	require.NoError(t, err)
	assert.Equal(t, "2 Années, 3 Jours, 1 Heure, 1 Minute, 40 Secondes\n", got)
}

func TestVersionFlag(t *testing.T) {
	got, err := run(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, config.AppName+" version "+config.Version))
}
