package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/umputun/texpress/app/generate"
	"github.com/umputun/texpress/app/typeset"
)

func Test_makeHostName(t *testing.T) {
	opts.Notify.HostName = "test"
	assert.Equal(t, "test", makeHostName())

	opts.Notify.HostName = ""
	exp, err := os.Hostname()
	require.NoError(t, err)
	assert.Equal(t, exp, makeHostName())
}

func Test_makeNotifier(t *testing.T) {
	opts.Notify.Destinations = nil
	assert.Nil(t, makeNotifier())

	opts.Notify.Destinations = []string{"https://example.com/hook"}
	opts.Notify.HostName = "box1"
	opts.Notify.Timeout = 5 * time.Second
	notif := makeNotifier()
	require.NotNil(t, notif)
	assert.True(t, notif.Enabled())
	assert.Equal(t, "box1", notif.Host)
	assert.Equal(t, 5*time.Second, notif.Timeout)
	assert.Nil(t, notif.SMTP)

	opts.Notify.SMTPHost, opts.Notify.SMTPPort = "smtp.example.com", 587
	notif = makeNotifier()
	require.NotNil(t, notif.SMTP)
	assert.Equal(t, "smtp.example.com", notif.SMTP.Host)
	assert.Equal(t, 587, notif.SMTP.Port)

	opts.Notify.Destinations, opts.Notify.SMTPHost, opts.Notify.HostName = nil, "", ""
}

func Test_makeGenerator(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts.Gen.Model, opts.Gen.PromptFile = "", ""
		gen, model, err := makeGenerator()
		require.NoError(t, err)
		assert.NotNil(t, gen)
		assert.Equal(t, generate.DefaultModel, model)
	})

	t.Run("model from prompt file", func(t *testing.T) {
		f := filepath.Join(t.TempDir(), "prompt.yml")
		require.NoError(t, os.WriteFile(f, []byte("model: gemini-custom\n"), 0o600))
		opts.Gen.Model, opts.Gen.PromptFile = "", f
		defer func() { opts.Gen.PromptFile = "" }()

		_, model, err := makeGenerator()
		require.NoError(t, err)
		assert.Equal(t, "gemini-custom", model)

		opts.Gen.Model = "gemini-flag"
		defer func() { opts.Gen.Model = "" }()
		_, model, err = makeGenerator()
		require.NoError(t, err)
		assert.Equal(t, "gemini-flag", model, "flag wins over prompt file")
	})

	t.Run("missing prompt file", func(t *testing.T) {
		opts.Gen.PromptFile = "/no/such/prompt.yml"
		defer func() { opts.Gen.PromptFile = "" }()
		_, _, err := makeGenerator()
		require.Error(t, err)
	})
}

func Test_resolveWorkDir(t *testing.T) {
	assert.Equal(t, filepath.Join(os.TempDir(), "texpress"), resolveWorkDir(""))
	assert.NotEqual(t, os.TempDir(), resolveWorkDir(""), "shared temp dir is never swept")
	assert.Equal(t, "/var/lib/texpress", resolveWorkDir("/var/lib/texpress"))
}

func Test_compilerBinary(t *testing.T) {
	assert.Equal(t, typeset.DefaultBinary, compilerBinary(&typeset.Compiler{}))
	assert.Equal(t, "/opt/bin/tectonic", compilerBinary(&typeset.Compiler{Binary: "/opt/bin/tectonic"}))
}

func Test_setupLogsWithLogsDisabled(t *testing.T) {
	opts.Log.Enabled = false
	assert.Equal(t, os.Stdout, setupLogs())
}

func Test_setupLogsToFile(t *testing.T) {
	tmpfile, err := os.CreateTemp(t.TempDir(), "")
	require.NoError(t, err)

	opts.Log.Enabled = true
	opts.Log.Filename = tmpfile.Name()
	opts.Log.MaxSize = 100
	opts.Log.MaxBackups = 7
	opts.Log.MaxAge = 0
	opts.Log.EnabledCompress = false
	defer func() {
		opts.Log.Enabled = false
		setupLogs()
	}()

	out := setupLogs()
	assert.IsType(t, &lumberjack.Logger{}, out)

	logger := out.(*lumberjack.Logger)
	assert.Equal(t, tmpfile.Name(), logger.Filename)
	assert.Equal(t, 100, logger.MaxSize)
	assert.Equal(t, 7, logger.MaxBackups)
	assert.Equal(t, 0, logger.MaxAge)
	assert.False(t, logger.Compress)
}

func Test_validateBaseURL(t *testing.T) {
	tests := []struct{ name, input, want string }{
		{"empty string", "", ""},
		{"root path", "/", ""},
		{"path without trailing slash", "/texpress", "/texpress"},
		{"path with trailing slash", "/texpress/", "/texpress"},
		{"multi-segment path", "/app/texpress", "/app/texpress"},
		{"multi-segment with trailing slash", "/app/texpress/", "/app/texpress"},
		{"missing leading slash", "texpress", "/texpress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateBaseURL(tt.input))
		})
	}
}
