package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/templatectl/internal/config"
	"github.com/codex-k8s/templatectl/internal/logging"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	opts := &Options{ConfigPath: defaultConfigPath, LogLevel: logging.LevelInfo}
	cmd := newRootCommand(opts, logging.NewLogger(&errOut, logging.LevelInfo))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return result{stdout: out.String(), stderr: errOut.String(), err: err}
}

// writeConfig writes a templatectl.yaml (plus optional extra files) into a temp dir and returns its path.
func writeConfig(t *testing.T, content string, extra map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	path := filepath.Join(dir, "templatectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_DefaultStep(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "--config", writeConfig(t, "", nil))
	require.NoError(t, res.err)
	assert.Equal(t, "Hello World\n", res.stdout)
}

func TestRun_MessageFlagOverridesStep(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "--message", "Goodbye")
	require.NoError(t, res.err)
	assert.Equal(t, "Goodbye\n", res.stdout)
	assert.NotContains(t, res.stdout, "Hello World")
}

func TestRun_TimesRepeatsProcess(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "-n", "2")
	require.NoError(t, res.err)
	assert.Equal(t, "Hello World\nHello World\n", res.stdout)
}

func TestRun_StepFromConfigFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "step:\n  kind: message\n  message: Goodbye\n", nil)

	res := execute(t, "run", "-c", path)
	require.NoError(t, res.err)
	assert.Equal(t, "Goodbye\n", res.stdout)
}

func TestRun_MessageWithoutKindRejected(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "step:\n  message: Goodbye\n", nil))
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, config.ErrInvalidConfig)
	assert.Empty(t, res.stdout)
}

func TestRun_MessageFromEnvFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "envFiles: [.env]\n", map[string]string{
		".env": "TEMPLATECTL_MESSAGE=Goodbye\nTEMPLATECTL_TIMES=2\n",
	})

	res := execute(t, "run", "-c", path)
	require.NoError(t, res.err)
	assert.Equal(t, "Goodbye\nGoodbye\n", res.stdout)
}

func TestRun_InlineVars(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "--vars", "TEMPLATECTL_TIMES=3")
	require.NoError(t, res.err)
	assert.Equal(t, "Hello World\nHello World\nHello World\n", res.stdout)
}

func TestRun_InvalidInlineVars(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "--vars", "TEMPLATECTL_TIMES")
	require.Error(t, res.err)
	assert.Empty(t, res.stdout)
}

func TestRun_EnvOverridesFileAndFlagOverridesEnv(t *testing.T) {
	t.Setenv("TEMPLATECTL_MESSAGE", "from env")
	path := writeConfig(t, "step:\n  kind: message\n  message: from file\n", nil)

	res := execute(t, "run", "-c", path)
	require.NoError(t, res.err)
	assert.Equal(t, "from env\n", res.stdout)

	res = execute(t, "run", "-c", path, "-m", "from flag")
	require.NoError(t, res.err)
	assert.Equal(t, "from flag\n", res.stdout)
}

func TestRun_ConfigPathFromEnv(t *testing.T) {
	t.Setenv("TEMPLATECTL_CONFIG", writeConfig(t, "times: 2\n", nil))

	res := execute(t, "run")
	require.NoError(t, res.err)
	assert.Equal(t, "Hello World\nHello World\n", res.stdout)
}

func TestRun_BadTimesEnv(t *testing.T) {
	t.Setenv("TEMPLATECTL_TIMES", "many")

	res := execute(t, "run", "-c", writeConfig(t, "", nil))
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "TEMPLATECTL_*")
}

func TestRun_LogLevelFromEnv(t *testing.T) {
	t.Setenv("TEMPLATECTL_LOG_LEVEL", "debug")

	res := execute(t, "run", "-c", writeConfig(t, "", nil))
	require.NoError(t, res.err)
	assert.Equal(t, "Hello World\n", res.stdout)
	assert.Contains(t, res.stderr, "invoking step")
	assert.NotContains(t, res.stderr, "Hello World")
}

func TestRun_LogLevelFromConfigFile(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "logLevel: debug\n", nil))
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "process finished")
}

func TestRun_InvalidTimes(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "--times", "0")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, config.ErrInvalidConfig)
	assert.Empty(t, res.stdout)
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, os.ErrNotExist)
}

func TestRun_ToLog(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "-m", "Goodbye", "--to-log")
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "step output")
	assert.Contains(t, res.stderr, "Goodbye")
}

func TestRun_RejectsArgs(t *testing.T) {
	t.Parallel()

	res := execute(t, "run", "-c", writeConfig(t, "", nil), "extra")
	assert.Error(t, res.err)
}

func TestConfigShow(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "times: 2\n", nil)

	res := execute(t, "config", "show", "-c", path, "--vars", "TEMPLATECTL_MESSAGE=Goodbye")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "times: 2")
	assert.Contains(t, res.stdout, "kind: message")
	assert.Contains(t, res.stdout, "message: Goodbye")
	assert.Contains(t, res.stdout, "logLevel: info")
}

func TestConfigShow_InvalidConfig(t *testing.T) {
	t.Parallel()

	res := execute(t, "config", "show", "-c", writeConfig(t, "step:\n  kind: shout\n", nil))
	assert.ErrorIs(t, res.err, config.ErrInvalidConfig)
}

func TestConfigGroup_UnknownSubcommandShowsHelp(t *testing.T) {
	t.Parallel()

	res := execute(t, "config", "bogus")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "show")
	assert.Contains(t, res.stdout, "Inspect templatectl configuration")
}
