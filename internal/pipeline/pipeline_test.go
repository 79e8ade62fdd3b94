package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/shellpack/cli/internal/bundler"
	"github.com/shellpack/cli/internal/config"
	"github.com/shellpack/cli/internal/output"
	"github.com/shellpack/cli/internal/testutil"
)

// fakeClient records invocations and emits a minimal static bundle.
type fakeClient struct {
	calls []bundler.ClientOptions
	err   error
}

func (f *fakeClient) Bundle(_ context.Context, opts bundler.ClientOptions) error {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return f.err
	}
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(opts.OutDir, "index.html"), []byte("<html></html>"), 0o644)
}

// fakeScript records invocations and emits the requested outfile.
type fakeScript struct {
	calls []bundler.ScriptOptions
	err   error
}

func (f *fakeScript) Bundle(_ context.Context, opts bundler.ScriptOptions) error {
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(opts.Outfile, []byte("// bundled\n"), 0o644)
}

// testConfig returns a validated config rooted in a temp dir, with the icon
// deliberately absent by default.
func testConfig(t *testing.T) (*config.Config, string) {
	t.Helper()
	dir, cleanup := testutil.TempDir(t)
	t.Cleanup(cleanup)

	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(dir, "dist")
	cfg.Icon = filepath.Join(dir, "resources", "icon.png")
	return cfg, dir
}

func newTestPipeline(t *testing.T, cfg *config.Config, client *fakeClient, script *fakeScript) *Pipeline {
	t.Helper()
	p, err := New(Options{Config: cfg, Client: client, Script: script})
	require.NoError(t, err)
	return p
}

func TestNew_RequiresCollaborators(t *testing.T) {
	cfg, _ := testConfig(t)

	_, err := New(Options{Client: &fakeClient{}, Script: &fakeScript{}})
	assert.Error(t, err)

	_, err = New(Options{Config: cfg, Script: &fakeScript{}})
	assert.Error(t, err)

	_, err = New(Options{Config: cfg, Client: &fakeClient{}})
	assert.Error(t, err)
}

func TestPipeline_StepOrder(t *testing.T) {
	cfg, _ := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})

	assert.Equal(t, []string{"clean", "client", "server", "main", "icon", "manifest"}, p.Steps())
}

func TestPipeline_ClearsStaleOutput(t *testing.T) {
	cfg, _ := testConfig(t)

	// Pre-populate the output root with a stale artifact.
	require.NoError(t, os.MkdirAll(cfg.Output, 0o755))
	stale := filepath.Join(cfg.Output, "stale.txt")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})
	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, filepath.Join(cfg.Output, "public", "index.html"))
	assert.FileExists(t, filepath.Join(cfg.Output, "server.js"))
	assert.FileExists(t, filepath.Join(cfg.Output, "main.js"))
}

func TestPipeline_ClientFailureAbortsRun(t *testing.T) {
	cfg, _ := testConfig(t)
	script := &fakeScript{}
	p := newTestPipeline(t, cfg, &fakeClient{err: errors.New("vite exploded")}, script)

	_, err := p.Run(context.Background())
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "client", stepErr.Step)

	// No script bundle may be produced after a fatal client failure.
	assert.Empty(t, script.calls)
	assert.NoFileExists(t, filepath.Join(cfg.Output, "server.js"))
	assert.NoFileExists(t, filepath.Join(cfg.Output, "main.js"))
}

func TestPipeline_ServerFailureSkipsMain(t *testing.T) {
	cfg, _ := testConfig(t)
	script := &fakeScript{err: errors.New("syntax error")}
	p := newTestPipeline(t, cfg, &fakeClient{}, script)

	_, err := p.Run(context.Background())
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "server", stepErr.Step)
	assert.Len(t, script.calls, 1)
}

func TestPipeline_MissingIconTolerated(t *testing.T) {
	cfg, _ := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})

	// Icon source does not exist; the run must still succeed and produce
	// both script bundles.
	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)
	assert.FileExists(t, filepath.Join(cfg.Output, "server.js"))
	assert.FileExists(t, filepath.Join(cfg.Output, "main.js"))
	assert.NoFileExists(t, filepath.Join(cfg.Output, "icon.png"))
}

func TestPipeline_IconCopiedWhenPresent(t *testing.T) {
	cfg, dir := testConfig(t)
	testutil.WriteFile(t, dir, filepath.Join("resources", "icon.png"), "png-bytes")

	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})
	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)

	copied, err := os.ReadFile(filepath.Join(cfg.Output, "icon.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(copied))
}

func TestPipeline_ScriptBundleContract(t *testing.T) {
	cfg, _ := testConfig(t)
	script := &fakeScript{}
	p := newTestPipeline(t, cfg, &fakeClient{}, script)

	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)
	require.Len(t, script.calls, 2)

	server, main := script.calls[0], script.calls[1]
	assert.Equal(t, cfg.Server.Entry, server.Entry)
	assert.Equal(t, cfg.Main.Entry, main.Entry)
	assert.Equal(t, filepath.Join(cfg.Output, "server.js"), server.Outfile)
	assert.Equal(t, filepath.Join(cfg.Output, "main.js"), main.Outfile)

	for _, call := range script.calls {
		assert.Equal(t, bundler.PlatformNode, call.Platform)
		assert.Equal(t, bundler.FormatCJS, call.Format)
		assert.Equal(t, `"production"`, call.Define["process.env.NODE_ENV"])
		// Externalized dependencies stay out of the bundle in every invocation.
		assert.Equal(t, cfg.Externals, call.Externals)
	}
}

func TestPipeline_ClientBundleContract(t *testing.T) {
	cfg, _ := testConfig(t)
	client := &fakeClient{}
	p := newTestPipeline(t, cfg, client, &fakeScript{})

	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)
	require.Len(t, client.calls, 1)

	call := client.calls[0]
	assert.Equal(t, cfg.Client.Root, call.Root)
	assert.Equal(t, filepath.Join(cfg.Output, "public"), call.OutDir)
	assert.True(t, call.EmptyOutDir)
}

func TestPipeline_ManifestListsArtifacts(t *testing.T) {
	cfg, _ := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})

	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)

	raw, err := os.ReadFile(filepath.Join(cfg.Output, "manifest.yaml"))
	require.NoError(t, err)

	var m output.Manifest
	require.NoError(t, yaml.Unmarshal(raw, &m))

	names := make(map[string]bool, len(m.Artifacts))
	for _, a := range m.Artifacts {
		names[a.Name] = true
		assert.Positive(t, a.Size, "artifact %s", a.Name)
	}
	assert.True(t, names["client"])
	assert.True(t, names["server"])
	assert.True(t, names["main"])
}

func TestPipeline_WrapDecoratesEveryStep(t *testing.T) {
	cfg, _ := testConfig(t)

	var wrapped []string
	p, err := New(Options{
		Config: cfg,
		Client: &fakeClient{},
		Script: &fakeScript{},
		Wrap: func(_ context.Context, step string, run func() error) error {
			wrapped = append(wrapped, step)
			return run()
		},
	})
	require.NoError(t, err)

	_, runErr := p.Run(context.Background())
	require.NoError(t, runErr)
	assert.Equal(t, p.Steps(), wrapped)
}

func TestPipeline_ResultsReportOutcomes(t *testing.T) {
	cfg, _ := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeClient{}, &fakeScript{})

	// Icon source is absent, so that step is skipped; everything else is done.
	results, err := p.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)

	statuses := map[string]string{}
	for _, r := range results {
		statuses[r.Name] = r.Status
	}
	assert.Equal(t, output.StatusDone, statuses["clean"])
	assert.Equal(t, output.StatusDone, statuses["client"])
	assert.Equal(t, output.StatusDone, statuses["server"])
	assert.Equal(t, output.StatusDone, statuses["main"])
	assert.Equal(t, output.StatusSkipped, statuses["icon"])
	assert.Equal(t, output.StatusDone, statuses["manifest"])
}

func TestPipeline_FatalFailureReportedInResults(t *testing.T) {
	cfg, _ := testConfig(t)
	p := newTestPipeline(t, cfg, &fakeClient{err: errors.New("boom")}, &fakeScript{})

	results, err := p.Run(context.Background())
	require.Error(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, output.StatusDone, results[0].Status)
	assert.Equal(t, "client", results[1].Name)
	assert.Equal(t, output.StatusFailed, results[1].Status)
	assert.Error(t, results[1].Err)
}

func TestCleanOutput(t *testing.T) {
	dir, cleanup := testutil.TempDir(t)
	defer cleanup()

	target := filepath.Join(dir, "dist")

	// Missing directory is tolerated.
	require.NoError(t, CleanOutput(target))
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Existing content is removed.
	testutil.WriteFile(t, target, "leftover.js", "x")
	require.NoError(t, CleanOutput(target))

	entries, err := os.ReadDir(target)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
