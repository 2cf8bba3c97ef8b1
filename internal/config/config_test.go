package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(envHome, home)
	for _, key := range []string{envServiceBaseURL, envDocumentID, envWorkspaceID, envElementID, envRequestTimeout, envLogFile, envLogLevel} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	home := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, DefaultProfile, cfg.ActiveProfile)
	assert.Equal(t, DefaultDeployment(), cfg.Deployment())
	assert.True(t, cfg.IsValid())

	info, err := os.Stat(filepath.Join(home, ".cadcopilot", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadConfigRoundTripsProfiles(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.Profiles["staging"] = Deployment{
		ServiceBaseURL: "https://copilot.example.com",
		DocumentID:     "d1",
		WorkspaceID:    "w1",
		ElementID:      "e1",
		RequestTimeout: 45 * time.Second,
	}
	cfg.ActiveProfile = "staging"
	require.NoError(t, cfg.Save())

	reloaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "staging", reloaded.ActiveProfile)
	assert.Equal(t, 45*time.Second, reloaded.Deployment().RequestTimeout)
	assert.Equal(t, []string{"default", "staging"}, reloaded.ProfileNames())
}

func TestLoadConfigFallsBackToFirstProfile(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".cadcopilot", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	raw := `active_profile: missing
profiles:
  beta:
    service_base_url: http://b:1
    document_id: d
    workspace_id: w
    element_id: e
  alpha:
    service_base_url: http://a:1
    document_id: d
    workspace_id: w
    element_id: e
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "alpha", cfg.ActiveProfile)
	assert.Equal(t, "http://a:1", cfg.Deployment().ServiceBaseURL)
}

func TestLoadConfigRejectsEmptyProfiles(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".cadcopilot", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("active_profile: x\nprofiles: {}\n"), 0600))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestEnvOverridesActiveDeployment(t *testing.T) {
	isolate(t)
	t.Setenv(envServiceBaseURL, "http://10.0.0.5:9000")
	t.Setenv(envDocumentID, "doc")
	t.Setenv(envWorkspaceID, "ws")
	t.Setenv(envElementID, "el")
	t.Setenv(envRequestTimeout, "2s")
	t.Setenv(envLogFile, "/tmp/copilot.log")
	t.Setenv(envLogLevel, "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	d := cfg.Deployment()
	assert.Equal(t, "http://10.0.0.5:9000", d.ServiceBaseURL)
	assert.Equal(t, "doc", d.DocumentID)
	assert.Equal(t, "ws", d.WorkspaceID)
	assert.Equal(t, "el", d.ElementID)
	assert.Equal(t, 2*time.Second, d.RequestTimeout)
	assert.Equal(t, "/tmp/copilot.log", cfg.Logging().File)
	assert.Equal(t, "debug", cfg.Logging().Level)
	assert.Empty(t, cfg.Log.File)

	// Overrides stay out of the stored profile.
	assert.Equal(t, DefaultServiceBaseURL, cfg.Profiles[DefaultProfile].ServiceBaseURL)
}

func TestEnvRejectsBadTimeout(t *testing.T) {
	isolate(t)
	t.Setenv(envRequestTimeout, "soon")

	_, err := LoadConfig()
	require.ErrorContains(t, err, envRequestTimeout)
}

func TestUseProfile(t *testing.T) {
	isolate(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Error(t, cfg.UseProfile("nope"))

	cfg.Profiles["lab"] = Deployment{ServiceBaseURL: "http://lab:8000", DocumentID: "d", WorkspaceID: "w", ElementID: "e"}
	require.NoError(t, cfg.UseProfile("lab"))
	assert.Equal(t, "lab", cfg.ActiveProfile)
	assert.Equal(t, "http://lab:8000", cfg.Deployment().ServiceBaseURL)
}

func TestDeploymentValidate(t *testing.T) {
	valid := DefaultDeployment()

	tests := []struct {
		name    string
		mutate  func(*Deployment)
		wantErr string
	}{
		{name: "valid", mutate: func(*Deployment) {}},
		{name: "missing url", mutate: func(d *Deployment) { d.ServiceBaseURL = " " }, wantErr: "service_base_url is required"},
		{name: "no scheme", mutate: func(d *Deployment) { d.ServiceBaseURL = "localhost:8000" }, wantErr: "scheme and host"},
		{name: "missing did", mutate: func(d *Deployment) { d.DocumentID = "" }, wantErr: "document_id"},
		{name: "missing wid", mutate: func(d *Deployment) { d.WorkspaceID = "" }, wantErr: "workspace_id"},
		{name: "missing eid", mutate: func(d *Deployment) { d.ElementID = "" }, wantErr: "element_id"},
		{name: "negative timeout", mutate: func(d *Deployment) { d.RequestTimeout = -time.Second }, wantErr: "request_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}
