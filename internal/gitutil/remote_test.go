package gitutil

import (
	"testing"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/issue-warden/internal/core"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    core.RepoRef
		wantErr bool
	}{
		{
			name: "https clone URL",
			url:  "https://github.com/acme/widgets.git",
			want: core.RepoRef{Owner: "acme", Name: "widgets"},
		},
		{
			name: "scp-like ssh URL",
			url:  "git@github.com:acme/widgets.git",
			want: core.RepoRef{Owner: "acme", Name: "widgets"},
		},
		{
			name: "ssh scheme URL",
			url:  "ssh://git@github.com/acme/widgets",
			want: core.RepoRef{Owner: "acme", Name: "widgets"},
		},
		{
			name: "https without .git suffix",
			url:  "https://github.com/acme/widgets",
			want: core.RepoRef{Owner: "acme", Name: "widgets"},
		},
		{
			name:    "non-GitHub host",
			url:     "https://gitlab.com/acme/widgets.git",
			wantErr: true,
		},
		{
			name:    "bare host",
			url:     "https://github.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRemoteURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInferRepoFromDir(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{"git@github.com:acme/widgets.git"},
	})
	require.NoError(t, err)

	ref, err := InferRepoFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, core.RepoRef{Owner: "acme", Name: "widgets"}, ref)
}

func TestInferRepoFromDirWithoutOrigin(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = InferRepoFromDir(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "origin")
}
