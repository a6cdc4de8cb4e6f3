package roles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllIsPriorityOrdered(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	for i, r := range all {
		assert.Equal(t, i+1, r.Spec().Priority, r.String())
	}
}

func TestSpecsAreUniqueAndComplete(t *testing.T) {
	names := map[string]bool{}
	branches := map[string]bool{}
	dirs := map[string]bool{}

	for _, r := range All() {
		s := r.Spec()
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Focus)
		assert.NotEmpty(t, s.MenuLabel)
		assert.Len(t, s.Tasks, 5, s.Name)

		assert.False(t, names[s.Name], "duplicate name %s", s.Name)
		assert.False(t, branches[s.Branch], "duplicate branch %s", s.Branch)
		assert.False(t, dirs[s.DirName], "duplicate dir %s", s.DirName)
		names[s.Name], branches[s.Branch], dirs[s.DirName] = true, true, true
	}
}

func TestSpecReturnsCopyOfTasks(t *testing.T) {
	s := DatabaseExpert.Spec()
	s.Tasks[0] = "changed"
	assert.Equal(t, "Install and configure local PostgreSQL instance", DatabaseExpert.Spec().Tasks[0])
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		want    Role
		wantErr bool
	}{
		{"database-expert", DatabaseExpert, false},
		{"migration-specialist", MigrationSpecialist, false},
		{"testing-specialist", TestingSpecialist, false},
		{"Database-Expert", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnknownRoleString(t *testing.T) {
	assert.Equal(t, "role(42)", Role(42).String())
	assert.Panics(t, func() { Role(42).Spec() })
}

func TestNewRegistryResolvesSiblingDirectories(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "esm-platform")
	reg := NewRegistry(root)

	require.Equal(t, 5, reg.Len())
	configs := reg.Configs()
	assert.Equal(t, filepath.Join(string(filepath.Separator), "work", "esm-database"), configs[0].Directory)
	assert.Equal(t, filepath.Join(string(filepath.Separator), "work", "esm-testing"), configs[4].Directory)

	for i, c := range configs {
		assert.Equal(t, All()[i], c.Role)
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	reg := NewRegistry("/work/esm-platform")

	configs := reg.Configs()
	configs[0].Directory = "/elsewhere"
	configs[0].Tasks[0] = "changed"

	c, ok := reg.Lookup(DatabaseExpert)
	require.True(t, ok)
	assert.Equal(t, filepath.Join("/work", "esm-database"), c.Directory)
	assert.Equal(t, "Install and configure local PostgreSQL instance", c.Tasks[0])
}

func TestRegistryLookupMissing(t *testing.T) {
	var reg Registry
	_, ok := reg.Lookup(DatabaseExpert)
	assert.False(t, ok)
}
