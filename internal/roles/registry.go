package roles

import "path/filepath"

// Config is a role bound to the absolute worktree directory it owns.
type Config struct {
	Role Role
	Spec
	Directory string
}

// Registry is the resolved, immutable set of role configs for one project.
// It is built once per invocation and handed to each phase explicitly.
type Registry struct {
	configs []Config
}

// NewRegistry resolves every role's worktree directory as a sibling of
// projectRoot. projectRoot should be absolute and clean.
func NewRegistry(projectRoot string) Registry {
	parent := filepath.Dir(projectRoot)
	configs := make([]Config, 0, len(All()))
	for _, r := range All() {
		s := r.Spec()
		configs = append(configs, Config{
			Role:      r,
			Spec:      s,
			Directory: filepath.Join(parent, s.DirName),
		})
	}
	return Registry{configs: configs}
}

// Configs returns the role configs in priority order. The slice is a copy.
func (r Registry) Configs() []Config {
	out := make([]Config, len(r.configs))
	for i, c := range r.configs {
		c.Tasks = append([]string(nil), c.Tasks...)
		out[i] = c
	}
	return out
}

// Lookup returns the config for role, and false if the registry does not
// contain it.
func (r Registry) Lookup(role Role) (Config, bool) {
	for _, c := range r.configs {
		if c.Role == role {
			c.Tasks = append([]string(nil), c.Tasks...)
			return c, true
		}
	}
	return Config{}, false
}

// Len reports how many roles the registry holds.
func (r Registry) Len() int { return len(r.configs) }
