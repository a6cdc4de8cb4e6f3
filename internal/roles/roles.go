// Package roles defines the fixed set of agent worker roles and the
// immutable registry that binds each role to a worktree directory.
package roles

import "fmt"

// Role identifies one agent worker role. The set is closed: every value is
// declared below and All returns them in priority order.
type Role int

const (
	DatabaseExpert Role = iota + 1
	MigrationSpecialist
	FrontendSpecialist
	DocumentationSpecialist
	TestingSpecialist
)

// Spec holds the static attributes of a role.
type Spec struct {
	Name      string // unique key, e.g. "database-expert"
	Title     string // human-readable, e.g. "Database Expert"
	DirName   string // worktree directory name, sibling of the project root
	Branch    string
	Focus     string
	MenuLabel string // short label shown in the coordinator menu
	Priority  int
	Tasks     []string
}

var specs = map[Role]Spec{
	DatabaseExpert: {
		Name:      "database-expert",
		Title:     "Database Expert",
		DirName:   "esm-database",
		Branch:    "feature/database-implementation",
		Focus:     "PostgreSQL setup and optimization",
		MenuLabel: "PostgreSQL setup",
		Priority:  1,
		Tasks: []string{
			"Install and configure local PostgreSQL instance",
			"Deploy database schema from schema.sql",
			"Test database connection and validate all tables",
			"Create database performance optimization plan",
			"Set up backup and recovery procedures",
		},
	},
	MigrationSpecialist: {
		Name:      "migration-specialist",
		Title:     "Migration Specialist",
		DirName:   "esm-migration",
		Branch:    "feature/migration-utilities",
		Focus:     "Data migration and validation",
		MenuLabel: "Data import",
		Priority:  2,
		Tasks: []string{
			"Locate June 2025 spreadsheet file",
			"Test migration utilities with real data",
			"Validate all 245 users import correctly",
			"Verify all 16 services access records",
			"Generate comprehensive migration report",
		},
	},
	FrontendSpecialist: {
		Name:      "frontend-specialist",
		Title:     "Frontend Specialist",
		DirName:   "esm-frontend",
		Branch:    "feature/ui-integration",
		Focus:     "Application integration",
		MenuLabel: "UI integration",
		Priority:  3,
		Tasks: []string{
			"Replace mock data with database services",
			"Update components to use lib/db-services.ts",
			"Test UI with real database connections",
			"Validate dashboard metrics show real data",
			"Optimize frontend performance",
		},
	},
	DocumentationSpecialist: {
		Name:      "documentation-specialist",
		Title:     "Documentation Specialist",
		DirName:   "esm-docs",
		Branch:    "feature/documentation-update",
		Focus:     "Administrator guides",
		MenuLabel: "Admin guides",
		Priority:  4,
		Tasks: []string{
			"Create administrator procedures guide",
			"Document backup and recovery procedures",
			"Create troubleshooting guide for IT team",
			"Prepare user training materials",
			"Update technical documentation",
		},
	},
	TestingSpecialist: {
		Name:      "testing-specialist",
		Title:     "Testing Specialist",
		DirName:   "esm-testing",
		Branch:    "feature/integration-testing",
		Focus:     "Quality assurance",
		MenuLabel: "Quality assurance",
		Priority:  5,
		Tasks: []string{
			"Create comprehensive test suite",
			"Validate migration data integrity",
			"Performance testing with 300+ users",
			"Security testing and validation",
			"Prepare deployment checklist",
		},
	},
}

// All returns every role in priority order.
func All() []Role {
	return []Role{
		DatabaseExpert,
		MigrationSpecialist,
		FrontendSpecialist,
		DocumentationSpecialist,
		TestingSpecialist,
	}
}

// Spec returns the static attributes of r. The returned task slice is a
// copy, so callers cannot alter the table.
func (r Role) Spec() Spec {
	s, ok := specs[r]
	if !ok {
		panic(fmt.Sprintf("roles: unknown role %d", int(r)))
	}
	s.Tasks = append([]string(nil), s.Tasks...)
	return s
}

// String returns the role's unique name.
func (r Role) String() string {
	if s, ok := specs[r]; ok {
		return s.Name
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Parse looks a role up by its unique name.
func Parse(name string) (Role, error) {
	for _, r := range All() {
		if specs[r].Name == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("roles: unknown role %q", name)
}
