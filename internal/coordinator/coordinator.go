// Package coordinator renders and writes the interactive shell script that
// starts a session for one agent role.
package coordinator

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"agent-workflow/internal/config"
	"agent-workflow/internal/roles"
	"agent-workflow/internal/session"
)

// scriptTemplate is the fixed coordinator script. Only role constants are
// interpolated, and each goes through sq.
const scriptTemplate = `#!/bin/bash
# ESM Platform - Master Session Coordinator
# Orchestrates parallel agent workflows

echo "========================================"
echo "ESM Platform - Session Coordinator"
echo "========================================"

# Function to start agent session
start_agent_session() {
    local agent_name=$1
    local agent_dir=$2
    local focus=$3

    echo "Starting $agent_name session..."
    echo "Directory: $agent_dir"
    echo "Focus: $focus"
    echo "----------------------------------------"

    if [ ! -d "$agent_dir" ]; then
        echo "Worktree not found: $agent_dir"
        return 1
    fi

    # Create session log
    echo "Session started: $(date)" > "$agent_dir/{{.LogName}}"
    echo "Agent: $agent_name" >> "$agent_dir/{{.LogName}}"
    echo "Focus: $focus" >> "$agent_dir/{{.LogName}}"

    # Change to agent directory
    cd "$agent_dir" || return 1

    # Start specialized session
    echo "Ready for $agent_name tasks"
    echo "Use PROJECT_CONTEXT.md for full context"
    echo "See .claude/agents/$agent_name.yaml for configuration"
}

# Menu for agent selection
echo "Select specialized agent workflow:"
{{- range .Entries}}
echo {{sq .MenuLine}}
{{- end}}
echo {{sq .ParallelLine}}
echo ""
read -p "Select workflow (1-{{.Parallel}}): " choice

case $choice in
{{- range .Entries}}
    {{.Number}}) start_agent_session {{sq .Name}} {{sq .RelDir}} {{sq .Focus}} ;;
{{- end}}
    {{.Parallel}}) echo {{sq .ParallelAdvice}} ;;
    *) echo "Invalid selection" ;;
esac
`

var tmpl = template.Must(template.New("coordinator").
	Funcs(template.FuncMap{"sq": ShellQuote}).
	Parse(scriptTemplate))

type entry struct {
	Number   int
	Name     string
	RelDir   string
	Focus    string
	MenuLine string
}

type scriptData struct {
	LogName        string
	Entries        []entry
	Parallel       int
	ParallelLine   string
	ParallelAdvice string
}

// ParallelAdvice is printed when the user picks parallel mode.
const ParallelAdvice = "Parallel mode - Open multiple terminals and run this script for each agent"

// ParallelLabel is the menu text of the parallel-mode entry.
const ParallelLabel = "Parallel Mode (All agents simultaneously)"

// MenuLabel returns the menu text for cfg without its number.
func MenuLabel(cfg roles.Config) string {
	return fmt.Sprintf("%s (Priority %d - %s)", cfg.Title, cfg.Priority, cfg.MenuLabel)
}

// MenuLine returns the numbered menu text for the role at position n.
func MenuLine(n int, cfg roles.Config) string {
	return fmt.Sprintf("%d. %s", n, MenuLabel(cfg))
}

// ParallelLine returns the numbered menu text for the parallel entry.
func ParallelLine(n int) string {
	return fmt.Sprintf("%d. %s", n, ParallelLabel)
}

// Render returns the coordinator script for reg. The output depends only
// on the registry's role constants, so repeated calls are byte-identical.
func Render(reg roles.Registry) ([]byte, error) {
	data := scriptData{LogName: session.LogName}
	for i, cfg := range reg.Configs() {
		data.Entries = append(data.Entries, entry{
			Number:   i + 1,
			Name:     cfg.Name,
			RelDir:   "../" + cfg.DirName,
			Focus:    cfg.Focus,
			MenuLine: MenuLine(i+1, cfg),
		})
	}
	data.Parallel = len(data.Entries) + 1
	data.ParallelLine = ParallelLine(data.Parallel)
	data.ParallelAdvice = ParallelAdvice

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("coordinator: render: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders the script to layout.ScriptPath with mode 0755, creating
// the scripts directory if needed, and returns the path written.
func Write(layout config.Layout, reg roles.Registry) (string, error) {
	data, err := Render(reg)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(layout.ScriptsDir, 0o755); err != nil {
		return "", fmt.Errorf("coordinator: create %s: %w", layout.ScriptsDir, err)
	}

	if err := writeFileAtomic(layout.ScriptPath, data, 0o755); err != nil {
		return "", fmt.Errorf("coordinator: write %s: %w", layout.ScriptPath, err)
	}
	return layout.ScriptPath, nil
}

// ShellQuote returns s as a single POSIX shell word. Single quotes inside s
// are closed, escaped and reopened.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
