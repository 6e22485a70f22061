package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		shell     string
		expectErr bool
		contains  []string
	}{
		{
			name:     "Bash completion",
			shell:    "bash",
			contains: []string{"Bash completion script", "_matsteps_completions", `compgen -W "dark light"`, `compgen -W "text html json"`, "complete -F _matsteps_completions matsteps"},
		},
		{
			name:     "Zsh completion",
			shell:    "zsh",
			contains: []string{"#compdef matsteps", "Zsh completion script", "theme:(dark light)", "format:(text html json)"},
		},
		{
			name:     "Fish completion",
			shell:    "fish",
			contains: []string{"Fish completion script", "-l theme -d 'Viewer theme' -xa 'dark light'", "-l format -d 'Output format' -xa 'text html json'"},
		},
		{
			name:     "PowerShell completion",
			shell:    "powershell",
			contains: []string{"PowerShell completion script", "$matstepsThemes = @('dark', 'light')", "$matstepsFormats = @('text', 'html', 'json')", "Register-ArgumentCompleter"},
		},
		{
			name:     "PowerShell alias",
			shell:    "ps",
			contains: []string{"PowerShell completion script"},
		},
		{
			name:      "Unsupported shell",
			shell:     "tcsh",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := GenerateCompletion(&buf, tc.shell)

			if tc.expectErr {
				if err == nil {
					t.Error("Expected error but got nil")
				} else if !strings.Contains(err.Error(), "unsupported shell: tcsh") {
					t.Errorf("Unexpected error message: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			out := buf.String()
			for _, want := range tc.contains {
				if !strings.Contains(out, want) {
					t.Errorf("%s script should contain %q", tc.shell, want)
				}
			}
			if strings.Contains(out, "%!") {
				t.Errorf("%s script has a formatting error", tc.shell)
			}
		})
	}
}
