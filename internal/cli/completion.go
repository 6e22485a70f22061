// Package cli provides shell completion script generation for various shells.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/matsteps/internal/config"
	"github.com/agbru/matsteps/internal/ui"
)

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	themes := make([]string, len(ui.Modes))
	for i, m := range ui.Modes {
		themes[i] = string(m)
	}
	switch shell {
	case "bash":
		return generateBashCompletion(out, themes, config.Formats)
	case "zsh":
		return generateZshCompletion(out, themes, config.Formats)
	case "fish":
		return generateFishCompletion(out, themes, config.Formats)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, themes, config.Formats)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, themes, formats []string) error {
	script := `# Bash completion script for matsteps
# Add this to your ~/.bashrc or ~/.bash_completion

_matsteps_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="--help -h --version -V --theme --format --server --port --host --interactive --output -o --quiet -q --no-color --completion --mathjax-url --log-level --rate-limit --shutdown-timeout"

    case "${prev}" in
        --theme)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;
        --format)
            COMPREPLY=( $(compgen -W "%s" -- "${cur}") )
            return 0
            ;;
        --log-level)
            COMPREPLY=( $(compgen -W "debug info warn error" -- "${cur}") )
            return 0
            ;;
        --completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        --output|-o)
            # File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        --port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
        --shutdown-timeout)
            COMPREPLY=( $(compgen -W "5s 10s 30s 1m" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _matsteps_completions matsteps
`
	_, err := fmt.Fprintf(out, script, strings.Join(themes, " "), strings.Join(formats, " "))
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, themes, formats []string) error {
	script := `#compdef matsteps

# Zsh completion script for matsteps
# Add this to your ~/.zshrc or place in $fpath

_matsteps() {
    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '--theme[Viewer theme]:theme:(%s)' \
        '--format[Output format]:format:(%s)' \
        '--server[Start the HTTP viewer]' \
        '--port[Server port]:port:(8080 3000 5000 9000)' \
        '--host[Listen interface]:host:(127.0.0.1 0.0.0.0)' \
        '--interactive[Start interactive REPL mode]' \
        '(-o --output)'{-o,--output}'[HTML document path]:file:_files' \
        '(-q --quiet)'{-q,--quiet}'[Print only the result matrix]' \
        '--no-color[Disable colored output]' \
        '--mathjax-url[MathJax script URL]:url:' \
        '--log-level[Log level]:level:(debug info warn error)' \
        '--rate-limit[Requests per minute per client]:number:' \
        '--shutdown-timeout[Graceful shutdown timeout]:duration:(5s 10s 30s 1m)' \
        '--completion[Generate completion script]:shell:(bash zsh fish powershell)' \
        '*:matrix entry:'
}

_matsteps "$@"
`
	_, err := fmt.Fprintf(out, script, strings.Join(themes, " "), strings.Join(formats, " "))
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, themes, formats []string) error {
	script := `# Fish completion script for matsteps
# Add this to ~/.config/fish/completions/matsteps.fish

# Disable file completion by default
complete -c matsteps -f

# Help and version
complete -c matsteps -s h -l help -d 'Show help message'
complete -c matsteps -s V -l version -d 'Show version information'

# Rendering
complete -c matsteps -l theme -d 'Viewer theme' -xa '%s'
complete -c matsteps -l format -d 'Output format' -xa '%s'
complete -c matsteps -l mathjax-url -d 'MathJax script URL' -x

# Output options
complete -c matsteps -s o -l output -d 'HTML document path' -rF
complete -c matsteps -s q -l quiet -d 'Print only the result matrix'
complete -c matsteps -l no-color -d 'Disable colored output'
complete -c matsteps -l log-level -d 'Log level' -xa 'debug info warn error'

# Server mode
complete -c matsteps -l server -d 'Start the HTTP viewer'
complete -c matsteps -l port -d 'Server port' -xa '8080 3000 5000 9000'
complete -c matsteps -l host -d 'Listen interface' -xa '127.0.0.1 0.0.0.0'
complete -c matsteps -l rate-limit -d 'Requests per minute per client' -x
complete -c matsteps -l shutdown-timeout -d 'Graceful shutdown timeout' -xa '5s 10s 30s 1m'

# Interactive and completion
complete -c matsteps -l interactive -d 'Start interactive REPL mode'
complete -c matsteps -l completion -d 'Generate completion script' -xa 'bash zsh fish powershell'
`
	_, err := fmt.Fprintf(out, script, strings.Join(themes, " "), strings.Join(formats, " "))
	return err
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, themes, formats []string) error {
	script := `# PowerShell completion script for matsteps
# Add this to your $PROFILE

$matstepsThemes = @(%s)
$matstepsFormats = @(%s)

Register-ArgumentCompleter -CommandName 'matsteps' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        @{Name = '-h'; Description = 'Show help message' }
        @{Name = '--help'; Description = 'Show help message' }
        @{Name = '-V'; Description = 'Show version information' }
        @{Name = '--version'; Description = 'Show version information' }
        @{Name = '--theme'; Description = 'Viewer theme' }
        @{Name = '--format'; Description = 'Output format' }
        @{Name = '--server'; Description = 'Start the HTTP viewer' }
        @{Name = '--port'; Description = 'Server port' }
        @{Name = '--host'; Description = 'Listen interface' }
        @{Name = '--interactive'; Description = 'Start interactive REPL mode' }
        @{Name = '-o'; Description = 'HTML document path' }
        @{Name = '--output'; Description = 'HTML document path' }
        @{Name = '-q'; Description = 'Print only the result matrix' }
        @{Name = '--quiet'; Description = 'Print only the result matrix' }
        @{Name = '--no-color'; Description = 'Disable colored output' }
        @{Name = '--mathjax-url'; Description = 'MathJax script URL' }
        @{Name = '--log-level'; Description = 'Log level' }
        @{Name = '--rate-limit'; Description = 'Requests per minute per client' }
        @{Name = '--shutdown-timeout'; Description = 'Graceful shutdown timeout' }
        @{Name = '--completion'; Description = 'Generate completion script' }
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
        '--theme' {
            $matstepsThemes | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--format' {
            $matstepsFormats | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--completion' {
            @('bash', 'zsh', 'fish', 'powershell') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
        '--log-level' {
            @('debug', 'info', 'warn', 'error') | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`
	_, err := fmt.Fprintf(out, script, quoteList(themes), quoteList(formats))
	return err
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
