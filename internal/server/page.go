package server

import (
	"bytes"
	"html/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

// pageTitle is the heading of the shell page.
const pageTitle = "matrix multiplication steps"

type fieldInput struct {
	Name  string
	Value string
}

type themeOption struct {
	Mode   ui.Mode
	Label  string
	Active bool
}

type shellData struct {
	Title   string
	Palette ui.Palette
	A       []fieldInput
	B       []fieldInput
	Themes  []themeOption
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
    body {
        background-color: {{.Palette.Background}};
        color: {{.Palette.Text}};
        font-family: 'Lucida Console', monospace;
        margin: 0;
        padding: 20px;
    }
    h1 {
        color: {{.Palette.Header}};
        font-size: 1.4em;
    }
    .matrices {
        display: flex;
        align-items: center;
        gap: 16px;
        margin-bottom: 12px;
    }
    .matrix {
        display: grid;
        grid-template-columns: repeat(2, 90px);
        gap: 8px;
    }
    .matrix input {
        background-color: {{.Palette.Background}};
        color: {{.Palette.Text}};
        border: 1px solid {{.Palette.Border}};
        border-radius: 6px;
        padding: 6px 8px;
        text-align: right;
    }
    .matrix input:focus {
        outline: none;
        border-color: {{.Palette.Focus}};
    }
    .times {
        font-size: 1.4em;
    }
    button {
        border-radius: 6px;
        padding: 6px 14px;
        cursor: pointer;
        font-family: inherit;
    }
    button.calculate {
        background-color: {{.Palette.Button}};
        color: #ffffff;
        border: none;
    }
    button.calculate:hover {
        background-color: {{.Palette.ButtonHover}};
    }
    .theme-switch {
        margin: 12px 0;
    }
    .theme-switch button {
        background-color: {{.Palette.Background}};
        color: {{.Palette.Text}};
        border: 1px solid {{.Palette.Border}};
    }
    .theme-switch button:disabled {
        border-color: {{.Palette.Focus}};
        cursor: default;
    }
    iframe {
        width: 100%;
        height: 70vh;
        border: 1px solid {{.Palette.Border}};
        border-radius: 6px;
    }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<form method="post" action="/calculate">
    <div class="matrices">
        <div class="matrix">{{range .A}}
            <input type="text" name="{{.Name}}" value="{{.Value}}" placeholder="0" aria-label="{{.Name}}">{{end}}
        </div>
        <span class="times">✖️</span>
        <div class="matrix">{{range .B}}
            <input type="text" name="{{.Name}}" value="{{.Value}}" placeholder="0" aria-label="{{.Name}}">{{end}}
        </div>
    </div>
    <button type="submit" class="calculate">Calculate</button>
</form>
<form method="post" action="/theme" class="theme-switch">{{range .Themes}}
    <button type="submit" name="mode" value="{{.Mode}}"{{if .Active}} disabled{{end}}>{{.Label}}</button>{{end}}
</form>
<iframe src="/view" title="Worksheet"></iframe>
</body>
</html>
`))

// renderShell builds the shell page for the active mode, keeping the
// entries last submitted in their inputs.
func renderShell(mode ui.Mode, fields service.Fields) (string, error) {
	caser := cases.Title(language.English)

	data := shellData{
		Title:   caser.String(pageTitle),
		Palette: ui.PaletteFor(mode),
	}
	half := service.FieldCount / 2
	for i, name := range service.FieldNames {
		in := fieldInput{Name: name, Value: fields[i]}
		if i < half {
			data.A = append(data.A, in)
		} else {
			data.B = append(data.B, in)
		}
	}
	for _, m := range ui.Modes {
		data.Themes = append(data.Themes, themeOption{
			Mode:   m,
			Label:  caser.String(string(m)),
			Active: m == mode,
		})
	}

	var buf bytes.Buffer
	if err := shellTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
