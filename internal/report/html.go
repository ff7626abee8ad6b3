package report

import (
	"html/template"
	"io"

	"github.com/dustin/go-humanize"
)

var htmlFuncs = template.FuncMap{
	"bytes": func(n uint64) string { return humanize.Bytes(n) },
}

var htmlDoc = template.Must(template.New("report").Funcs(htmlFuncs).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>d2fn duplicate report</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; width: 100%; }
td, th { border: 1px solid #ccc; padding: 0.3rem 0.6rem; text-align: left; }
.keeper { font-weight: bold; }
.savings { color: #2a7; }
</style>
</head>
<body>
<h1>Duplicate report</h1>
<p>{{len .Groups}} group(s), {{bytes .TotalSavings}} reclaimable.</p>
{{range .Groups}}
<table>
<tr><th colspan="2">Savings: {{bytes .Savings}}</th></tr>
<tr class="keeper"><td>keeper</td><td>{{.Keeper.Path}} (inode {{.Keeper.Ino}}, {{bytes .Keeper.Size}})</td></tr>
{{range .Duplicates}}
<tr><td>duplicate</td><td>{{.Path}} (inode {{.Ino}}, {{bytes .Size}})</td></tr>
{{end}}
</table>
{{end}}
</body>
</html>
`))

type htmlData struct {
	Groups       []GroupView
	TotalSavings uint64
}

// WriteHTML renders views as a self-contained HTML document to w.
func WriteHTML(w io.Writer, views []GroupView) error {
	return htmlDoc.Execute(w, htmlData{Groups: views, TotalSavings: TotalSavings(views)})
}
