package report

import (
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"
)

var scriptFuncs = template.FuncMap{
	"bytes": func(n uint64) string { return humanize.Bytes(n) },
	"shq":   shQuote,
}

var scriptDoc = template.Must(template.New("script").Funcs(scriptFuncs).Parse(`#!/bin/sh
# generated by d2fn — replaces each duplicate with a hard link to its group's keeper.
# review before running; this script does not ask for confirmation.
set -e

{{range .Groups}}# group savings: {{bytes .Savings}}, keeper inode {{.Keeper.Ino}}
{{$keeper := .Keeper.Path}}{{range .Duplicates}}ln -f {{shq $keeper}} {{shq .Path}}
{{end}}
{{end}}`))

type scriptData struct {
	Groups []GroupView
}

// WriteScript renders views as a POSIX shell script that replaces every
// non-keeper file with a hard link to its group's keeper (§6.4).
func WriteScript(w io.Writer, views []GroupView) error {
	return scriptDoc.Execute(w, scriptData{Groups: views})
}

// shQuote wraps s in single quotes for safe use as a shell word, escaping
// any single quote already present in s.
func shQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
