package robowriter

import (
	"io"
	"iter"
	"strings"
	"text/template"
	"unicode/utf8"
)

// maxTemplateSize limits the size of a text template.
const maxTemplateSize = 1048576

var tmplfuncs = template.FuncMap{
	"count":      count,
	"count_step": countStep,
	"strlen":     utf8.RuneCountInString,
	"strcat":     strcat,
	"repeat":     strings.Repeat,
}

// ExpandTemplate executes the text read from r as a Go template and writes
// the result to w.
func ExpandTemplate(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, maxTemplateSize))
	if err != nil {
		return err
	}
	tmpl, err := template.New("").Funcs(tmplfuncs).Parse(string(data))
	if err != nil {
		return err
	}
	return tmpl.Execute(w, nil)
}

// count returns an iterator that will count from [start..end]
func count(start, end int) iter.Seq[int] {
	return countStep(start, end, 1)
}

func countStep(start, end, step int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if step <= 0 {
			return
		}
		for i := start; i <= end; i += step {
			if !yield(i) {
				return
			}
		}
	}
}

func strcat(s1, s2 string) string {
	return s1 + s2
}
