package view

import (
	"html/template"
	"time"
)

var funcs = template.FuncMap{
	"year": func() int { return time.Now().Year() },
}
