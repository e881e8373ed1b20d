package server

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageTemplates 把三个页面模板编进二进制，测试里也能直接渲染。
func pageTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
