package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("R$ %.2f", v) },
	"mul":   func(price float64, qty int) float64 { return price * float64(qty) },
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home.html", "product.html", "cart.html"} {
		pages[name] = template.Must(
			template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name),
		)
	}
}

func render(w http.ResponseWriter, log logrus.FieldLogger, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].Execute(w, data); err != nil {
		log.WithError(err).WithField("template", name).Error("render failed")
	}
}
