// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/readwell/auth"
	"github.com/danielhkuo/readwell/format"
	"github.com/danielhkuo/readwell/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"index.html":  parseTemplate("index.html"),
	"search.html": parseTemplate("search.html"),
	"book.html":   parseTemplate("book.html"),
	"error.html":  parseTemplate("error.html"),
}

var funcs = template.FuncMap{
	"stars": starRow,
}

func parseTemplate(filename string) *template.Template {
	return template.Must(template.New("base.html").Funcs(funcs).
		ParseFS(templateFS, "templates/base.html", "templates/"+filename))
}

// starRow marks which of the five star positions are filled
func starRow(n int) []bool {
	row := make([]bool, format.MaxRating)
	for i := range row {
		row[i] = i < n
	}
	return row
}

// pageData is what every template receives
type pageData struct {
	User    string
	Year    int
	Flashes []auth.Flash
	Data    interface{}
}

type errorPage struct {
	Status  int
	Title   string
	Message string
}

// Renderer executes page templates with the session's user and flashes
type Renderer struct {
	sessions *auth.Sessions
}

func NewRenderer(sessions *auth.Sessions) *Renderer {
	return &Renderer{sessions: sessions}
}

// Render writes the named page. Flashes are popped before anything is
// written so the session cookie update goes out with the headers.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	tmpl, ok := pages[name]
	if !ok {
		slog.Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	flashes, err := rd.sessions.Flashes(w, r)
	if err != nil {
		slog.Error("failed to read flashes", "error", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "base.html", pageData{
		User:    rd.sessions.CurrentUser(r),
		Year:    time.Now().Year(),
		Flashes: flashes,
		Data:    data,
	})
	if err != nil {
		slog.Error("failed to execute template", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// Error renders the error page with status
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, r, status, "error.html", errorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	})
}

// redirectWithFlash queues a flash for the next page and redirects to url
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions *auth.Sessions, category, message, url string) {
	if err := sessions.AddFlash(w, r, category, message); err != nil {
		slog.Error("failed to add flash", "error", err)
	}
	http.Redirect(w, r, url, http.StatusFound)
}

// flashDanger is the common case of redirectWithFlash
func flashDanger(w http.ResponseWriter, r *http.Request, sessions *auth.Sessions, message, url string) {
	redirectWithFlash(w, r, sessions, models.FlashDanger, message, url)
}
