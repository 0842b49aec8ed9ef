// Package templates renders the server-side HTML pages. All template files
// are embedded into the binary.
package templates

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

// Render executes the named page template. The page is buffered so a
// template failure yields a clean 500 instead of a half-written body.
func Render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

// MessageData is the payload for the inline-message page.
type MessageData struct {
	Text     string
	RetryURL string
}

// Message renders an inline error message with a retry link. The response
// status is 200: these are form-flow messages, not HTTP failures.
func Message(w http.ResponseWriter, text, retryURL string) {
	Render(w, http.StatusOK, "message.html", MessageData{Text: text, RetryURL: retryURL})
}
