package web

import (
	"embed"
	"net/http"
)

// Static embeds the compiled frontend assets.
//
//go:embed static/*
var Static embed.FS

// ServeIndex serves the single page application shell.
func ServeIndex(w http.ResponseWriter, r *http.Request) {
	data, err := Static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
