// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const etagCap = 64

// Routes registers the handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/maps", s.HandleMapsList)
	mux.HandleFunc("/favicon.ico", s.HandleFavicon)
	mux.HandleFunc("/favicon.svg", s.HandleFavicon)
	mux.HandleFunc("/maps/", s.HandleMap)
	mux.HandleFunc("/", s.HandleIndex)

	return mux
}

// HandleMapsList serves the JSON list of available maps.
func (s *ServerContext) HandleMapsList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.MapsList)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" && r.URL.Path != "/favicon.svg" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the default map page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	info, ok := s.Maps[s.Default]
	if !ok {
		http.NotFound(w, r)
		return
	}

	s.serveFile(w, r, info.page, "text/html; charset=utf-8")
}

// HandleMap serves a map page or its GeoJSON.
func (s *ServerContext) HandleMap(w http.ResponseWriter, r *http.Request) {
	// Path: /maps/{name}/ or /maps/{name}/locations.geojson
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")

	if len(parts) < 2 || len(parts) > 3 {
		http.NotFound(w, r)
		return
	}

	info, ok := s.Maps[parts[1]]
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 2:
		s.serveFile(w, r, info.page, "text/html; charset=utf-8")
	case parts[2] == "locations.geojson" && info.geojson != "":
		s.serveFile(w, r, info.geojson, "application/geo+json")
	default:
		http.NotFound(w, r)
	}
}

// serveFile serves a file from disk with ETag generation.
// Files removed after startup answer 404.
func (s *ServerContext) serveFile(w http.ResponseWriter, r *http.Request, path string, contentType string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	buf := make([]byte, 0, etagCap)
	buf = append(buf, '"')
	buf = strconv.AppendInt(buf, info.Size(), 16)
	buf = append(buf, '-')
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 16)
	buf = append(buf, '"')
	etag := string(buf)

	// check If-None-Match (client sent ETag)
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	w.Header().Set("Content-Type", contentType)

	http.ServeFile(w, r, path)
}
