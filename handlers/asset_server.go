package handlers

import (
	"io"
	"log"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/shifo-uz/clinicbackend/media"
)

// AssetServer streams stored uploads back to clients. It serves whatever the
// configured store holds, so the same URLs work on the local and minio
// drivers.
type AssetServer struct {
	Store media.Store
}

func NewAssetServer(store media.Store) *AssetServer {
	return &AssetServer{Store: store}
}

// ServeHTTP handles GET /uploads/*.
func (s *AssetServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	urlPath := path.Clean(r.URL.Path)
	if !strings.HasPrefix(urlPath, "/uploads/") || strings.Contains(urlPath, "..") {
		http.NotFound(w, r)
		return
	}

	asset, err := s.Store.Open(r.Context(), urlPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer asset.Close()

	if contentType := mime.TypeByExtension(path.Ext(urlPath)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, asset); err != nil {
		log.Printf("handlers: error streaming asset %s: %v", urlPath, err)
	}
}
