package router

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// spaHandler 提供前端 build 檔案, 找不到的路徑回傳 index.html
type spaHandler struct {
	dir        string
	fileServer http.Handler
}

func newSPAHandler(dir string) *spaHandler {
	return &spaHandler{
		dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
	}
}

func (s *spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	clean := path.Clean("/" + r.URL.Path)
	info, err := os.Stat(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
		return
	}
	s.fileServer.ServeHTTP(w, r)
}
