// CLAUDE:SUMMARY File upload — whitelisted extensions, collision-safe stored names under the uploads dir
package api

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var allowedExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".pdf": true, ".zip": true, ".docx": true, ".xlsx": true,
}

// handleUpload stores one multipart file and returns the path the card editor
// writes into image_urls. Names carry a timestamp and a random suffix so two
// operators uploading "screenshot.png" never collide.
func (a *API) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.uploads.MaxUploadMB<<20)
	if err := r.ParseMultipartForm(a.uploads.MaxUploadMB << 20); err != nil {
		jsonError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "no file part in the request", http.StatusBadRequest)
		return
	}
	defer file.Close()

	base := sanitizeFilename(header.Filename)
	if base == "" {
		jsonError(w, "no selected file", http.StatusBadRequest)
		return
	}
	if !allowedExtensions[strings.ToLower(filepath.Ext(base))] {
		jsonError(w, "file type not allowed", http.StatusBadRequest)
		return
	}

	saveName := time.Now().Format("20060102150405") + "_" + uuid.NewString()[:8] + "_" + base
	dst, err := os.Create(filepath.Join(a.uploads.Dir, saveName))
	if err != nil {
		storeError(w, err)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		storeError(w, err)
		return
	}

	jsonResp(w, http.StatusOK, map[string]string{
		"file_path": "static/uploads/" + saveName,
	})
}

// sanitizeFilename strips any path components and reduces the name to a safe
// character set, keeping the extension.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	cleaned := strings.Trim(b.String(), "._")
	if cleaned == "" || !strings.Contains(cleaned, ".") {
		return ""
	}
	return cleaned
}
