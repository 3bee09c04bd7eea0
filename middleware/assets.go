package middleware

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"sync"

	"page_flow_app_go/config"
)

var (
	assetVersions     map[string]string
	assetVersionsOnce sync.Once
)

// trackedAssets are the static files stamped with a content hash for
// cache busting.
var trackedAssets = []string{
	"static/css/style.css",
	"static/js/app.js",
	"static/js/editor.js",
	"static/images/favicon.png",
}

// InitAssetVersions computes file hashes for cache busting at startup
func InitAssetVersions() {
	assetVersionsOnce.Do(func() {
		assetVersions = make(map[string]string)
		for _, asset := range trackedAssets {
			version := computeFileHash(asset)
			if version == "" {
				version = "1"
			}
			assetVersions[asset] = version
		}
		log.Printf("[INFO] Asset versions initialized for %d files", len(assetVersions))
	})
}

// AssetURL returns the public URL for a static asset, including the
// configured asset prefix and a version query for cache busting.
func AssetURL(cfg *config.Config, assetPath string) string {
	prefix := "/static"
	if cfg != nil && cfg.AssetPrefix != "" {
		prefix = cfg.AssetPrefix
	}
	basePath := ""
	if cfg != nil {
		basePath = strings.TrimSuffix(cfg.BasePath, "/")
	}

	url := basePath + path.Join(prefix, strings.TrimPrefix(assetPath, "static/"))
	if version, ok := assetVersions[assetPath]; ok {
		return url + "?v=" + version
	}
	return url
}

func computeFileHash(filePath string) string {
	file, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return ""
	}
	return hex.EncodeToString(hash.Sum(nil))[:8]
}
