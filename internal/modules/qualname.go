package modules

import (
	"crypto/sha256"
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/kestrel-lang/kestrel/internal/config"
)

var distInfoPattern = regexp.MustCompile(`^(.+)-([^-]+)\.dist-info$`)

// CalculateQualifiedName implements spec.md §4.C's qualified-name
// policy: site-packages versioned dirs win, then the standard library,
// then a content-hash digest for everything else (rationale: "cache
// stability across versions").
func CalculateQualifiedName(name, moduleDir, siteDir, stdlibDir, langVersion string) string {
	if siteDir != "" && isUnder(moduleDir, siteDir) {
		if version, ok := siblingDistInfoVersion(moduleDir, name); ok {
			return name + "(" + version + ")"
		}
	}
	if stdlibDir != "" && isUnder(moduleDir, stdlibDir) {
		return name + "(" + langVersion + ")"
	}
	return name + "." + digestModule(moduleDir)
}

func isUnder(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// siblingDistInfoVersion looks for exactly one `<name>-<version>.dist-info`
// directory next to moduleDir (spec.md §4.C: "exactly one sibling
// directory matches").
func siblingDistInfoVersion(moduleDir, name string) (string, bool) {
	parent := filepath.Dir(moduleDir)
	entries, err := os.ReadDir(parent)
	if err != nil {
		return "", false
	}
	var matches []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		m := distInfoPattern.FindStringSubmatch(e.Name())
		if m != nil && m[1] == name {
			matches = append(matches, m[2])
		}
	}
	if len(matches) != 1 {
		return "", false
	}
	return matches[0], true
}

// digestModule hashes the sizes of every source file under dir into a
// URL-safe base64 digest (spec.md §4.C). Sizes, not contents, keep this
// cheap for large stub trees while still changing whenever a file is
// added, removed, or resized.
func digestModule(dir string) string {
	var files []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	sort.Strings(files)

	h := sha256.New()
	for _, f := range files {
		info, err := os.Stat(f)
		size := int64(-1)
		if err == nil {
			size = info.Size()
		}
		h.Write([]byte(f))
		h.Write([]byte{0})
		h.Write([]byte{byte(size), byte(size >> 8), byte(size >> 16), byte(size >> 24)})
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))[:16]
}
