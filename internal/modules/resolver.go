package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kestrel-lang/kestrel/internal/config"
	"github.com/kestrel-lang/kestrel/internal/fsiface"
)

// ModulePath is the outcome of resolving a dotted import name to a
// directory or file on disk, plus which kind of root it was found
// under (spec.md §4.C "Resolver exposes find_module").
type ModulePath struct {
	Dir        string
	Kind       Kind
	IsStub     bool
	PackageDir string // the containing search-path root, for qualified-name calculation
}

// Resolver implements §4.C's PathResolver plus the §6.4 typeshed
// layout and the supplemental -stubs search order (SPEC_FULL.md [EXP]
// Supplemental feature 4).
type Resolver struct {
	fs fsiface.FileSystem

	userSearchPaths []string
	siteDir         string
	typeshedRoot    string
	languageVersion string
}

func NewResolver(fs fsiface.FileSystem, typeshedRoot, siteDir, languageVersion string) *Resolver {
	return &Resolver{fs: fs, typeshedRoot: typeshedRoot, siteDir: siteDir, languageVersion: languageVersion}
}

// SetUserSearchPaths implements §4.C's set_user_search_paths.
func (r *Resolver) SetUserSearchPaths(paths []string) {
	r.userSearchPaths = paths
}

func (r *Resolver) SiteDir() string         { return r.siteDir }
func (r *Resolver) TypeshedRoot() string    { return r.typeshedRoot }
func (r *Resolver) LanguageVersion() string { return r.languageVersion }

// FindModule resolves a dotted import name, trying in order: (1) an
// adjacent `-stubs` directory next to each user search root (supplemental
// search order, SPEC_FULL.md), (2) user search paths, (3) site-packages,
// its `-stubs` directory first, (4) typeshed.
func (r *Resolver) FindModule(name string) (*ModulePath, bool) {
	parts := strings.Split(name, ".")

	for _, root := range r.userSearchPaths {
		if p, ok := r.tryStubsDir(root, parts); ok {
			return p, true
		}
	}
	for _, root := range r.userSearchPaths {
		if p, ok := r.tryRoot(root, parts, KindUser); ok {
			return p, true
		}
	}
	if r.siteDir != "" {
		if p, ok := r.tryStubsDir(r.siteDir, parts); ok {
			return p, true
		}
		if p, ok := r.tryRoot(r.siteDir, parts, KindLibrary); ok {
			return p, true
		}
	}
	for _, root := range r.typeshedSearchRoots() {
		if p, ok := r.tryRoot(root, parts, KindStub); ok {
			p.IsStub = true
			return p, true
		}
	}
	return nil, false
}

// tryStubsDir looks for `<root>/<pkg>-stubs/...` (supplemental feature:
// project-local stub packages take priority over typeshed, per the
// convention used by real `*-stubs` distributions).
func (r *Resolver) tryStubsDir(root string, parts []string) (*ModulePath, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	stubRoot := filepath.Join(root, parts[0]+config.StubPackageSuffix)
	if !r.fs.IsDir(stubRoot) {
		return nil, false
	}
	dir := filepath.Join(append([]string{stubRoot}, parts[1:]...)...)
	if r.fs.IsDir(dir) {
		return &ModulePath{Dir: dir, Kind: KindStub, IsStub: true, PackageDir: root}, true
	}
	return nil, false
}

func (r *Resolver) tryRoot(root string, parts []string, kind Kind) (*ModulePath, bool) {
	dir := filepath.Join(append([]string{root}, parts...)...)
	if r.fs.IsDir(dir) {
		return &ModulePath{Dir: dir, Kind: kind, PackageDir: root}, true
	}
	file := dir + config.SourceFileExt
	if r.fs.Exists(file) {
		return &ModulePath{Dir: filepath.Dir(file), Kind: kind, PackageDir: root}, true
	}
	return nil, false
}

// typeshedSearchRoots returns the ordered directories spec.md §6.4
// names: stdlib/<ver>, stdlib/<major>, stdlib/2and3, then the same
// triple under third_party/.
func (r *Resolver) typeshedSearchRoots() []string {
	if r.typeshedRoot == "" {
		return nil
	}
	major := r.languageVersion
	if i := strings.IndexByte(major, '.'); i >= 0 {
		major = major[:i]
	}
	rel := []string{
		fmt.Sprintf(config.TypeshedStdlibDirFmt, r.languageVersion),
		fmt.Sprintf(config.TypeshedStdlibDirFmt, major),
		config.TypeshedStdlib2and3,
	}
	var out []string
	for _, base := range []string{"", config.TypeshedThirdParty} {
		for _, p := range rel {
			out = append(out, filepath.Join(r.typeshedRoot, base, p))
		}
	}
	return out
}

// GetPackages lists immediate sub-packages of dir (spec.md §4.C
// get_packages), used to enumerate a namespace package's members.
func (r *Resolver) GetPackages(dir string) []string {
	entries, err := r.fs.ListEntries(dir, "*", false)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir {
			names = append(names, filepath.Base(e.Path))
		}
	}
	return names
}

// detectSourceFiles lists source files directly inside dir, matching
// the teacher's detectPackageExtension/hasSourceFiles helpers in
// loader.go generalized to config.SourceFileExtensions.
func detectSourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(e.Name(), ext) {
				files = append(files, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	return files, nil
}
