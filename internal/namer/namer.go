// Package namer maps module file paths to dotted namespace names.
package namer

import "strings"

// IndexName is the basename of a directory's index module.
const IndexName = "init"

// Name returns the dotted module name for a slash-separated path relative
// to the tree root. ext is the source extension including its dot; that
// many trailing characters are removed before separators become dots.
//
// A trailing "init" segment collapses onto its directory, so "a/init.lua"
// and the package "a" share one name. The root index module ("init.lua")
// names the namespace root itself.
func Name(path, root, ext string) string {
	stem := path
	if len(stem) >= len(ext) {
		stem = stem[:len(stem)-len(ext)]
	}
	stem = strings.ReplaceAll(stem, "/", ".")
	stem = CollapseIndex(stem)

	if stem == "" {
		return root
	}
	return root + "." + stem
}

// CollapseIndex removes a single trailing "init" segment from a dotted stem.
func CollapseIndex(stem string) string {
	if stem == IndexName {
		return ""
	}
	return strings.TrimSuffix(stem, "."+IndexName)
}
