package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/obsi2/bundler/internal/errors"
	"github.com/obsi2/bundler/internal/testutil"
)

const wantBundle = `package.preload["obsi2"] = function(...)
return 1
end
package.preload["obsi2.util.helpers"] = function(...)
return 2
end
return package.preload["obsi2"]()
`

// wantLicense is the default license block: project first, then the
// bundled libraries.
const wantLicense = "--[==[ OBSI 2 license\nMIT\n]==]\n" +
	"--[==[ PIXELBOX license\nPixelbox MIT\n]==]\n" +
	"--[==[ NBSTUNES license\nNBS MIT\n]==]\n"

// workspace creates a project directory, makes it the working directory
// and clears any bundler environment.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	for _, key := range []string{"CONFIG", "ROOT", "NAMESPACE", "OUTPUT", "MINIFIED", "SORT", "ONDUPLICATE", "LOG_TIMESTAMPS"} {
		t.Setenv("OBSI_BUNDLE_"+key, "")
		require.NoError(t, os.Unsetenv("OBSI_BUNDLE_"+key))
	}
	dir := testutil.Tree(t, files)
	t.Chdir(dir)
	return dir
}

func defaultTree() map[string]string {
	return map[string]string{
		"obsi2/init.lua":         "return 1\n",
		"obsi2/util/helpers.lua": "return 2\n",
		"LICENSE":                "MIT\n",
		"LICENSES/PIXELBOX":      "Pixelbox MIT\n",
		"LICENSES/NBSTUNES":      "NBS MIT\n",
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBuild(t *testing.T) {
	dir := workspace(t, defaultTree())

	out, err := execute(t, "build", "--sort")
	require.NoError(t, err)
	assert.Contains(t, out, "bundled 2 modules")

	assert.Equal(t, wantBundle+wantLicense, testutil.ReadFile(t, filepath.Join(dir, "obsi2.lua")))
	assert.Equal(t, wantLicense, testutil.ReadFile(t, filepath.Join(dir, "obsi2.min.lua")))
	assert.FileExists(t, filepath.Join(dir, "obsi2.manifest.yaml"))
}

func TestBuild_MissingThirdPartyLicense(t *testing.T) {
	files := defaultTree()
	delete(files, "LICENSES/NBSTUNES")
	dir := workspace(t, files)

	_, err := execute(t, "build", "--sort")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))

	got := testutil.ReadFile(t, filepath.Join(dir, "obsi2.lua"))
	assert.Contains(t, got, "--[==[ PIXELBOX license")
	assert.NotContains(t, got, "NBSTUNES")
}

func TestBuild_NoManifest(t *testing.T) {
	dir := workspace(t, defaultTree())

	_, err := execute(t, "build", "--sort", "--no-manifest")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "obsi2.manifest.yaml"))
}

func TestBuild_RootArgAndFlags(t *testing.T) {
	dir := workspace(t, map[string]string{
		"src/init.lua":      "return 'game'\n",
		"LICENSE":           "MIT\n",
		"LICENSES/PIXELBOX": "Pixelbox MIT\n",
		"LICENSES/NBSTUNES": "NBS MIT\n",
	})

	_, err := execute(t, "build", "src", "--namespace", "game", "-o", "game.lua")
	require.NoError(t, err)

	got := testutil.ReadFile(t, filepath.Join(dir, "game.lua"))
	assert.Contains(t, got, `package.preload["game"] = function(...)`)
	assert.Contains(t, got, `return package.preload["game"]()`)
}

func TestBuild_MissingRoot(t *testing.T) {
	dir := workspace(t, map[string]string{"LICENSE": "MIT\n"})

	_, err := execute(t, "build")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.NoFileExists(t, filepath.Join(dir, "obsi2.lua"))
}

func TestBuild_Duplicate(t *testing.T) {
	files := defaultTree()
	files["obsi2/util.lua"] = "return 3\n"
	files["obsi2/util/init.lua"] = "return 4\n"
	workspace(t, files)

	_, err := execute(t, "build", "--sort")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitDuplicate, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "build", "--sort", "--on-duplicate", "warn")
	assert.NoError(t, err)
}

func TestBuild_InvalidPolicy(t *testing.T) {
	workspace(t, defaultTree())

	_, err := execute(t, "build", "--on-duplicate", "ignore")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestBundleThenLicense(t *testing.T) {
	dir := workspace(t, defaultTree())

	_, err := execute(t, "bundle", "--sort")
	require.NoError(t, err)
	assert.Equal(t, wantBundle, testutil.ReadFile(t, filepath.Join(dir, "obsi2.lua")))
	assert.Equal(t, "", testutil.ReadFile(t, filepath.Join(dir, "obsi2.min.lua")))

	out, err := execute(t, "license")
	require.NoError(t, err)
	assert.Contains(t, out, "appended 3 license sections")
	assert.Equal(t, wantBundle+wantLicense, testutil.ReadFile(t, filepath.Join(dir, "obsi2.lua")))
	assert.Equal(t, wantLicense, testutil.ReadFile(t, filepath.Join(dir, "obsi2.min.lua")))
}

func TestLicense_WithoutBundle(t *testing.T) {
	dir := workspace(t, defaultTree())

	_, err := execute(t, "license")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
	assert.NoFileExists(t, filepath.Join(dir, "obsi2.min.lua"))
}

func TestList(t *testing.T) {
	workspace(t, defaultTree())

	out, err := execute(t, "list", "--sort")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "obsi2.util.helpers")
	assert.Contains(t, out, "util/helpers.lua")
}

func TestDiff(t *testing.T) {
	dir := workspace(t, defaultTree())

	_, err := execute(t, "build", "--sort")
	require.NoError(t, err)

	out, err := execute(t, "diff", "--sort")
	require.NoError(t, err)
	assert.Contains(t, out, "no changes")

	testutil.WriteFile(t, dir, "obsi2/extra.lua", "return 5\n")
	out, err = execute(t, "diff", "--sort")
	require.NoError(t, err)
	assert.Contains(t, out, "obsi2.extra")
	assert.Contains(t, out, "1 added")
}

func TestDiff_WithoutManifest(t *testing.T) {
	workspace(t, defaultTree())

	_, err := execute(t, "diff")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))
}

func TestConfigInitAndVet(t *testing.T) {
	dir := workspace(t, defaultTree())

	_, err := execute(t, "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitNotFound, oerrors.ExitCodeFromError(err))

	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "obsi-bundle.yaml")
	assert.FileExists(t, filepath.Join(dir, "obsi-bundle.yaml"))

	_, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))

	_, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	out, err = execute(t, "config", "vet")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema validation passed")
}

func TestConfigVet_Invalid(t *testing.T) {
	files := defaultTree()
	files["custom.yaml"] = "extension: .md\n"
	workspace(t, files)

	_, err := execute(t, "--config", "custom.yaml", "config", "vet")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
}

func TestConfigFile_DrivesBuild(t *testing.T) {
	files := map[string]string{
		"lib/init.lua":     "return 'lib'\n",
		"COPYING":          "BSD\n",
		"obsi-bundle.yaml": "root: lib\nnamespace: lib\noutput: lib.lua\nminified: \"\"\nmanifest: false\nlicenses:\n  - title: lib\n    path: COPYING\n",
	}
	dir := workspace(t, files)

	_, err := execute(t, "build")
	require.NoError(t, err)

	want := "package.preload[\"lib\"] = function(...)\nreturn 'lib'\nend\nreturn package.preload[\"lib\"]()\n" +
		"--[==[ lib license\nBSD\n]==]\n"
	assert.Equal(t, want, testutil.ReadFile(t, filepath.Join(dir, "lib.lua")))
	assert.NoFileExists(t, filepath.Join(dir, "obsi2.min.lua"))
	assert.NoFileExists(t, filepath.Join(dir, "lib.manifest.yaml"))
}

func TestExplicitConfigMissing(t *testing.T) {
	workspace(t, defaultTree())

	_, err := execute(t, "--config", "absent.yaml", "build")
	require.Error(t, err)
	assert.Equal(t, oerrors.ExitGeneralError, oerrors.ExitCodeFromError(err))
}
