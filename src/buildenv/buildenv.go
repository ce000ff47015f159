// Package buildenv reads the CodeBuild environment a test dispatch runs in.
// Nothing outside this package and the CLI touches process environment
// variables; everything downstream receives a Context value.
package buildenv

import (
	"os"
	"path/filepath"
	"strings"
)

// PRContext is the BUILD_CONTEXT value of a pull-request build.
const PRContext = "PR"

// Default file names, resolved under $PYTHONPATH/src.
const (
	TestEnvFile        = "test_env.json"
	TestTypeImagesFile = "test_type_images.json"
)

// Context holds the build metadata consumed by the dispatcher.
type Context struct {
	BuildContext  string // BUILD_CONTEXT: "PR", "MAINLINE", "NIGHTLY", ...
	Framework     string // FRAMEWORK
	ImageType     string // IMAGE_TYPE: "training", "inference"
	PRNumber      string // PR_NUMBER
	SourceVersion string // CODEBUILD_RESOLVED_SOURCE_VERSION
	BuildspecFile string // FRAMEWORK_BUILDSPEC_FILE
	BuildID       string // CODEBUILD_BUILD_ID: "<project>:<uuid>"
	PythonPath    string // PYTHONPATH
}

// FromEnv builds a Context from the process environment.
func FromEnv() Context {
	return FromLookup(os.Getenv)
}

// FromLookup builds a Context using getenv for every variable.
func FromLookup(getenv func(string) string) Context {
	return Context{
		BuildContext:  getenv("BUILD_CONTEXT"),
		Framework:     getenv("FRAMEWORK"),
		ImageType:     getenv("IMAGE_TYPE"),
		PRNumber:      getenv("PR_NUMBER"),
		SourceVersion: getenv("CODEBUILD_RESOLVED_SOURCE_VERSION"),
		BuildspecFile: getenv("FRAMEWORK_BUILDSPEC_FILE"),
		BuildID:       getenv("CODEBUILD_BUILD_ID"),
		PythonPath:    getenv("PYTHONPATH"),
	}
}

// IsPR reports whether this is a pull-request build.
func (c Context) IsPR() bool {
	return c.BuildContext == PRContext
}

// ProjectName returns the CodeBuild project running this build.
// CODEBUILD_BUILD_ID has the form "project-name:build-uuid".
func (c Context) ProjectName() string {
	name, _, _ := strings.Cut(c.BuildID, ":")
	return name
}

// TestEnvPath returns the default location of the base env-override file.
func (c Context) TestEnvPath() string {
	return c.srcPath(TestEnvFile)
}

// TestTypeImagesPath returns the default location of the test-type image map.
func (c Context) TestTypeImagesPath() string {
	return c.srcPath(TestTypeImagesFile)
}

func (c Context) srcPath(name string) string {
	root := c.PythonPath
	if root == "" {
		root = "."
	}
	// PYTHONPATH may carry several entries; the repo root is the first.
	if idx := strings.Index(root, string(os.PathListSeparator)); idx >= 0 {
		root = root[:idx]
	}
	return filepath.Join(root, "src", name)
}
