package output

import (
	"os"

	"github.com/sofmeright/testdispatch/src/buildenv"
)

// CI environment detection.

func IsCI() bool {
	return os.Getenv("CI") == "true" || IsCodeBuild()
}

// IsCodeBuild reports whether the process runs inside an AWS CodeBuild job.
func IsCodeBuild() bool {
	return os.Getenv("CODEBUILD_BUILD_ID") != ""
}

// BuildContextKV renders the build context as context-block pairs.
// Empty values are omitted.
func BuildContextKV(ctx buildenv.Context) []KV {
	var kv []KV
	add := func(key, value string) {
		if value != "" {
			kv = append(kv, KV{Key: key, Value: value})
		}
	}
	add("context", ctx.BuildContext)
	add("project", ctx.ProjectName())
	add("framework", ctx.Framework)
	add("image", ctx.ImageType)
	add("pr", ctx.PRNumber)
	if sha := ctx.SourceVersion; len(sha) > 12 {
		add("source", sha[:12])
	} else {
		add("source", sha)
	}
	return kv
}
