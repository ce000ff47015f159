package codebuild

import (
	"context"
	"fmt"
	"io"

	"github.com/sofmeright/testdispatch/src/dispatch"
)

// DryRun prints each invocation instead of starting it.
type DryRun struct {
	Writer io.Writer
}

// StartBuild writes inv to the writer and returns a placeholder handle.
func (d *DryRun) StartBuild(_ context.Context, inv dispatch.Invocation) (*dispatch.BuildHandle, error) {
	fmt.Fprintf(d.Writer, "start-build %s @ %s\n", inv.Project, inv.SourceVersion)
	for _, o := range inv.Overrides {
		fmt.Fprintf(d.Writer, "    %s=%s\n", o.Name, o.Value)
	}
	return &dispatch.BuildHandle{ID: inv.Project + ":dry-run"}, nil
}
