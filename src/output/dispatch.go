package output

import (
	"io"
	"strings"
	"time"

	"github.com/sofmeright/testdispatch/src/dispatch"
)

// DispatchSummary renders the jobs a run started and the test types it
// skipped. A non-nil runErr marks the summary failed.
func DispatchSummary(w io.Writer, res *dispatch.Result, runErr error, elapsed time.Duration, color bool) {
	sec := NewSection(w, "Test Jobs", elapsed, color)
	defer sec.Close()

	if len(res.Dispatched) == 0 && len(res.Skipped) == 0 && runErr == nil {
		sec.Row("%s  no test jobs started", skipped.icon(color))
		return
	}

	for _, d := range res.Dispatched {
		sec.Row("%s  %-36s %d image(s)%s  %s", started.icon(color), d.Job, d.Images, versions(d.Versions), d.Build.ID)
	}
	for _, s := range res.Skipped {
		sec.Row("%s  %-36s %s", skipped.icon(color), s.TestType, s.Reason)
	}

	if runErr != nil {
		sec.Separator()
		sec.Row("%s  %s", failed.icon(color), runErr)
	}
}

// versions renders " v2.1.0,2.2.0", or nothing when no tag carried a version.
func versions(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return " v" + strings.Join(vs, ",")
}
