// Package dispatch decides which CodeBuild test jobs a PR build starts and
// starts them.
//
// A run is a single sequential pass over static inputs: the build context,
// the config flag snapshot, the base env-override file and the test-type
// image map. The first StartBuild failure ends the run.
package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sofmeright/testdispatch/src/buildenv"
	"github.com/sofmeright/testdispatch/src/buildspec"
	"github.com/sofmeright/testdispatch/src/config"
	"github.com/sofmeright/testdispatch/src/image"
)

// Invocation is one StartBuild request.
type Invocation struct {
	Project       string
	SourceVersion string
	Overrides     []EnvOverride
}

// BuildHandle identifies a started build.
type BuildHandle struct {
	ID  string
	ARN string
}

// Starter starts a build. Implemented by the CodeBuild client.
type Starter interface {
	StartBuild(ctx context.Context, inv Invocation) (*BuildHandle, error)
}

// Dispatched records a started job.
type Dispatched struct {
	TestType string
	Job      string
	Images   int
	Versions []string // framework versions of the images, lowest first
	Build    *BuildHandle
}

// Skipped records a test type that had images but started nothing.
type Skipped struct {
	TestType string
	Reason   string
}

// Result summarizes a run.
type Result struct {
	RunID      string
	Dispatched []Dispatched
	Skipped    []Skipped
}

// Dispatcher holds everything a run reads. All fields except Logger and
// Autopatch are required.
type Dispatcher struct {
	Context buildenv.Context
	Flags   config.Flags
	Starter Starter
	Logger  *zap.Logger

	// TestEnvFile is the base env-override file. It is rewritten on the
	// deep canary path.
	TestEnvFile    string
	TestImagesFile string

	// DryRun leaves TestEnvFile untouched. Overrides the deep canary path
	// would have written are kept in memory instead.
	DryRun bool

	// Autopatch reports whether the buildspec at path is an autopatch
	// build. Defaults to buildspec.AutopatchEnabled.
	Autopatch func(path string) (bool, error)

	log        *zap.Logger
	base       []EnvOverride
	baseLoaded bool
}

// Run evaluates the build and starts every applicable test job.
// On error the returned Result still lists the jobs started so far.
func (d *Dispatcher) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}
	d.base, d.baseLoaded = nil, false
	d.log = d.Logger
	if d.log == nil {
		d.log = zap.NewNop()
	}
	d.log = d.log.With(zap.String("run_id", res.RunID))

	if !d.Context.IsPR() {
		d.log.Info("not triggering test jobs", zap.String("build_context", d.Context.BuildContext))
		return res, nil
	}

	// Deep canary mode replaces every other test on this PR.
	if d.Flags.DeepCanaryMode {
		return res, d.runDeepCanary(ctx, res)
	}

	entries, err := LoadTestImages(d.TestImagesFile)
	if err != nil {
		return res, err
	}

	for _, entry := range entries {
		if err := d.runTestType(ctx, res, entry); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (d *Dispatcher) runTestType(ctx context.Context, res *Result, entry TestImages) error {
	testType := entry.TestType
	d.log.Debug("evaluating test type", zap.String("test_type", testType), zap.Strings("images", entry.Images))

	// Only start jobs for test types that have images.
	if len(entry.Images) == 0 {
		return nil
	}

	set := image.NewSet(entry.Images)
	started := false
	var reason string

	switch {
	case !TestJobEnabled(d.Flags, testType):
		reason = "disabled"
	case !ImplementedForFramework(set, testType):
		reason = "not implemented for " + set.Family().String()
		d.log.Debug("skipping test type", zap.String("test_type", testType), zap.Stringer("family", set.Family()))
	default:
		if err := d.start(ctx, res, testType, JobName(testType, set), set); err != nil {
			return err
		}
		started = true
	}

	if testType == AutoPRTests {
		enabled, err := d.autopatch()
		if err != nil {
			return err
		}
		if enabled {
			if err := d.start(ctx, res, testType, "dlc-pr-"+testType, set); err != nil {
				return err
			}
			started = true
		}
	}

	// Changes under sagemaker_tests also run the local SageMaker suite.
	if testType == SagemakerTests && d.Flags.SagemakerLocalTests {
		if err := d.start(ctx, res, testType, "dlc-pr-"+testType+"-local-test", set); err != nil {
			return err
		}
		started = true
	}

	if !started {
		res.Skipped = append(res.Skipped, Skipped{TestType: testType, Reason: reason})
	}
	return nil
}

// runDeepCanary starts the single deep canary job for this PR build, if the
// build's framework/architecture builder is enabled. Deep canaries test the
// production images matching this build instead of freshly built ones, so
// the image builder never ran and the base env file has to be written here.
func (d *Dispatcher) runDeepCanary(ctx context.Context, res *Result) error {
	f := d.Flags
	if !f.GeneralBuilder && !f.GravitonBuilder && !f.ARM64Builder {
		d.log.Info("deep canary mode: no builder enabled for this PR build", zap.String("framework", d.Context.Framework))
		res.Skipped = append(res.Skipped, Skipped{TestType: deepCanaryTests, Reason: "no builder enabled"})
		return nil
	}

	trigger := []EnvOverride{plain("TEST_TRIGGER", d.Context.ProjectName())}
	if d.DryRun {
		d.base, d.baseLoaded = trigger, true
	} else if err := WriteEnvOverrides(d.TestEnvFile, trigger); err != nil {
		return err
	}

	job := "dlc-pr-" + deepCanaryTests + "-test"
	switch {
	case f.GravitonBuilder:
		job += archSuffix(image.GravitonArch)
	case f.ARM64Builder:
		job += archSuffix(image.ARM64Arch)
	}
	return d.start(ctx, res, deepCanaryTests, job, image.Set{})
}

// start assembles the overrides for job and calls the Starter.
func (d *Dispatcher) start(ctx context.Context, res *Result, testType, job string, set image.Set) error {
	// The base file is read on first use: a run that starts nothing never
	// needs it.
	if !d.baseLoaded {
		base, err := LoadEnvOverrides(d.TestEnvFile)
		if err != nil {
			return err
		}
		d.base, d.baseLoaded = base, true
	}

	inv := Invocation{
		Project:       job,
		SourceVersion: d.Context.SourceVersion,
		Overrides:     d.overrides(d.base, job, set.String()),
	}
	d.log.Debug("starting test job",
		zap.String("job", job),
		zap.String("source_version", inv.SourceVersion),
		zap.Any("env_overrides", inv.Overrides),
	)

	handle, err := d.Starter.StartBuild(ctx, inv)
	if err != nil {
		return fmt.Errorf("starting %s: %w", job, err)
	}
	if handle == nil {
		handle = &BuildHandle{}
	}
	d.log.Info("started test job", zap.String("job", job), zap.String("build_id", handle.ID))

	res.Dispatched = append(res.Dispatched, Dispatched{
		TestType: testType,
		Job:      job,
		Images:   set.Len(),
		Versions: set.Versions(),
		Build:    handle,
	})
	return nil
}

func (d *Dispatcher) autopatch() (bool, error) {
	check := d.Autopatch
	if check == nil {
		check = buildspec.AutopatchEnabled
	}
	enabled, err := check(d.buildspecPath())
	if err != nil {
		return false, fmt.Errorf("checking autopatch build: %w", err)
	}
	return enabled, nil
}
