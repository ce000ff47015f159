package config

import (
	"slices"

	"github.com/sofmeright/testdispatch/src/buildenv"
)

// Flags is a read-only snapshot of the settings that decide which test jobs
// a PR build starts. The dispatcher never reads Config directly.
type Flags struct {
	DeepCanaryMode bool

	// Builder switches: whether this PR build job's framework is being
	// built at all, and for which architecture.
	GeneralBuilder  bool
	GravitonBuilder bool
	ARM64Builder    bool

	SanityTests             bool
	SecurityTests           bool
	EC2Tests                bool
	EC2BenchmarkTests       bool
	ECSTests                bool
	EKSTests                bool
	SagemakerRemoteTests    bool
	SagemakerEFATests       bool
	SagemakerRCTests        bool
	SagemakerBenchmarkTests bool
	SagemakerLocalTests     bool

	NightlyPRTestMode     bool
	UseScheduler          bool
	HeavyInstanceEC2Tests bool
	IPv6Testing           bool

	SagemakerEFAInstanceType string
	IPv6VPCName              string

	// BuildspecOverride is the buildspec configured for the running
	// project, empty when the project builds from its default.
	BuildspecOverride string
}

// Flags resolves the snapshot for the given build.
func (c *Config) Flags(ctx buildenv.Context) Flags {
	return Flags{
		DeepCanaryMode: c.Dev.DeepCanaryMode,

		GeneralBuilder:  c.GeneralBuilderEnabled(ctx.Framework),
		GravitonBuilder: c.GravitonBuilderEnabled(ctx.Framework),
		ARM64Builder:    c.ARM64BuilderEnabled(ctx.Framework),

		SanityTests:             c.Test.SanityTests,
		SecurityTests:           c.Test.SecurityTests,
		EC2Tests:                c.Test.EC2Tests,
		EC2BenchmarkTests:       c.Test.EC2BenchmarkTests,
		ECSTests:                c.Test.ECSTests,
		EKSTests:                c.Test.EKSTests,
		SagemakerRemoteTests:    c.Test.SagemakerRemoteTests,
		SagemakerEFATests:       c.Test.SagemakerEFATests,
		SagemakerRCTests:        c.Test.SagemakerRCTests,
		SagemakerBenchmarkTests: c.Test.SagemakerBenchmarkTests,
		SagemakerLocalTests:     c.Test.SagemakerLocalTests,

		NightlyPRTestMode:     c.Test.NightlyPRTestMode,
		UseScheduler:          c.Test.UseScheduler,
		HeavyInstanceEC2Tests: c.Test.EC2TestsOnHeavyInstances,
		IPv6Testing:           c.Test.EnableIPv6,

		SagemakerEFAInstanceType: c.Test.SagemakerRemoteEFAInstanceType,
		IPv6VPCName:              c.Test.IPv6VPCName,

		BuildspecOverride: c.BuildspecOverride[ctx.ProjectName()],
	}
}

// GeneralBuilderEnabled reports whether the x86 builder for framework runs
// in this PR: the framework is selected and no special mode is on.
func (c *Config) GeneralBuilderEnabled(framework string) bool {
	return c.Build.frameworkAllowed(framework) && !c.Dev.specialMode()
}

// GravitonBuilderEnabled reports whether the graviton builder for framework
// runs in this PR.
func (c *Config) GravitonBuilderEnabled(framework string) bool {
	return c.Dev.GravitonMode &&
		c.Build.frameworkAllowed(framework) &&
		slices.Contains(gravitonFrameworks, framework)
}

// ARM64BuilderEnabled reports whether the arm64 builder for framework runs
// in this PR.
func (c *Config) ARM64BuilderEnabled(framework string) bool {
	return c.Dev.ARM64Mode &&
		c.Build.frameworkAllowed(framework) &&
		slices.Contains(arm64Frameworks, framework)
}
