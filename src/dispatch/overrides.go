package dispatch

import (
	"slices"
	"strings"
)

// Baseline override names present in every started job.
var baselineNames = []string{
	"FRAMEWORK",
	"IMAGE_TYPE",
	"DLC_IMAGES",
	"PR_NUMBER",
	"NIGHTLY_PR_TEST_MODE",
	"USE_SCHEDULER",
	"SM_EFA_TEST_INSTANCE_TYPE",
	"IPV6_VPC_NAME",
	"HEAVY_INSTANCE_EC2_TESTS_ENABLED",
	"ENABLE_IPV6_TESTING",
	"FRAMEWORK_BUILDSPEC_FILE",
}

// pyBool renders b the way the test harness expects to read it back.
func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// overrides assembles the env overrides for job: the base file entries,
// the deep canary marker, then the baseline. Base entries that shadow a
// baseline name are dropped.
func (d *Dispatcher) overrides(base []EnvOverride, job, images string) []EnvOverride {
	out := make([]EnvOverride, 0, len(base)+len(baselineNames)+1)
	for _, o := range base {
		if slices.Contains(baselineNames, o.Name) {
			continue
		}
		out = append(out, o)
	}

	if d.Flags.DeepCanaryMode {
		out = append(out, plain("DEEP_CANARY_MODE", "true"))
	}

	// EC2 jobs only: heavy instances and IPv6 have no meaning elsewhere.
	ec2 := strings.Contains(job, "ec2")

	return append(out,
		plain("FRAMEWORK", d.Context.Framework),
		plain("IMAGE_TYPE", d.Context.ImageType),
		plain("DLC_IMAGES", images),
		plain("PR_NUMBER", d.Context.PRNumber),
		plain("NIGHTLY_PR_TEST_MODE", pyBool(d.Flags.NightlyPRTestMode)),
		plain("USE_SCHEDULER", pyBool(d.Flags.UseScheduler)),
		plain("SM_EFA_TEST_INSTANCE_TYPE", d.Flags.SagemakerEFAInstanceType),
		plain("IPV6_VPC_NAME", d.Flags.IPv6VPCName),
		plain("HEAVY_INSTANCE_EC2_TESTS_ENABLED", pyBool(d.Flags.HeavyInstanceEC2Tests && ec2)),
		plain("ENABLE_IPV6_TESTING", pyBool(d.Flags.IPv6Testing && ec2)),
		plain("FRAMEWORK_BUILDSPEC_FILE", d.buildspecPath()),
	)
}

// buildspecPath is the configured override, else the job's own buildspec.
func (d *Dispatcher) buildspecPath() string {
	if d.Flags.BuildspecOverride != "" {
		return d.Flags.BuildspecOverride
	}
	return d.Context.BuildspecFile
}
