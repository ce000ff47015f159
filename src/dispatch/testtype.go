package dispatch

import (
	"github.com/sofmeright/testdispatch/src/config"
	"github.com/sofmeright/testdispatch/src/image"
)

// Test types as they appear as keys of the test-type image map.
const (
	SanityTests             = "sanity"
	SecurityTests           = "security"
	EC2Tests                = "ec2"
	EC2BenchmarkTests       = "ec2-benchmark"
	ECSTests                = "ecs"
	EKSTests                = "eks"
	SagemakerTests          = "sagemaker"
	SagemakerEFATests       = "sagemaker-efa"
	SagemakerRCTests        = "sagemaker-rc"
	SagemakerBenchmarkTests = "sagemaker-benchmark"
	AutoPRTests             = "autopr"

	deepCanaryTests = "deep-canary"
)

// TestJobEnabled reports whether the config switch for testType is on.
// Test types without a switch are never enabled.
func TestJobEnabled(flags config.Flags, testType string) bool {
	switch testType {
	case SagemakerTests:
		return flags.SagemakerRemoteTests
	case SagemakerEFATests:
		return flags.SagemakerEFATests
	case SagemakerRCTests:
		return flags.SagemakerRCTests
	case SagemakerBenchmarkTests:
		return flags.SagemakerBenchmarkTests
	case EC2Tests:
		return flags.EC2Tests
	case EC2BenchmarkTests:
		return flags.EC2BenchmarkTests
	case ECSTests:
		return flags.ECSTests
	case EKSTests:
		return flags.EKSTests
	case SanityTests:
		return flags.SanityTests
	case SecurityTests:
		return flags.SecurityTests
	default:
		return false
	}
}

// unimplemented lists, per image family, the test types that have no
// test suite for that family.
var unimplemented = map[image.Family][]string{
	image.HuggingFaceFamily:       {EC2Tests, EC2BenchmarkTests, ECSTests, EKSTests},
	image.AutoGluonFamily:         {EC2Tests, EC2BenchmarkTests, ECSTests, EKSTests},
	image.HuggingFaceTrcompFamily: {ECSTests, EKSTests, EC2BenchmarkTests},
	image.TrcompFamily:            {EKSTests, EC2BenchmarkTests},
}

// ImplementedForFramework reports whether testType has tests for the
// images in set.
func ImplementedForFramework(set image.Set, testType string) bool {
	for _, tt := range unimplemented[set.Family()] {
		if tt == testType {
			return false
		}
	}
	return true
}

// JobName returns the CodeBuild project that runs testType for set.
// Sanity and security keep separate projects per architecture.
func JobName(testType string, set image.Set) string {
	job := "dlc-pr-" + testType + "-test"
	if testType == SanityTests || testType == SecurityTests {
		job += archSuffix(set.Arch())
	}
	return job
}

func archSuffix(arch image.Arch) string {
	switch arch {
	case image.GravitonArch:
		return "-graviton"
	case image.ARM64Arch:
		return "-arm64"
	default:
		return ""
	}
}
