package dispatch

import (
	"testing"

	"github.com/sofmeright/testdispatch/src/config"
	"github.com/sofmeright/testdispatch/src/image"
)

func TestTestJobEnabled(t *testing.T) {
	all := allTests()
	for _, tt := range []string{
		SanityTests, SecurityTests, EC2Tests, EC2BenchmarkTests, ECSTests, EKSTests,
		SagemakerTests, SagemakerEFATests, SagemakerRCTests, SagemakerBenchmarkTests,
	} {
		if !TestJobEnabled(all, tt) {
			t.Errorf("%s should be enabled", tt)
		}
		if TestJobEnabled(config.Flags{}, tt) {
			t.Errorf("%s should be disabled with every switch off", tt)
		}
	}

	for _, tt := range []string{AutoPRTests, "deep-canary", "sagemaker-local", "", "SANITY"} {
		if TestJobEnabled(all, tt) {
			t.Errorf("unrecognized test type %q should never be enabled", tt)
		}
	}
}

func TestImplementedForFramework(t *testing.T) {
	const (
		general  = "pr-pytorch-training:2.1.0-gpu-py310"
		hf       = "pr-huggingface-pytorch-training:2.1.0-transformers4.36.0-gpu-py310"
		hfTrcomp = "pr-huggingface-pytorch-trcomp-training:1.13.1-transformers4.26.0-gpu-py39"
		trcomp   = "pr-pytorch-trcomp-training:1.12.0-gpu-py38"
		ag       = "pr-autogluon-training:1.0.0-gpu-py310"
	)

	testTypes := []string{
		SanityTests, SecurityTests, EC2Tests, EC2BenchmarkTests, ECSTests, EKSTests,
		SagemakerTests, SagemakerEFATests, AutoPRTests,
	}

	notImplemented := map[string]map[string]bool{
		general:  {},
		hf:       {EC2Tests: true, EC2BenchmarkTests: true, ECSTests: true, EKSTests: true},
		ag:       {EC2Tests: true, EC2BenchmarkTests: true, ECSTests: true, EKSTests: true},
		hfTrcomp: {ECSTests: true, EKSTests: true, EC2BenchmarkTests: true},
		trcomp:   {EKSTests: true, EC2BenchmarkTests: true},
	}

	for img, skip := range notImplemented {
		set := image.NewSet([]string{img})
		for _, tt := range testTypes {
			want := !skip[tt]
			if got := ImplementedForFramework(set, tt); got != want {
				t.Errorf("ImplementedForFramework(%s, %s) = %v, want %v", img, tt, got, want)
			}
			// Pure: asking again gives the same answer.
			if again := ImplementedForFramework(set, tt); again != want {
				t.Errorf("ImplementedForFramework(%s, %s) changed between calls", img, tt)
			}
		}
	}
}

func TestJobName(t *testing.T) {
	tests := []struct {
		testType string
		images   []string
		want     string
	}{
		{SanityTests, []string{"pytorch-training:2.1.0"}, "dlc-pr-sanity-test"},
		{SanityTests, []string{"pytorch-inference-graviton:2.1.0"}, "dlc-pr-sanity-test-graviton"},
		{SecurityTests, []string{"pytorch-training-arm64:2.1.0"}, "dlc-pr-security-test-arm64"},
		{SecurityTests, []string{"pytorch-training-arm64:2.1.0", "pytorch-inference-graviton:2.1.0"}, "dlc-pr-security-test-graviton"},
		{EC2Tests, []string{"pytorch-inference-graviton:2.1.0"}, "dlc-pr-ec2-test"},
		{SagemakerEFATests, []string{"pytorch-training:2.1.0"}, "dlc-pr-sagemaker-efa-test"},
	}
	for _, tt := range tests {
		if got := JobName(tt.testType, image.NewSet(tt.images)); got != tt.want {
			t.Errorf("JobName(%s, %q) = %q, want %q", tt.testType, tt.images, got, tt.want)
		}
	}
}
