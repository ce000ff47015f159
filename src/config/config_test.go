package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sofmeright/testdispatch/src/buildenv"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dlc_developer_config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(defaults(), cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[dev]
graviton_mode = true
deep_canary_mode = true

[build]
build_frameworks = ["pytorch"]

[test]
sanity_tests = false
ec2_benchmark_tests = true
ec2_tests_on_heavy_instances = true
sagemaker_remote_efa_instance_type = "ml.p4d.24xlarge"
enable_ipv6 = true
ipv6_vpc_name = "dlc-ipv6-vpc"

[buildspec_override]
dlc-pr-pytorch-training = "pytorch/training/buildspec-2-3-ec2.yml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Dev.GravitonMode || !cfg.Dev.DeepCanaryMode || cfg.Dev.ARM64Mode {
		t.Errorf("unexpected dev section: %+v", cfg.Dev)
	}
	if diff := cmp.Diff([]string{"pytorch"}, cfg.Build.BuildFrameworks); diff != "" {
		t.Errorf("build_frameworks mismatch (-want +got):\n%s", diff)
	}
	// Keys absent from the file keep their defaults.
	if !cfg.Build.DoBuild || !cfg.Test.SecurityTests || !cfg.Test.EKSTests {
		t.Errorf("defaults not preserved: build=%+v test=%+v", cfg.Build, cfg.Test)
	}
	if cfg.Test.SanityTests {
		t.Error("sanity_tests should be overridden to false")
	}
	if got := cfg.BuildspecOverride["dlc-pr-pytorch-training"]; got != "pytorch/training/buildspec-2-3-ec2.yml" {
		t.Errorf("buildspec override = %q", got)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	path := writeConfig(t, "[dev\ngraviton_mode = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestBuilderSwitches(t *testing.T) {
	tests := []struct {
		name                     string
		dev                      DevConfig
		frameworks               []string
		framework                string
		general, graviton, arm64 bool
	}{
		{name: "all frameworks, no mode", framework: "pytorch", general: true},
		{name: "framework not selected", frameworks: []string{"tensorflow"}, framework: "pytorch"},
		{name: "graviton mode", dev: DevConfig{GravitonMode: true}, framework: "tensorflow", graviton: true},
		{name: "graviton unsupported framework", dev: DevConfig{GravitonMode: true}, framework: "mxnet"},
		{name: "arm64 mode", dev: DevConfig{ARM64Mode: true}, framework: "pytorch", arm64: true},
		{name: "arm64 unsupported framework", dev: DevConfig{ARM64Mode: true}, framework: "tensorflow"},
		{name: "both modes", dev: DevConfig{GravitonMode: true, ARM64Mode: true}, framework: "pytorch", graviton: true, arm64: true},
		{name: "neuron mode disables general", dev: DevConfig{NeuronMode: true}, framework: "pytorch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Dev = tt.dev
			cfg.Build.BuildFrameworks = tt.frameworks

			if got := cfg.GeneralBuilderEnabled(tt.framework); got != tt.general {
				t.Errorf("GeneralBuilderEnabled = %v, want %v", got, tt.general)
			}
			if got := cfg.GravitonBuilderEnabled(tt.framework); got != tt.graviton {
				t.Errorf("GravitonBuilderEnabled = %v, want %v", got, tt.graviton)
			}
			if got := cfg.ARM64BuilderEnabled(tt.framework); got != tt.arm64 {
				t.Errorf("ARM64BuilderEnabled = %v, want %v", got, tt.arm64)
			}
		})
	}
}

func TestFlags(t *testing.T) {
	cfg := defaults()
	cfg.Dev.DeepCanaryMode = true
	cfg.Test.EC2TestsOnHeavyInstances = true
	cfg.Test.EnableIPv6 = true
	cfg.Test.IPv6VPCName = "vpc-v6"
	cfg.Test.SagemakerRemoteEFAInstanceType = "ml.p5.48xlarge"
	cfg.BuildspecOverride = map[string]string{
		"dlc-pr-pytorch-training": "pytorch/training/buildspec.yml",
	}

	ctx := buildenv.Context{Framework: "pytorch", BuildID: "dlc-pr-pytorch-training:0a1b"}
	got := cfg.Flags(ctx)

	want := Flags{
		DeepCanaryMode:           true,
		GeneralBuilder:           true,
		SanityTests:              true,
		SecurityTests:            true,
		EC2Tests:                 true,
		ECSTests:                 true,
		EKSTests:                 true,
		SagemakerRemoteTests:     true,
		HeavyInstanceEC2Tests:    true,
		IPv6Testing:              true,
		SagemakerEFAInstanceType: "ml.p5.48xlarge",
		IPv6VPCName:              "vpc-v6",
		BuildspecOverride:        "pytorch/training/buildspec.yml",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Flags mismatch (-want +got):\n%s", diff)
	}

	other := cfg.Flags(buildenv.Context{Framework: "pytorch", BuildID: "dlc-pr-tensorflow-inference:0a1b"})
	if other.BuildspecOverride != "" {
		t.Errorf("override leaked to another project: %q", other.BuildspecOverride)
	}
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	if warnings, err := Validate(cfg); err != nil || len(warnings) != 0 {
		t.Fatalf("defaults should validate cleanly, got warnings=%v err=%v", warnings, err)
	}

	cfg.Build.BuildFrameworks = []string{"pytorch", "caffe"}
	cfg.Test.SagemakerRemoteEFAInstanceType = "p4d.24xlarge"
	cfg.Test.EnableIPv6 = true
	cfg.BuildspecOverride = map[string]string{"dlc-pr-pytorch": "pytorch/buildspec.json"}

	warnings, err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{`"caffe"`, `"p4d.24xlarge"`, `"pytorch/buildspec.json"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
	if diff := cmp.Diff([]string{"test.enable_ipv6 is set but test.ipv6_vpc_name is empty"}, warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateEFAInstanceType(t *testing.T) {
	for _, it := range []string{"", "ml.p4d.24xlarge"} {
		cfg := defaults()
		cfg.Test.SagemakerEFATests = true
		cfg.Test.SagemakerRemoteEFAInstanceType = it
		if _, err := Validate(cfg); err != nil {
			t.Errorf("instance type %q: %v", it, err)
		}
	}
}
