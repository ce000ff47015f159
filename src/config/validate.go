package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks a loaded Config.
// Returns warnings (soft issues) and a hard error if the config is invalid.
func Validate(cfg *Config) (warnings []string, err error) {
	var errs []string

	for i, fw := range cfg.Build.BuildFrameworks {
		if !slices.Contains(Frameworks, fw) {
			errs = append(errs, fmt.Sprintf("build.build_frameworks[%d]: unknown framework %q (known: %s)",
				i, fw, strings.Join(Frameworks, ", ")))
		}
	}

	if it := cfg.Test.SagemakerRemoteEFAInstanceType; it != "" && !strings.HasPrefix(it, "ml.") {
		errs = append(errs, fmt.Sprintf("test.sagemaker_remote_efa_instance_type: %q is not a SageMaker instance type (want ml.*)", it))
	}

	if cfg.Test.EnableIPv6 && cfg.Test.IPv6VPCName == "" {
		warnings = append(warnings, "test.enable_ipv6 is set but test.ipv6_vpc_name is empty")
	}
	if cfg.Dev.GravitonMode && cfg.Dev.ARM64Mode {
		warnings = append(warnings, "dev.graviton_mode and dev.arm64_mode are both set; graviton takes precedence for deep canary jobs")
	}
	if !cfg.Build.DoBuild && cfg.Dev.DeepCanaryMode {
		warnings = append(warnings, "dev.deep_canary_mode is set while build.do_build is off")
	}

	for project, path := range cfg.BuildspecOverride {
		if !strings.HasPrefix(project, "dlc-pr-") {
			warnings = append(warnings, fmt.Sprintf("buildspec_override: %q is not a PR project name", project))
		}
		if path != "" && !strings.HasSuffix(path, ".yml") && !strings.HasSuffix(path, ".yaml") {
			errs = append(errs, fmt.Sprintf("buildspec_override.%s: %q is not a YAML buildspec", project, path))
		}
	}
	slices.Sort(warnings)
	slices.Sort(errs)

	if len(errs) > 0 {
		return warnings, fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return warnings, nil
}
