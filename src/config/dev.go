package config

import "slices"

// DevConfig holds the [dev] table: which special build modes this PR runs in.
type DevConfig struct {
	// PartnerDeveloper names the partner whose images this PR builds, if any.
	PartnerDeveloper string `toml:"partner_developer"`

	EIMode       bool `toml:"ei_mode"`
	NeuronMode   bool `toml:"neuron_mode"`
	GravitonMode bool `toml:"graviton_mode"`
	ARM64Mode    bool `toml:"arm64_mode"`

	// DeepCanaryMode replaces every regular PR test with one deep canary
	// job against the production images matching this build.
	DeepCanaryMode bool `toml:"deep_canary_mode"`
}

// DefaultDevConfig returns the [dev] defaults: no special mode.
func DefaultDevConfig() DevConfig {
	return DevConfig{}
}

// specialMode reports whether any mode that replaces the general builder is on.
func (d DevConfig) specialMode() bool {
	return d.EIMode || d.NeuronMode || d.GravitonMode || d.ARM64Mode
}

// BuildConfig holds the [build] table.
type BuildConfig struct {
	// BuildFrameworks limits the PR to these frameworks. Empty means all.
	BuildFrameworks []string `toml:"build_frameworks"`

	BuildTraining  bool `toml:"build_training"`
	BuildInference bool `toml:"build_inference"`
	DatetimeTag    bool `toml:"datetime_tag"`
	DoBuild        bool `toml:"do_build"`
}

// DefaultBuildConfig returns the [build] defaults: build everything.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		BuildTraining:  true,
		BuildInference: true,
		DatetimeTag:    true,
		DoBuild:        true,
	}
}

// Frameworks known to the DLC PR pipeline.
var Frameworks = []string{
	"autogluon",
	"base",
	"huggingface_pytorch",
	"huggingface_tensorflow",
	"mxnet",
	"pytorch",
	"stabilityai_pytorch",
	"tensorflow",
	"vllm",
}

var (
	gravitonFrameworks = []string{"pytorch", "tensorflow"}
	arm64Frameworks    = []string{"pytorch"}
)

// frameworkAllowed reports whether framework is selected for this PR.
func (b BuildConfig) frameworkAllowed(framework string) bool {
	return len(b.BuildFrameworks) == 0 || slices.Contains(b.BuildFrameworks, framework)
}
