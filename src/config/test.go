package config

// TestConfig holds the [test] table.
type TestConfig struct {
	SanityTests       bool `toml:"sanity_tests"`
	SecurityTests     bool `toml:"security_tests"`
	SafetyCheckTest   bool `toml:"safety_check_test"`
	EC2Tests          bool `toml:"ec2_tests"`
	EC2BenchmarkTests bool `toml:"ec2_benchmark_tests"`
	ECSTests          bool `toml:"ecs_tests"`
	EKSTests          bool `toml:"eks_tests"`

	// EC2TestsOnHeavyInstances lets EC2 jobs run tests on large/expensive
	// instance types in addition to the regular ones.
	EC2TestsOnHeavyInstances bool `toml:"ec2_tests_on_heavy_instances"`

	SagemakerRemoteTests    bool `toml:"sagemaker_remote_tests"`
	SagemakerEFATests       bool `toml:"sagemaker_efa_tests"`
	SagemakerRCTests        bool `toml:"sagemaker_rc_tests"`
	SagemakerBenchmarkTests bool `toml:"sagemaker_benchmark_tests"`
	SagemakerLocalTests     bool `toml:"sagemaker_local_tests"`

	// SagemakerRemoteEFAInstanceType pins the instance type EFA jobs use.
	// Empty lets the test job pick.
	SagemakerRemoteEFAInstanceType string `toml:"sagemaker_remote_efa_instance_type"`

	NightlyPRTestMode bool `toml:"nightly_pr_test_mode"`
	UseScheduler      bool `toml:"use_scheduler"`

	EnableIPv6  bool   `toml:"enable_ipv6"`
	IPv6VPCName string `toml:"ipv6_vpc_name"`
}

// DefaultTestConfig returns the [test] defaults.
func DefaultTestConfig() TestConfig {
	return TestConfig{
		SanityTests:          true,
		SecurityTests:        true,
		EC2Tests:             true,
		ECSTests:             true,
		EKSTests:             true,
		SagemakerRemoteTests: true,
	}
}
