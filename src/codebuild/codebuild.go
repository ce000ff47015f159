// Package codebuild starts test jobs through the AWS CodeBuild API.
package codebuild

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codebuild"
	"github.com/aws/aws-sdk-go-v2/service/codebuild/types"

	"github.com/sofmeright/testdispatch/src/dispatch"
)

// ErrStartBuild wraps every failed StartBuild call.
var ErrStartBuild = errors.New("codebuild start build call failed")

// API is the subset of the CodeBuild client this package uses.
type API interface {
	StartBuild(ctx context.Context, params *codebuild.StartBuildInput, optFns ...func(*codebuild.Options)) (*codebuild.StartBuildOutput, error)
}

// Client starts builds on CodeBuild. It implements dispatch.Starter.
type Client struct {
	api API
}

// New creates a Client from the default AWS config chain (environment,
// shared config, CodeBuild container credentials). Region may be empty to
// use the chain's region.
func New(ctx context.Context, region string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Client{api: codebuild.NewFromConfig(cfg)}, nil
}

// NewWithAPI wraps an existing CodeBuild API implementation.
func NewWithAPI(api API) *Client {
	return &Client{api: api}
}

// StartBuild starts inv.Project at inv.SourceVersion with inv.Overrides.
func (c *Client) StartBuild(ctx context.Context, inv dispatch.Invocation) (*dispatch.BuildHandle, error) {
	input := &codebuild.StartBuildInput{
		ProjectName:                  aws.String(inv.Project),
		EnvironmentVariablesOverride: environment(inv.Overrides),
	}
	if inv.SourceVersion != "" {
		input.SourceVersion = aws.String(inv.SourceVersion)
	}

	out, err := c.api.StartBuild(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrStartBuild, inv.Project, err)
	}

	handle := &dispatch.BuildHandle{}
	if out != nil && out.Build != nil {
		handle.ID = aws.ToString(out.Build.Id)
		handle.ARN = aws.ToString(out.Build.Arn)
	}
	return handle, nil
}

func environment(overrides []dispatch.EnvOverride) []types.EnvironmentVariable {
	vars := make([]types.EnvironmentVariable, 0, len(overrides))
	for _, o := range overrides {
		vars = append(vars, types.EnvironmentVariable{
			Name:  aws.String(o.Name),
			Value: aws.String(o.Value),
			Type:  types.EnvironmentVariableType(o.Type),
		})
	}
	return vars
}
