package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sofmeright/testdispatch/src/buildenv"
	"github.com/sofmeright/testdispatch/src/codebuild"
	"github.com/sofmeright/testdispatch/src/dispatch"
	"github.com/sofmeright/testdispatch/src/gitver"
	"github.com/sofmeright/testdispatch/src/output"
)

var (
	startTestEnvFile    string
	startTestImagesFile string
	startDryRun         bool
	startRegion         string
)

var startCmd = &cobra.Command{
	Use:   "start-testbuilds",
	Short: "Start the PR test jobs this build needs",
	Long: `Start the CodeBuild test jobs for this pull-request build.

Nothing happens unless BUILD_CONTEXT is PR. In deep canary mode a single
deep canary job replaces every other test job.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, startDryRun)
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the test jobs start-testbuilds would start",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, true)
	},
}

func init() {
	for _, c := range []*cobra.Command{startCmd, planCmd} {
		c.Flags().StringVar(&startTestEnvFile, "test-env-file", "", "base env-override file (default: $PYTHONPATH/src/test_env.json)")
		c.Flags().StringVar(&startTestImagesFile, "test-images-file", "", "test type image map (default: $PYTHONPATH/src/test_type_images.json)")
	}
	startCmd.Flags().BoolVar(&startDryRun, "dry-run", false, "print invocations instead of calling CodeBuild")
	startCmd.Flags().StringVar(&startRegion, "region", "", "AWS region (default: from the AWS config chain)")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(planCmd)
}

func runStart(cmd *cobra.Command, dryRun bool) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()
	color := output.UseColor()

	bctx := buildenv.FromEnv()
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	src, err := gitver.Resolve(bctx.SourceVersion, rootDir)
	if err != nil {
		logger.Warn("resolving source version", zap.Error(err))
	}
	bctx.SourceVersion = src.SHA

	starter, err := newStarter(cmd, w, dryRun)
	if err != nil {
		return err
	}

	d := &dispatch.Dispatcher{
		Context:        bctx,
		Flags:          cfg.Flags(bctx),
		Starter:        starter,
		Logger:         logger,
		TestEnvFile:    orDefault(startTestEnvFile, bctx.TestEnvPath()),
		TestImagesFile: orDefault(startTestImagesFile, bctx.TestTypeImagesPath()),
		DryRun:         dryRun,
	}

	kv := output.BuildContextKV(bctx)
	if src.Branch != "" {
		kv = append(kv, output.KV{Key: "branch", Value: src.Branch})
	}
	output.ContextBlock(w, kv)

	start := time.Now()
	res, runErr := d.Run(ctx)
	output.DispatchSummary(w, res, runErr, time.Since(start), color)
	return runErr
}

func newStarter(cmd *cobra.Command, w io.Writer, dryRun bool) (dispatch.Starter, error) {
	if dryRun {
		return &codebuild.DryRun{Writer: w}, nil
	}
	return codebuild.New(cmd.Context(), startRegion)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
