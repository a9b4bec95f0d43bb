package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/gitutil"
	"github.com/sevigo/issue-warden/internal/report"
	"github.com/sevigo/issue-warden/internal/wire"
)

var (
	checkPRNumber int
	checkRepo     string
	checkPost     bool
	checkPlain    bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	dimColor     = color.New(color.FgHiBlack)
)

var checkCmd = &cobra.Command{
	Use:   "check [pr-url]",
	Short: "Analyze a pull request from your terminal",
	Long: `Analyze a pull request without the GitHub Actions context.

The check command fetches the PR metadata, diff, and linked issues, scores
the implementation against them, and prints the summary locally. Nothing is
posted unless --post is given.

Examples:
  issue-warden check https://github.com/owner/repo/pull/123
  issue-warden check --repo owner/repo --pr 123
  issue-warden check --pr 123    (repository inferred from the origin remote)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	checkCmd.Flags().IntVar(&checkPRNumber, "pr", 0, "Pull request number (combined with --repo or an inferred repository)")
	checkCmd.Flags().StringVar(&checkRepo, "repo", "", "Repository in owner/repo form")
	checkCmd.Flags().BoolVar(&checkPost, "post", false, "Post the summary comment to the pull request")
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "Print raw Markdown without terminal rendering")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	components, err := wire.InitializeCheck(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	if err := components.Cfg.ValidateForCheck(); err != nil {
		return fmt.Errorf("%w\n\nTip: set GITHUB_TOKEN or pass --github-token", err)
	}

	ref, prNumber, err := resolveTarget(args)
	if err != nil {
		return err
	}

	interactive := !checkPlain && isatty.IsTerminal(os.Stdout.Fd())

	var result *core.AnalysisResult
	if interactive {
		titleColor.Println("🔍 Issue Warden - PR Check")
		dimColor.Printf("   Target: %s#%d\n\n", ref, prNumber)
		result, err = runAnalysisTUI(ctx, components, ref, prNumber)
	} else {
		result, err = components.Analyzer.Analyze(ctx, ref, prNumber)
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	body := report.Render(result)
	printBody(body, interactive)

	if checkPost {
		posted, err := components.Publisher.Publish(ctx, ref, prNumber, body, components.Cfg.UpdateExisting)
		if err != nil {
			return fmt.Errorf("failed to post comment: %w", err)
		}
		if posted {
			successColor.Println("✓ Comment posted")
		}
	}
	return nil
}

// resolveTarget picks the repository and PR number from the URL argument,
// the flags, or the origin remote of the working directory.
func resolveTarget(args []string) (core.RepoRef, int, error) {
	if len(args) == 1 {
		ref, prNumber, err := gitutil.ParsePullRequestURL(args[0])
		if err != nil {
			return core.RepoRef{}, 0, fmt.Errorf("invalid PR URL: %w\n\nExpected format: https://github.com/owner/repo/pull/123", err)
		}
		return ref, prNumber, nil
	}

	if checkPRNumber <= 0 {
		return core.RepoRef{}, 0, fmt.Errorf("a pull request is required: pass a URL or --pr")
	}

	if checkRepo != "" {
		ref, err := core.ParseRepoRef(checkRepo)
		if err != nil {
			return core.RepoRef{}, 0, err
		}
		return ref, checkPRNumber, nil
	}

	ref, err := gitutil.InferRepoFromDir(".")
	if err != nil {
		return core.RepoRef{}, 0, fmt.Errorf("could not infer the repository from the working directory: %w\n\nTip: pass --repo owner/repo or a full PR URL", err)
	}
	return ref, checkPRNumber, nil
}

// printBody renders the Markdown for the terminal when interactive and
// falls back to the raw body when rendering is unavailable.
func printBody(body string, interactive bool) {
	if interactive {
		renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
		if err == nil {
			if out, renderErr := renderer.Render(body); renderErr == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(body)
}
