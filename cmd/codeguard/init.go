package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/ludo-technologies/codeguard/app"
	"github.com/ludo-technologies/codeguard/domain"
	"github.com/ludo-technologies/codeguard/service"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the project configuration",
		Long: `Create codeguard.config.json in the project root from the default
configuration merged with the given values. Rules and thresholds are merged
key by key, so overriding one keeps the others at their defaults.

An existing configuration is replaced.

Examples:
  codeguard init
  codeguard init --project-name shop --framework vue
  codeguard init --rule performance=false --threshold coverage=90
  codeguard init --from-gitignore
  codeguard init --interactive`,
		RunE: runInit,
	}

	cmd.Flags().String("project-name", "", "Project name")
	cmd.Flags().String("repository", "", "Repository URL")
	cmd.Flags().String("language", "", "Primary language")
	cmd.Flags().String("framework", "", "Framework")
	cmd.Flags().StringSlice("exclude", nil, "Exclude patterns (comma-separated), replacing the defaults")
	cmd.Flags().StringToString("rule", nil, "Rule overrides, e.g. security=true,performance=false")
	cmd.Flags().StringToString("threshold", nil, "Threshold overrides, e.g. coverage=90")
	cmd.Flags().Bool("from-gitignore", false, "Append the patterns of .gitignore to the exclude list")
	cmd.Flags().BoolP("interactive", "i", false, "Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	inv, err := newInvocation(cmd)
	if err != nil {
		return err
	}

	overrides, err := initOverrides(cmd)
	if err != nil {
		return err
	}

	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if !service.IsTerminal(cmd.InOrStdin()) {
			return domain.NewInvalidInputError("--interactive requires a terminal on stdin", nil)
		}
		if err := runInteractiveSetup(cmd.OutOrStdout(), &overrides, inv.settings.ProjectDir); err != nil {
			return err
		}
	}

	fromGitignore, _ := cmd.Flags().GetBool("from-gitignore")
	cfg, err := app.NewInitUseCase(inv.session).Execute(cmd.Context(), app.InitRequest{
		Overrides:     overrides,
		FromGitignore: fromGitignore,
		ProjectDir:    inv.settings.ProjectDir,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	displayPath := inv.session.Store.Path()
	if absPath, err := filepath.Abs(displayPath); err == nil {
		displayPath = absPath
	}
	fmt.Fprintf(out, "Initialized project '%s' in %s\n", cfg.ProjectName, displayPath)
	fmt.Fprintln(out, "\nRun 'codeguard connect' to connect the project.")
	return nil
}

// initOverrides collects the override flags of the init command
func initOverrides(cmd *cobra.Command) (domain.ProjectOverrides, error) {
	flags := cmd.Flags()
	var o domain.ProjectOverrides

	o.ProjectName, _ = flags.GetString("project-name")
	o.Repository, _ = flags.GetString("repository")
	o.Language, _ = flags.GetString("language")
	o.Framework, _ = flags.GetString("framework")
	o.ExcludePaths, _ = flags.GetStringSlice("exclude")

	rulePairs, _ := flags.GetStringToString("rule")
	rules, err := app.ParseRules(rulePairs)
	if err != nil {
		return o, err
	}
	o.Rules = rules

	thresholdPairs, _ := flags.GetStringToString("threshold")
	thresholds, err := app.ParseThresholds(thresholdPairs)
	if err != nil {
		return o, err
	}
	o.Thresholds = thresholds

	return o, nil
}

func runInteractiveSetup(out io.Writer, o *domain.ProjectOverrides, projectDir string) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "codeguard Project Setup")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintln(out)

	defaultName := o.ProjectName
	if defaultName == "" {
		if abs, err := filepath.Abs(projectDir); err == nil {
			defaultName = filepath.Base(abs)
		}
	}

	namePrompt := promptui.Prompt{
		Label:   "Project name",
		Default: defaultName,
	}
	name, err := namePrompt.Run()
	if err != nil {
		return fmt.Errorf("project name input cancelled: %w", err)
	}
	if name != "" {
		o.ProjectName = name
	}

	repoPrompt := promptui.Prompt{
		Label:   "Repository URL (optional)",
		Default: o.Repository,
	}
	repo, err := repoPrompt.Run()
	if err != nil {
		return fmt.Errorf("repository input cancelled: %w", err)
	}
	o.Repository = repo

	stacks := []struct {
		Label     string
		Language  string
		Framework string
	}{
		{"JavaScript + React", "javascript", "react"},
		{"TypeScript + React", "typescript", "react"},
		{"JavaScript + Vue", "javascript", "vue"},
		{"TypeScript + Angular", "typescript", "angular"},
		{"Node.js + Express", "javascript", "express"},
	}

	stackTemplates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "\U0001F449 {{ .Label | cyan }}",
		Inactive: "   {{ .Label | white }}",
		Selected: "\U00002705 {{ .Label | green }}",
	}

	stackPrompt := promptui.Select{
		Label:     "Which stack does the project use?",
		Items:     stacks,
		Templates: stackTemplates,
	}
	idx, _, err := stackPrompt.Run()
	if err != nil {
		return fmt.Errorf("stack selection cancelled: %w", err)
	}
	o.Language = stacks[idx].Language
	o.Framework = stacks[idx].Framework

	fmt.Fprintln(out)
	return nil
}
