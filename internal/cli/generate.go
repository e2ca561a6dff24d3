package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"recipesmith/internal/app"
	"recipesmith/internal/types"
)

type generateOptions struct {
	Version          string
	Ecosystem        string
	OutputDir        string
	LicenseThreshold float64
	Workers          int
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <package>[==version] [<package>[==version]...]",
		Short: "Generate build recipes from index metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Version, "version", "", "Package version (latest stable when omitted, single-package only)")
	cmd.Flags().StringVar(&opts.Ecosystem, "ecosystem", string(types.EcosystemPyPI), "Metadata source ecosystem (pypi, sdist)")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "recipes", "Output directory")
	cmd.Flags().Float64Var(&opts.LicenseThreshold, "license-threshold", 0, "License similarity threshold override (0 keeps default)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "Concurrent package workers for multi-package runs")

	_ = viper.BindPFlag("ecosystem", cmd.Flags().Lookup("ecosystem"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("license_threshold", cmd.Flags().Lookup("license-threshold"))
	_ = viper.BindPFlag("workers", cmd.Flags().Lookup("workers"))

	return cmd
}

func runGenerate(ctx context.Context, cmd *cobra.Command, opts generateOptions, args []string) error {
	service, err := app.NewService()
	if err != nil {
		return err
	}
	ecosystem := types.EcosystemKind(resolveString(cmd, opts.Ecosystem, "ecosystem", "ecosystem"))
	outputDir := resolveString(cmd, opts.OutputDir, "output", "output")

	packages := make([]app.PackageRef, 0, len(args))
	for _, arg := range args {
		ref := parsePackageRef(arg)
		if len(args) == 1 && ref.Version == "" {
			ref.Version = opts.Version
		}
		packages = append(packages, ref)
	}

	if len(packages) == 1 {
		result, err := service.Synthesize(ctx, app.SynthesizeRequest{
			Name:             packages[0].Name,
			Version:          packages[0].Version,
			Ecosystem:        ecosystem,
			OutputDir:        outputDir,
			LicenseThreshold: opts.LicenseThreshold,
		})
		if err != nil {
			return err
		}
		fmt.Printf("generated: %s\n", result.Path)
		return nil
	}

	batch, err := service.SynthesizeBatch(ctx, app.BatchRequest{
		Packages:         packages,
		Ecosystem:        ecosystem,
		OutputDir:        outputDir,
		LicenseThreshold: opts.LicenseThreshold,
		Workers:          opts.Workers,
	})
	if err != nil {
		return err
	}
	for _, result := range batch.Results {
		fmt.Printf("generated: %s\n", result.Path)
	}
	for _, failure := range batch.Failures {
		fmt.Printf("failed: %s: %v\n", failure.Name, failure.Err)
	}
	return nil
}

// parsePackageRef splits "name==version" argument syntax.
func parsePackageRef(arg string) app.PackageRef {
	name, version, found := strings.Cut(arg, "==")
	if !found {
		return app.PackageRef{Name: strings.TrimSpace(arg)}
	}
	return app.PackageRef{Name: strings.TrimSpace(name), Version: strings.TrimSpace(version)}
}

// resolveString prefers an explicitly set flag over the viper-bound
// config/env value.
func resolveString(cmd *cobra.Command, flagValue string, viperKey string, flagName string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if value := viper.GetString(viperKey); value != "" {
		return value
	}
	return flagValue
}
