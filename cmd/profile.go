package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	appprofile "github.com/zjrosen/choicekit/internal/application/profile"
	"github.com/zjrosen/choicekit/internal/choices"
	"github.com/zjrosen/choicekit/internal/infrastructure/sqlite"
	"github.com/zjrosen/choicekit/internal/log"
	"github.com/zjrosen/choicekit/internal/tracing"
)

var (
	profileSets  []string
	profileWhere []string
	profileBy    string
	profileLimit int
)

// openService opens the database and tracer and returns a Service over
// them. The returned cleanup closes both.
func openService() (*appprofile.Service, func(), error) {
	by, err := choices.ParseLookup(profileBy)
	if err != nil {
		return nil, nil, err
	}

	db, err := sqlite.NewDB(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("creating tracer: %w", err)
	}

	svc := appprofile.NewService(db.ProfileRepository(), appprofile.Options{
		Tracer:   provider.Tracer(),
		CacheTTL: cfg.Cache.TTL,
		By:       by,
	})

	cleanup := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "Failed to shut down tracer", err)
		}
		if err := db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Failed to close database", err)
		}
	}
	return svc, cleanup, nil
}

var profileCreateCmd = &cobra.Command{
	Use:   "profile:create",
	Short: "Create a profile",
	Long: `Create a profile. Fields not given keep their defaults.

Each --set takes field=raw. The raw text may be the stored value, the entry
name, or the label; they are tried in that order unless --by pins one. An
empty raw on a nullable field (level) stores no value.

Fields: priority, language, gender, category_type, level, region, answer,
suit, fruit, medal_type, place.

Examples:
  choicekit profile:create --set priority=HIGH --set fruit=桃子
  choicekit profile:create --set level=Senior --by label`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		assignments, err := appprofile.ParseAssignments(profileSets)
		if err != nil {
			return err
		}
		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		dto, err := svc.Create(cmd.Context(), assignments)
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatProfile(dto)
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "profile:update GUID",
	Short: "Change fields of a profile",
	Long: `Change fields of an existing profile. Takes the same --set and --by flags
as profile:create.

Examples:
  choicekit profile:update 6f1c... --set suit=HEART --set level=`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(profileSets) == 0 {
			return errors.New("at least one --set is required")
		}
		assignments, err := appprofile.ParseAssignments(profileSets)
		if err != nil {
			return err
		}
		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		dto, err := svc.Update(cmd.Context(), args[0], assignments)
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatProfile(dto)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "profile:show GUID",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		dto, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatProfile(dto)
	},
}

var profileListCmd = &cobra.Command{
	Use:   "profile:list",
	Short: "List profiles",
	Long: `List profiles, newest first. Each --where takes field=raw, resolved like
--set; all conditions must match. An empty raw on a nullable field matches
profiles with no value.

Examples:
  choicekit profile:list --where suit=Heart
  choicekit profile:list --where level= --limit 10 -f table`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		where, err := appprofile.ParseAssignments(profileWhere)
		if err != nil {
			return err
		}
		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		dtos, err := svc.List(cmd.Context(), where, profileLimit)
		if err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatProfiles(dtos)
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "profile:delete GUID",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, cleanup, err := openService()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		formatter, err := newFormatter(cmd)
		if err != nil {
			return err
		}
		return formatter.FormatResult(map[string]string{"deleted": args[0]})
	},
}

func init() {
	for _, c := range []*cobra.Command{profileCreateCmd, profileUpdateCmd} {
		c.Flags().StringArrayVar(&profileSets, "set", nil, "Field assignment field=raw (repeatable)")
	}
	for _, c := range []*cobra.Command{profileCreateCmd, profileUpdateCmd, profileListCmd} {
		c.Flags().StringVar(&profileBy, "by", "", "Match raw text by value, name or label (default: try all)")
	}
	profileListCmd.Flags().StringArrayVar(&profileWhere, "where", nil, "Condition field=raw (repeatable)")
	profileListCmd.Flags().IntVar(&profileLimit, "limit", 0, "Maximum number of profiles (0: no limit)")

	rootCmd.AddCommand(profileCreateCmd, profileUpdateCmd, profileShowCmd, profileListCmd, profileDeleteCmd)
}
