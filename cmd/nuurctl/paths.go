package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/jrsteele09/nuur-client/paths"
	"github.com/spf13/cobra"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Record and share tracked paths",
}

var pathsStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start recording a path",
	RunE: func(cmd *cobra.Command, args []string) error {
		typ, _ := cmd.Flags().GetString("type")
		s := paths.Start{
			Name:        optionalString(cmd, "name"),
			Description: optionalString(cmd, "description"),
			PathType:    paths.Type(typ),
		}
		env, err := client.StartPath(cmd.Context(), s)
		return printResult(cmd, env, err)
	},
}

var pathsStopCmd = &cobra.Command{
	Use:   "stop ID",
	Short: "Stop recording a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.StopPath(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

var pathsPointsCmd = &cobra.Command{
	Use:   "points ID LAT,LON...",
	Short: "Append GPS points to an active path",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		points := make([]paths.Point, 0, len(args)-1)
		for _, arg := range args[1:] {
			p, err := parsePoint(arg)
			if err != nil {
				return err
			}
			points = append(points, p)
		}
		env, err := client.AddPathPoints(cmd.Context(), args[0], points)
		return printResult(cmd, env, err)
	},
}

var pathsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		skip, _ := cmd.Flags().GetInt("skip")
		env, err := client.ListPaths(cmd.Context(), limit, skip)
		return printResult(cmd, env, err)
	},
}

var pathsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a path with its points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetPath(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

var pathsRenameCmd = &cobra.Command{
	Use:   "rename ID NAME",
	Short: "Rename a path",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		upd := paths.Update{Name: &args[1], Description: optionalString(cmd, "description")}
		env, err := client.UpdatePath(cmd.Context(), args[0], upd)
		return printResult(cmd, env, err)
	},
}

var pathsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.DeletePath(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

var pathsShareCmd = &cobra.Command{
	Use:   "share ID",
	Short: "Create a share link for a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hours, _ := cmd.Flags().GetInt("hours")
		s := paths.Share{
			SharedWithEmail: optionalString(cmd, "email"),
			SharedWithPhone: optionalString(cmd, "phone"),
			ExpiresInHours:  hours,
		}
		env, err := client.SharePath(cmd.Context(), args[0], s)
		return printResult(cmd, env, err)
	},
}

var pathsSharedCmd = &cobra.Command{
	Use:   "shared TOKEN",
	Short: "Open a path someone shared with you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetSharedPath(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

// parsePoint reads "lat,lon".
func parsePoint(s string) (paths.Point, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return paths.Point{}, errors.Invalidf("point %q must be LAT,LON", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return paths.Point{}, errors.Invalidf("latitude in %q: %v", s, err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return paths.Point{}, errors.Invalidf("longitude in %q: %v", s, err)
	}
	return paths.Point{Latitude: lat, Longitude: lon, Timestamp: time.Now().UTC()}, nil
}

func init() {
	rootCmd.AddCommand(pathsCmd)
	pathsCmd.AddCommand(pathsStartCmd, pathsStopCmd, pathsPointsCmd, pathsListCmd, pathsShowCmd,
		pathsRenameCmd, pathsDeleteCmd, pathsShareCmd, pathsSharedCmd)

	pathsStartCmd.Flags().String("name", "", "path name")
	pathsStartCmd.Flags().String("description", "", "path description")
	pathsStartCmd.Flags().String("type", string(paths.TypeWalk), fmt.Sprintf("one of %s, %s, %s, %s",
		paths.TypeWalk, paths.TypeCommute, paths.TypeTaxi, paths.TypeOther))

	pathsListCmd.Flags().Int("limit", 0, "page size")
	pathsListCmd.Flags().Int("skip", 0, "number of paths to skip")

	pathsRenameCmd.Flags().String("description", "", "new description")

	pathsShareCmd.Flags().String("email", "", "email to share with")
	pathsShareCmd.Flags().String("phone", "", "phone number to share with")
	pathsShareCmd.Flags().Int("hours", paths.DefaultShareExpiryHours, "link lifetime in hours")
}
