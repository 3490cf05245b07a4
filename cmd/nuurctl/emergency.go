package main

import (
	"os"
	"path/filepath"

	"github.com/jrsteele09/nuur-client/emergency"
	"github.com/jrsteele09/nuur-client/internal/errors"
	"github.com/spf13/cobra"
)

var emergencyCmd = &cobra.Command{
	Use:   "emergency",
	Short: "Report and follow emergencies",
}

var emergencyReportCmd = &cobra.Command{
	Use:   "report TYPE",
	Short: "Report an emergency (fire, medical, accident, security, other)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lon, err := coordinates(cmd)
		if err != nil {
			return err
		}
		severity, _ := cmd.Flags().GetString("severity")
		anonymous, _ := cmd.Flags().GetBool("anonymous")
		r := emergency.NewReport{
			ReportType:  emergency.ReportType(args[0]),
			Latitude:    lat,
			Longitude:   lon,
			AddressText: optionalString(cmd, "address"),
			Description: optionalString(cmd, "description"),
			IsAnonymous: anonymous,
			Severity:    emergency.Severity(severity),
		}
		env, err := client.ReportEmergency(cmd.Context(), r)
		return printResult(cmd, env, err)
	},
}

var emergencyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your emergency reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		skip, _ := cmd.Flags().GetInt("skip")
		env, err := client.ListEmergencyReports(cmd.Context(), limit, skip)
		return printResult(cmd, env, err)
	},
}

var emergencyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a report with its media",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetEmergencyReport(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

var emergencyStatusCmd = &cobra.Command{
	Use:   "status ID STATUS",
	Short: "Change the status of a report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := emergency.Status(args[1])
		u := emergency.StatusUpdate{Status: &status, Description: optionalString(cmd, "description")}
		env, err := client.UpdateEmergencyStatus(cmd.Context(), args[0], u)
		return printResult(cmd, env, err)
	},
}

var emergencyUploadCmd = &cobra.Command{
	Use:   "upload ID FILE",
	Short: "Attach a photo, video or audio file to a report",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mediaType, _ := cmd.Flags().GetString("type")
		f, err := os.Open(args[1])
		if err != nil {
			return errors.Wrapf(err, "open %s", args[1])
		}
		defer f.Close()

		env, err := client.UploadEmergencyMedia(cmd.Context(), args[0], filepath.Base(args[1]), f, emergency.MediaType(mediaType))
		return printResult(cmd, env, err)
	},
}

var emergencyNearbyCmd = &cobra.Command{
	Use:   "nearby",
	Short: "List open reports around a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		lat, lon, err := coordinates(cmd)
		if err != nil {
			return err
		}
		radius, _ := cmd.Flags().GetFloat64("radius")
		env, err := client.GetNearbyEmergencies(cmd.Context(), lat, lon, radius)
		return printResult(cmd, env, err)
	},
}

func coordinates(cmd *cobra.Command) (float64, float64, error) {
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		return 0, 0, errors.Invalidf("--lat and --lon are required")
	}
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")
	return lat, lon, nil
}

func init() {
	rootCmd.AddCommand(emergencyCmd)
	emergencyCmd.AddCommand(emergencyReportCmd, emergencyListCmd, emergencyShowCmd, emergencyStatusCmd,
		emergencyUploadCmd, emergencyNearbyCmd)

	for _, c := range []*cobra.Command{emergencyReportCmd, emergencyNearbyCmd} {
		c.Flags().Float64("lat", 0, "latitude")
		c.Flags().Float64("lon", 0, "longitude")
	}
	emergencyReportCmd.Flags().String("severity", string(emergency.SeverityMedium), "low, medium, high or critical")
	emergencyReportCmd.Flags().String("address", "", "address or landmark")
	emergencyReportCmd.Flags().String("description", "", "what is happening")
	emergencyReportCmd.Flags().Bool("anonymous", false, "hide your identity from responders")

	emergencyListCmd.Flags().Int("limit", 0, "page size")
	emergencyListCmd.Flags().Int("skip", 0, "number of reports to skip")

	emergencyStatusCmd.Flags().String("description", "", "note for the status change")

	emergencyUploadCmd.Flags().String("type", string(emergency.MediaPhoto), "photo, video or audio")

	emergencyNearbyCmd.Flags().Float64("radius", emergency.DefaultNearbyRadiusKm, "search radius in km")
}
