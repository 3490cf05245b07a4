package main

import (
	"github.com/jrsteele09/nuur-client/antitheft"
	"github.com/spf13/cobra"
)

var antitheftCmd = &cobra.Command{
	Use:     "antitheft",
	Aliases: []string{"anti-theft"},
	Short:   "Configure and trigger anti-theft mode",
}

var antitheftSetupCmd = &cobra.Command{
	Use:   "setup KEYWORD",
	Short: "Set the trigger keyword and recording options",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := antitheft.DefaultSetup(args[0])
		s.IsEnabled, _ = cmd.Flags().GetBool("enabled")
		s.EnableGPSTracking, _ = cmd.Flags().GetBool("gps")
		s.EnableAudioRecording, _ = cmd.Flags().GetBool("audio")
		s.EnableVideoRecording, _ = cmd.Flags().GetBool("video")
		s.TrackingIntervalSeconds, _ = cmd.Flags().GetInt("interval")
		s.RecordingDurationMinutes, _ = cmd.Flags().GetInt("duration")

		env, err := client.SetupAntiTheft(cmd.Context(), s)
		return printResult(cmd, env, err)
	},
}

var antitheftConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the anti-theft configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetAntiTheftConfig(cmd.Context())
		return printResult(cmd, env, err)
	},
}

var antitheftTriggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Start an anti-theft event",
	RunE: func(cmd *cobra.Command, args []string) error {
		by, _ := cmd.Flags().GetString("by")
		test, _ := cmd.Flags().GetBool("test")
		env, err := client.TriggerAntiTheft(cmd.Context(), antitheft.Trigger{TriggeredBy: by, IsTest: test})
		return printResult(cmd, env, err)
	},
}

var antitheftStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether an event is active",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.GetAntiTheftStatus(cmd.Context())
		return printResult(cmd, env, err)
	},
}

var antitheftLocateCmd = &cobra.Command{
	Use:   "locate EVENT_ID LAT,LON",
	Short: "Report a location for an active event",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := parsePoint(args[1])
		if err != nil {
			return err
		}
		lp := antitheft.LocationPoint{
			Latitude:     p.Latitude,
			Longitude:    p.Longitude,
			Timestamp:    p.Timestamp,
			BatteryLevel: optional(cmd, "battery", cmd.Flags().GetInt),
		}
		env, err := client.AddEventLocation(cmd.Context(), args[0], lp)
		return printResult(cmd, env, err)
	},
}

var antitheftDeactivateCmd = &cobra.Command{
	Use:   "deactivate EVENT_ID",
	Short: "End an anti-theft event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := client.DeactivateEvent(cmd.Context(), args[0])
		return printResult(cmd, env, err)
	},
}

var antitheftEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List past anti-theft events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		env, err := client.GetAntiTheftEvents(cmd.Context(), limit)
		return printResult(cmd, env, err)
	},
}

func init() {
	rootCmd.AddCommand(antitheftCmd)
	antitheftCmd.AddCommand(antitheftSetupCmd, antitheftConfigCmd, antitheftTriggerCmd, antitheftStatusCmd,
		antitheftLocateCmd, antitheftDeactivateCmd, antitheftEventsCmd)

	def := antitheft.DefaultSetup("")
	antitheftSetupCmd.Flags().Bool("enabled", def.IsEnabled, "enable anti-theft mode")
	antitheftSetupCmd.Flags().Bool("gps", def.EnableGPSTracking, "track GPS while active")
	antitheftSetupCmd.Flags().Bool("audio", def.EnableAudioRecording, "record audio while active")
	antitheftSetupCmd.Flags().Bool("video", def.EnableVideoRecording, "record video while active")
	antitheftSetupCmd.Flags().Int("interval", def.TrackingIntervalSeconds, "tracking interval in seconds")
	antitheftSetupCmd.Flags().Int("duration", def.RecordingDurationMinutes, "recording duration in minutes")

	antitheftTriggerCmd.Flags().String("by", "manual", "what triggered the event")
	antitheftTriggerCmd.Flags().Bool("test", false, "mark as a test event")

	antitheftLocateCmd.Flags().Int("battery", 0, "battery level percent")

	antitheftEventsCmd.Flags().Int("limit", 0, "number of events")
}
