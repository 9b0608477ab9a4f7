package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cuemby/n8nup/pkg/upgrade"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the detected environment and the running n8n version",
	Long: `Probe the compose environment, locate the n8n service, and report the
currently running version. Nothing is changed.

Examples:
  # Human-readable status
  n8nup status

  # Machine-readable status
  n8nup status -o yaml
  n8nup status -o json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "text", "Output format (text, yaml, json)")
	statusCmd.Flags().StringP("file", "f", "", "Compose file (default: auto-detect)")
	statusCmd.Flags().StringP("project-dir", "d", ".", "Compose project directory")

	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("project-dir")

	u := upgrade.New(upgrade.Config{Dir: dir, File: file})
	st, err := u.Status(cmd.Context())
	if err != nil {
		return err
	}

	switch output {
	case "text":
		fmt.Printf("Compose command: %s\n", st.ComposeStyle)
		fmt.Printf("Compose file:    %s\n", st.ComposeFile)
		fmt.Printf("Service:         %s\n", st.Service)
		if st.Image != "" {
			fmt.Printf("Declared image:  %s\n", st.Image)
		}
		fmt.Printf("Running:         %v\n", st.Running)
		fmt.Printf("Version:         %s\n", st.Version)
		fmt.Printf("Supports --wait: %v\n", st.SupportsWait)
	case "yaml":
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %v", err)
		}
		fmt.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %v", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}

	return nil
}
