package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/cadcopilot/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage deployment profiles",
	Long:  `Manage deployment profiles: the service URL and the document, workspace and element the instructions apply to.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Service: %s\n", cfg.Profiles[name].ServiceBaseURL)
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Print(describeDeployment(profile))
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:    "Profile name",
				Validate: required,
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptDeployment(config.DefaultDeployment())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName, err := pickProfile(cfg, args, "Select profile to edit", "")
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err = promptDeployment(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName, err := pickProfile(cfg, args, "Select profile to delete", "")
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'? (y/N)", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		removeProfile(cfg, profileName)

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName, err := pickProfile(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if errors.Is(err, errNoProfiles) {
			fmt.Println("No other profiles available to switch to")
			return
		}
		if err != nil {
			log.Fatalf("Selection failed: %v", err)
		}

		if err := cfg.UseProfile(profileName); err != nil {
			log.Fatalf("%v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

var errNoProfiles = errors.New("no profiles available")

// pickProfile returns the profile named in args, or asks for one among the
// profiles other than exclude.
func pickProfile(cfg *config.Config, args []string, label, exclude string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	var names []string
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errNoProfiles
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	return name, err
}

// removeProfile deletes name, moving the active profile elsewhere and
// recreating the default profile when the last one goes.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)

	if len(cfg.Profiles) == 0 {
		cfg.Profiles[config.DefaultProfile] = config.DefaultDeployment()
	}
	if cfg.ActiveProfile == name {
		cfg.ActiveProfile = cfg.ProfileNames()[0]
	}
}

func promptDeployment(d config.Deployment) (config.Deployment, error) {
	fields := []struct {
		label    string
		value    *string
		validate promptui.ValidateFunc
	}{
		{"Service base URL", &d.ServiceBaseURL, validateBaseURL},
		{"Document ID (did)", &d.DocumentID, required},
		{"Workspace ID (wid)", &d.WorkspaceID, required},
		{"Element ID (eid)", &d.ElementID, required},
	}
	for _, f := range fields {
		prompt := promptui.Prompt{
			Label:    f.label,
			Default:  *f.value,
			Validate: f.validate,
		}
		v, err := prompt.Run()
		if err != nil {
			return d, err
		}
		*f.value = strings.TrimSpace(v)
	}

	timeoutDefault := ""
	if d.RequestTimeout > 0 {
		timeoutDefault = d.RequestTimeout.String()
	}
	timeoutPrompt := promptui.Prompt{
		Label:    "Request timeout (empty waits indefinitely)",
		Default:  timeoutDefault,
		Validate: validateTimeout,
	}
	raw, err := timeoutPrompt.Run()
	if err != nil {
		return d, err
	}
	d.RequestTimeout, _ = parseTimeout(raw)

	return d, d.Validate()
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func validateBaseURL(s string) error {
	d := config.DefaultDeployment()
	d.ServiceBaseURL = s
	return d.Validate()
}

func validateTimeout(s string) error {
	_, err := parseTimeout(s)
	return err
}

func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.New("timeout must not be negative")
	}
	return d, nil
}

func describeDeployment(d config.Deployment) string {
	timeout := "none"
	if d.RequestTimeout > 0 {
		timeout = d.RequestTimeout.String()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Service Base URL: %s\n", d.ServiceBaseURL)
	fmt.Fprintf(&b, "Document ID: %s\n", d.DocumentID)
	fmt.Fprintf(&b, "Workspace ID: %s\n", d.WorkspaceID)
	fmt.Fprintf(&b, "Element ID: %s\n", d.ElementID)
	fmt.Fprintf(&b, "Request Timeout: %s\n", timeout)
	return b.String()
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
