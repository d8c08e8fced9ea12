package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"
)

// --- flags ---

var flagCmd = &cobra.Command{
	Use:   "flag",
	Short: "Read and set boolean preference flags",
}

var flagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known flags and their values",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var flags map[string]bool
		if err := client.getJSON(cmd.Context(), "/v1/flags", &flags); err != nil {
			return err
		}

		names := make([]string, 0, len(flags))
		for name := range flags {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%-35s %t\n", name, flags[name])
		}
		return nil
	},
}

var flagGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Read a flag value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var resp struct {
			Name  string `json:"name"`
			Value bool   `json:"value"`
		}
		if err := client.getJSON(cmd.Context(), "/v1/flags/"+args[0], &resp); err != nil {
			return err
		}
		fmt.Println(resp.Value)
		return nil
	},
}

var flagSetCmd = &cobra.Command{
	Use:   "set <name> <true|false>",
	Short: "Set a flag value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseBool(args[1])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", args[1], err)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return client.send(cmd.Context(), "PUT", "/v1/flags/"+args[0], map[string]bool{"value": value})
	},
}

// --- fonts ---

var fontCmd = &cobra.Command{
	Use:   "font",
	Short: "Read and set editor font sizes",
}

var fontGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the editor font size and family",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		stride, _ := cmd.Flags().GetBool("stride")
		if stride {
			var resp struct {
				Size int `json:"size"`
			}
			if err := client.getJSON(cmd.Context(), "/v1/font/stride", &resp); err != nil {
				return err
			}
			fmt.Printf("%dpt\n", resp.Size)
			return nil
		}

		var resp struct {
			Size   int    `json:"size"`
			Family string `json:"family"`
		}
		if err := client.getJSON(cmd.Context(), "/v1/font/editor", &resp); err != nil {
			return err
		}
		fmt.Printf("%dpt %s\n", resp.Size, resp.Family)
		return nil
	},
}

var fontSetCmd = &cobra.Command{
	Use:   "set <size>",
	Short: "Set the editor font size in points",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", args[0], err)
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/v1/font/editor"
		if stride, _ := cmd.Flags().GetBool("stride"); stride {
			path = "/v1/font/stride"
		}
		return client.send(cmd.Context(), "PUT", path, map[string]int{"size": size})
	},
}

// --- recent projects ---

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage the recent-projects list",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent projects, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		var resp struct {
			Projects []string `json:"projects"`
		}
		if err := client.getJSON(cmd.Context(), "/v1/recent", &resp); err != nil {
			return err
		}
		for _, p := range resp.Projects {
			fmt.Println(p)
		}
		return nil
	},
}

var recentAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Record a project path as most recently used",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return client.send(cmd.Context(), "POST", "/v1/recent", map[string]string{"path": args[0]})
	},
}

// --- style ---

var styleCmd = &cobra.Command{
	Use:   "style",
	Short: "Show the derived editor style declaration",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		path := "/v1/style"
		if family, _ := cmd.Flags().GetBool("family"); family {
			path += "?family=true"
		}

		var resp struct {
			Style string `json:"style"`
		}
		if err := client.getJSON(cmd.Context(), path, &resp); err != nil {
			return err
		}
		fmt.Println(resp.Style)
		return nil
	},
}

func init() {
	flagCmd.AddCommand(flagListCmd)
	flagCmd.AddCommand(flagGetCmd)
	flagCmd.AddCommand(flagSetCmd)

	fontGetCmd.Flags().Bool("stride", false, "operate on the stride editor font size")
	fontSetCmd.Flags().Bool("stride", false, "operate on the stride editor font size")
	fontCmd.AddCommand(fontGetCmd)
	fontCmd.AddCommand(fontSetCmd)

	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentAddCmd)

	styleCmd.Flags().Bool("family", false, "include the font family in the declaration")
}
