package topics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Initialize installs the topic help system on rootCmd with default options.
func Initialize(rootCmd *cobra.Command, dir string) error {
	return InitializeWithOptions(rootCmd, dir, Options{})
}

// InitializeWithOptions installs a `help` command on rootCmd that serves both
// command help and file-backed topics, and rewires the --help flag so topic
// names work there too.
func InitializeWithOptions(rootCmd *cobra.Command, dir string, opts Options) error {
	m := NewWithOptions(dir, opts)

	if err := m.scan(); err != nil {
		return fmt.Errorf("failed to scan help topics: %w", err)
	}

	m.originalHelp = rootCmd.HelpFunc()
	appName := rootCmd.Name()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + appName + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + appName + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				m.originalHelp(rootCmd, []string{})
				return
			}

			if args[0] == "topics" {
				fmt.Print(m.index(appName))
				return
			}

			if topic, ok := m.Lookup(args[0]); ok {
				fmt.Print(m.render(topic))
				return
			}

			// Not a topic, let cobra resolve it as a command
			m.originalHelp(rootCmd, args)
		},
	}

	// Replace the builtin help command with ours
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "help" {
			rootCmd.RemoveCommand(cmd)
			break
		}
	}
	rootCmd.AddCommand(helpCmd)

	// --help with a topic name behaves the same as `help <topic>`
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			if topic, ok := m.Lookup(args[0]); ok {
				fmt.Print(m.render(topic))
				return
			}
		}
		m.originalHelp(cmd, args)
	})

	return nil
}

// index renders the listing shown by `help topics`, with option- prefixed
// topics grouped under their flag spelling.
func (m *Manager) index(appName string) string {
	names := m.Names()
	if len(names) == 0 {
		return "No help topics available.\n"
	}

	sort.Strings(names)

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	var b strings.Builder
	b.WriteString("Available help topics:\n")
	if len(general) > 0 {
		b.WriteString("\nGeneral topics:\n")
		for _, name := range general {
			fmt.Fprintf(&b, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		b.WriteString("\nOption topics:\n")
		for _, name := range options {
			fmt.Fprintf(&b, "  --%s\n", name)
		}
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)

	return b.String()
}
