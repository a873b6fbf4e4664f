package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/gamenight/attendance/pkg/core/attendance"
	"github.com/gamenight/attendance/pkg/core/services"
)

// overviewSession keeps one loaded overview and re-renders it as the filters change
type overviewSession struct {
	overview     *attendance.Overview
	filter       attendance.Filter
	byDepartment bool
	load         func() (*attendance.Overview, error)
	r            *renderer
}

func newOverviewSession(load func() (*attendance.Overview, error), r *renderer) *overviewSession {
	return &overviewSession{
		filter: attendance.Filter{Department: attendance.AllDepartments},
		load:   load,
		r:      r,
	}
}

func (s *overviewSession) reload() error {
	overview, err := s.load()
	if err != nil {
		return err
	}
	s.overview = overview
	return nil
}

func (s *overviewSession) render() {
	renderOverview(s.r, s.overview, s.filter, s.byDepartment)
	s.r.printf("%s\n", s.describeFilter())
}

func (s *overviewSession) describeFilter() string {
	search := s.filter.Query
	if search == "" {
		search = "(none)"
	}
	view := "table"
	if s.byDepartment {
		view = "department"
	}
	return fmt.Sprintf("search: %s | department: %s | inactive: %t | view: %s",
		search, s.filter.Department, s.filter.ShowInactive, view)
}

// handle applies one command line. It returns true when the session should end.
func (s *overviewSession) handle(parts []string) (bool, error) {
	if len(parts) == 0 {
		return false, nil
	}
	name, args := parts[0], parts[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		printInteractiveHelp(s.r.w)
		return false, nil
	case "search":
		s.filter.Query = strings.Join(args, " ")
	case "department", "dept":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: department <name|all>")
		}
		dept, err := parseDepartmentFilter(args[0])
		if err != nil {
			return false, err
		}
		s.filter.Department = dept
	case "inactive":
		s.filter.ShowInactive = !s.filter.ShowInactive
	case "view":
		if len(args) != 1 || (args[0] != "table" && args[0] != "department") {
			return false, fmt.Errorf("usage: view <table|department>")
		}
		s.byDepartment = args[0] == "department"
	case "clear":
		s.filter = attendance.Filter{Department: attendance.AllDepartments}
	case "reload":
		if err := s.reload(); err != nil {
			return false, err
		}
	case "show":
	default:
		return false, fmt.Errorf("unknown command: %s (type 'help' for available commands)", name)
	}

	s.render()
	return false, nil
}

// run reads commands from in until exit or end of input
func (s *overviewSession) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for {
		s.r.printf("> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := parseCommandLine(line)
		if err != nil {
			s.r.printf("❌ Error parsing command: %v\n\n", err)
			continue
		}

		quit, err := s.handle(parts)
		if err != nil {
			s.r.printf("❌ Error: %v\n\n", err)
			continue
		}
		if quit {
			s.r.printf("👋 Goodbye!\n")
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Load the overview once and explore it with search and filter commands",
		Long: `Loads every volunteer, game date and attendance record once, then lets you
change the search text, department and inactive toggle without fetching again.
Use 'reload' to fetch fresh data.

Type 'help' to see available commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := newRenderer(cmd.OutOrStdout(), !app.NoColor)
			session := newOverviewSession(func() (*attendance.Overview, error) {
				return services.ViewOverview(app.Ctx, app.Database, app.Logger)
			}, r)

			r.printf("\n🚀 Loading attendance overview...\n")
			if err := session.reload(); err != nil {
				return fmt.Errorf("failed to load overview: %w", err)
			}
			session.render()
			r.printf("Type 'help' for available commands, 'exit' or 'quit' to leave\n")

			return session.run(cmd.InOrStdin())
		},
	}
}

func printInteractiveHelp(w io.Writer) {
	fmt.Fprintln(w, "\nAvailable commands:")
	fmt.Fprintf(w, "  %-30s %s\n", "search [text]", "Filter by name (no text clears the search)")
	fmt.Fprintf(w, "  %-30s %s\n", "department <name|all>", "Filter by department")
	fmt.Fprintf(w, "  %-30s %s\n", "inactive", "Toggle showing inactive volunteers")
	fmt.Fprintf(w, "  %-30s %s\n", "view <table|department>", "Switch between the table and department cards")
	fmt.Fprintf(w, "  %-30s %s\n", "clear", "Reset all filters")
	fmt.Fprintf(w, "  %-30s %s\n", "show", "Render the current view again")
	fmt.Fprintf(w, "  %-30s %s\n", "reload", "Fetch fresh data from the store")
	fmt.Fprintln(w, "\n  help                           Show this help message")
	fmt.Fprintln(w, "  exit, quit                     Exit the interactive session")
}

// parseCommandLine splits a command line into arguments, respecting quoted strings
// Supports both single and double quotes
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune // 0 if not in quote, '"' or '\'' if in quote

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
		case unicode.IsSpace(r):
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args, nil
}
