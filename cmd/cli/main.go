package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ncaufield/devportal/internal/config"
	"github.com/ncaufield/devportal/pkg/clients/sheetsclient"
	"github.com/ncaufield/devportal/pkg/core/dates"
	"github.com/ncaufield/devportal/pkg/core/model"
	"github.com/ncaufield/devportal/pkg/core/schedule"
	"github.com/ncaufield/devportal/pkg/core/services"
	"github.com/ncaufield/devportal/pkg/postgres"
	"github.com/ncaufield/devportal/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg      *config.Config
	database *postgres.DB
	logger   *zap.Logger
	ctx      context.Context
}

var (
	verbose bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal",
		Short: "Dev portal CLI - Manage on-duty and on-call schedules",
		Long:  `A CLI tool for managing the portal's on-duty and on-call schedules, roster, and spreadsheet transfers.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
			if app != nil && app.database != nil {
				app.database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(listMembersCmd())
	rootCmd.AddCommand(editCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger("cli", verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Loading configuration")
	app.cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, app.cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Info("Database initialized successfully")

	return nil
}

func parseTrack(arg string) (model.Track, error) {
	track := model.Track(arg)
	if !track.IsValid() {
		return "", fmt.Errorf("track must be %q or %q", model.TrackOnDuty, model.TrackOnCall)
	}
	return track, nil
}

func parseYear(arg string) (int, error) {
	year, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("year must be a number: %w", err)
	}
	return year, nil
}

// Command definitions

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <track> <year>",
		Short: "Generate a year's schedule from the configured recurrence rule",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			save, _ := cmd.Flags().GetBool("save")

			members, err := app.database.ListMembers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			switch track {
			case model.TrackOnDuty:
				shifts, err := services.GenerateOnDuty(app.logger, app.cfg.OnDutyRule.RRule, members, year)
				if err != nil {
					return err
				}
				printOnDuty(shifts, members)
				if save {
					if err := app.database.ReplaceOnDutyShifts(app.ctx, year, shifts); err != nil {
						return fmt.Errorf("failed to save schedule: %w", err)
					}
					fmt.Printf("\nSaved %d shifts for %d.\n", len(shifts), year)
				}
			case model.TrackOnCall:
				shifts, err := services.GenerateOnCall(app.logger, app.cfg.OnCallRule.RRule, members, year)
				if err != nil {
					return err
				}
				printOnCall(shifts, members)
				if save {
					if err := app.database.ReplaceOnCallShifts(app.ctx, year, shifts); err != nil {
						return fmt.Errorf("failed to save schedule: %w", err)
					}
					fmt.Printf("\nSaved %d shifts for %d.\n", len(shifts), year)
				}
			}

			return nil
		},
	}

	cmd.Flags().Bool("save", false, "Replace the stored schedule with the generated one")

	return cmd
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <track> <year> <file>",
		Short: "Import a schedule from an xlsx workbook, replacing the stored list",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}

			file, err := os.Open(args[2])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[2], err)
			}
			defer file.Close()

			count, err := services.ImportSchedule(app.ctx, app.database, app.logger, track, year, file)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d shifts into %s %d.\n", count, track, year)
			return nil
		},
	}
}

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <track> <year> <file>",
		Short: "Export the stored schedule to an xlsx workbook",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}

			file, err := os.Create(args[2])
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", args[2], err)
			}
			defer file.Close()

			if err := services.ExportSchedule(app.ctx, app.database, app.database, app.logger, track, year, file); err != nil {
				return err
			}

			fmt.Printf("Exported %s %d to %s.\n", track, year, args[2])
			return nil
		},
	}
}

func publishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <year>",
		Short: "Publish both tracks for a year to the shared spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}
			if app.cfg.ScheduleSheetID == "" {
				return fmt.Errorf("scheduleSheetID is not configured")
			}
			if app.cfg.OAuthClient == nil {
				return fmt.Errorf("oauthClient is not configured")
			}

			app.logger.Info("Initializing sheets client")
			client, err := sheetsclient.NewClient(app.ctx, app.cfg.OAuthClient)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			members, err := app.database.ListMembers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			onDuty, err := app.database.GetOnDutyShifts(app.ctx, year)
			if err != nil {
				return fmt.Errorf("failed to load on-duty schedule: %w", err)
			}
			if err := client.PublishOnDuty(app.logger, app.cfg.ScheduleSheetID, year, onDuty, members); err != nil {
				return err
			}

			onCall, err := app.database.GetOnCallShifts(app.ctx, year)
			if err != nil {
				return fmt.Errorf("failed to load on-call schedule: %w", err)
			}
			if err := client.PublishOnCall(app.logger, app.cfg.ScheduleSheetID, year, onCall, members); err != nil {
				return err
			}

			fmt.Printf("Published both tracks for %d.\n", year)
			return nil
		},
	}
}

func listMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listMembers",
		Short: "List the roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.database.ListMembers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			fmt.Printf("\nFound %d members:\n\n", len(members))
			for _, m := range members {
				teamInfo := ""
				if m.Team != "" {
					teamInfo = fmt.Sprintf(" [%s]", m.Team)
				}
				fmt.Printf("- %s (%s) - %s%s\n", m.FullName, m.ID, m.Role, teamInfo)
			}

			return nil
		},
	}
}

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <year>",
		Short: "Edit a year's schedule interactively",
		Long: `Open an interactive editing session over both tracks of a year's schedule.
Every edit can be undone until you save; nothing is stored until 'save'.

Type 'help' to see the editing commands.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[0])
			if err != nil {
				return err
			}

			board, err := services.LoadBoard(app.ctx, app.database, app.database, app.logger, app.cfg.Years, year)
			if err != nil {
				return err
			}

			members, err := app.database.ListMembers(app.ctx)
			if err != nil {
				return fmt.Errorf("failed to list members: %w", err)
			}

			return runEditSession(board, members)
		},
	}
}

// runEditSession drives the interactive board loop until save or exit
func runEditSession(board *schedule.Board, members []model.Member) error {
	fmt.Printf("\nEditing %d. Type 'help' for commands, 'save' to persist, 'exit' to discard.\n\n", board.Year)
	printBoard(board, members)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("[%s %d]> ", board.Mode, board.Year)

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmdName := parts[0]
		cmdArgs := parts[1:]

		switch cmdName {
		case "exit", "quit":
			if board.CanUndo() {
				fmt.Println("Discarding unsaved edits.")
			}
			return nil

		case "help":
			printEditHelp()

		case "show":
			printBoard(board, members)

		case "mode":
			board.Toggle()
			printBoard(board, members)

		case "year":
			if len(cmdArgs) != 1 {
				fmt.Println("Usage: year <year>")
				continue
			}
			year, err := strconv.Atoi(cmdArgs[0])
			if err != nil {
				fmt.Println("Year must be a number.")
				continue
			}
			if err := board.SelectYear(year); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fresh, err := services.LoadBoard(app.ctx, app.database, app.database, app.logger, board.Years, year)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			*board = *fresh
			printBoard(board, members)

		case "add":
			if board.Mode == model.TrackOnDuty {
				board.AddOnDuty()
			} else {
				board.AddOnCall()
			}
			printBoard(board, members)

		case "after":
			if len(cmdArgs) != 1 {
				fmt.Println("Usage: after <shift_id>")
				continue
			}
			if board.Mode == model.TrackOnDuty {
				board.AddOnDutyAfter(cmdArgs[0])
			} else {
				board.AddOnCallAfter(cmdArgs[0])
			}
			printBoard(board, members)

		case "split":
			if len(cmdArgs) != 1 {
				fmt.Println("Usage: split <shift_id>")
				continue
			}
			if board.Mode == model.TrackOnDuty {
				board.SplitOnDuty(cmdArgs[0])
			} else {
				board.SplitOnCall(cmdArgs[0])
			}
			printBoard(board, members)

		case "delete":
			if len(cmdArgs) != 1 {
				fmt.Println("Usage: delete <shift_id>")
				continue
			}
			if board.Mode == model.TrackOnDuty {
				board.DeleteOnDuty(cmdArgs[0])
			} else {
				board.DeleteOnCall(cmdArgs[0])
			}
			printBoard(board, members)

		case "assign":
			if len(cmdArgs) != 2 {
				fmt.Println("Usage: assign <shift_id> <member_id>")
				continue
			}
			assignee := cmdArgs[1]
			if board.Mode == model.TrackOnDuty {
				board.UpdateOnDuty(cmdArgs[0], schedule.OnDutyPatch{ShiftPatch: schedule.ShiftPatch{AssigneeID: &assignee}})
			} else {
				board.UpdateOnCall(cmdArgs[0], schedule.OnCallPatch{ShiftPatch: schedule.ShiftPatch{AssigneeID: &assignee}})
			}
			printBoard(board, members)

		case "note":
			if len(cmdArgs) < 2 {
				fmt.Println("Usage: note <shift_id> <text>")
				continue
			}
			text := strings.Join(cmdArgs[1:], " ")
			if board.Mode == model.TrackOnDuty {
				board.UpdateOnDuty(cmdArgs[0], schedule.OnDutyPatch{Notes: &text})
			} else {
				board.UpdateOnCall(cmdArgs[0], schedule.OnCallPatch{Escalation: &text})
			}
			printBoard(board, members)

		case "undo":
			if !board.Undo() {
				fmt.Println("Nothing to undo.")
				continue
			}
			printBoard(board, members)

		case "save":
			if err := services.SaveBoard(app.ctx, app.database, app.logger, board); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Saved %d on-duty and %d on-call shifts for %d.\n",
				len(board.OnDuty), len(board.OnCall), board.Year)
			return nil

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmdName)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	return nil
}

func printEditHelp() {
	fmt.Println(`
Editing commands:
  show                       Print the active track
  mode                       Toggle between on-duty and on-call
  year <year>                Switch to another selectable year
  add                        Append a shift (today, one day)
  after <shift_id>           Insert a one-day shift after another
  split <shift_id>           Split a shift into two halves
  delete <shift_id>          Remove a shift
  assign <shift_id> <member> Reassign a shift
  note <shift_id> <text>     Set the notes (or escalation) field
  undo                       Revert the most recent edit
  save                       Persist both tracks and exit
  exit, quit                 Leave without saving`)
}

func printBoard(board *schedule.Board, members []model.Member) {
	if board.Mode == model.TrackOnDuty {
		printOnDuty(board.OnDuty, members)
	} else {
		printOnCall(board.OnCall, members)
	}
}

func printOnDuty(shifts []model.OnDutyShift, members []model.Member) {
	fmt.Printf("\nOn duty (%d shifts):\n", len(shifts))
	for _, s := range shifts {
		extra := ""
		if s.Notes != "" {
			extra = " - " + s.Notes
		}
		printShiftLine(s.Shift, members, extra)
	}
	fmt.Println()
}

func printOnCall(shifts []model.OnCallShift, members []model.Member) {
	fmt.Printf("\nOn call (%d shifts):\n", len(shifts))
	for _, s := range shifts {
		extra := ""
		if s.Escalation != "" {
			extra = " - escalates to " + memberName(members, s.Escalation)
		}
		printShiftLine(s.Shift, members, extra)
	}
	fmt.Println()
}

func printShiftLine(s model.Shift, members []model.Member, extra string) {
	fmt.Printf("  %-22s %s -> %s (%2d days)  %s%s\n",
		s.ID, s.Start, s.End, dates.DaysBetween(s.Start, s.End), memberName(members, s.AssigneeID), extra)
}

func memberName(members []model.Member, id string) string {
	for _, m := range members {
		if m.ID == id {
			return m.FullName
		}
	}
	return id
}
