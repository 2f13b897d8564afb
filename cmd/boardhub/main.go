package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/boardhub/boardhub-go/internal/client"
	"github.com/boardhub/boardhub-go/internal/config"
	"github.com/boardhub/boardhub-go/internal/export"
	"github.com/boardhub/boardhub-go/internal/logger"
	"github.com/boardhub/boardhub-go/internal/models"
	"github.com/boardhub/boardhub-go/internal/services"
	"github.com/boardhub/boardhub-go/internal/tui"
	"github.com/boardhub/boardhub-go/internal/utils"
)

var (
	cfg     *config.Config
	service *services.BoardService
)

func setupConfig(configPath, token, apiURL string, timeout int, strictStatus bool) error {
	cfg = config.NewConfig()

	if err := cfg.LoadFromFile(configPath); err != nil {
		return err
	}

	cfg.LoadFromEnvironment()

	if token != "" {
		cfg.Token = token
	}
	if apiURL != "" {
		cfg.BaseURL = apiURL
	}
	if timeout > 0 {
		cfg.Timeout = time.Duration(timeout) * time.Second
	}
	if strictStatus {
		cfg.StrictStatus = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	service = services.NewBoardService(client.NewAPIClient(cfg))
	return nil
}

func parseID(arg, what string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		logger.Fatal("Invalid %s %q: must be a number", what, arg)
	}
	return id
}

// parseIssueRefs parses "repo-id/issue-number" pairs from repeated flags
func parseIssueRefs(refs []string) []models.IssueRef {
	parsed := make([]models.IssueRef, 0, len(refs))
	for _, ref := range refs {
		parts := strings.SplitN(ref, "/", 2)
		if len(parts) != 2 {
			logger.Fatal("Invalid issue reference %q: expected repo-id/issue-number", ref)
		}
		parsed = append(parsed, models.IssueRef{
			RepoID:      parseID(parts[0], "repository id"),
			IssueNumber: int(parseID(parts[1], "issue number")),
		})
	}
	return parsed
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode output: %v", err)
	}
	fmt.Println(string(data))
}

func main() {
	utils.LoadEnvironment()
	logger.Init()

	var (
		configPath   string
		token        string
		apiURL       string
		timeout      int
		strictStatus bool
	)

	rootCmd := &cobra.Command{
		Use:   "boardhub",
		Short: "A CLI for the BoardHub project-management API",
		Long:  `boardhub queries and updates boards, issues and epics through the BoardHub API.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := setupConfig(configPath, token, apiURL, timeout, strictStatus); err != nil {
				logger.Fatal("Configuration error: %v", err)
			}
		},
	}

	var useTUI bool
	boardCmd := &cobra.Command{
		Use:   "board <repo-id>",
		Short: "Show the board pipelines of a repository",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			repoID := parseID(args[0], "repository id")

			if useTUI {
				if err := logger.InitFileOnly(); err != nil {
					logger.Fatal("Failed to initialize file logging: %v", err)
				}
				defer logger.Close()

				if err := tui.NewBoardViewer(service, repoID).Run(); err != nil {
					logger.Fatal("Board viewer failed: %v", err)
				}
				return
			}

			pipelines, err := service.GetBoard(repoID)
			if err != nil {
				logger.Fatal("Failed to fetch board: %v", err)
			}
			printJSON(pipelines)
		},
	}
	boardCmd.Flags().BoolVarP(&useTUI, "tui", "", false, "Open the interactive board viewer")

	issueCmd := &cobra.Command{
		Use:   "issue <repo-id> <issue-number>",
		Short: "Show the tracking data of an issue",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			issue, err := service.GetIssue(parseID(args[0], "repository id"), int(parseID(args[1], "issue number")))
			if err != nil {
				logger.Fatal("Failed to fetch issue: %v", err)
			}
			printJSON(issue)
		},
	}

	eventsCmd := &cobra.Command{
		Use:   "events <repo-id> <issue-number>",
		Short: "Show the event history of an issue",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			events, err := service.GetIssueEvents(parseID(args[0], "repository id"), int(parseID(args[1], "issue number")))
			if err != nil {
				logger.Fatal("Failed to fetch issue events: %v", err)
			}
			printJSON(events)
		},
	}

	epicsCmd := &cobra.Command{
		Use:   "epics <repo-id>",
		Short: "List the epics of a repository",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			epics, err := service.GetEpics(parseID(args[0], "repository id"))
			if err != nil {
				logger.Fatal("Failed to fetch epics: %v", err)
			}
			printJSON(epics)
		},
	}

	epicCmd := &cobra.Command{
		Use:   "epic <repo-id> <epic-id>",
		Short: "Show an epic with its child issues",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			epic, err := service.GetEpicData(parseID(args[0], "repository id"), int(parseID(args[1], "epic id")))
			if err != nil {
				logger.Fatal("Failed to fetch epic: %v", err)
			}
			printJSON(epic)
		},
	}

	estimateCmd := &cobra.Command{
		Use:   "estimate <repo-id> <issue-number> <value>",
		Short: "Set the point estimate of an issue",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				logger.Fatal("Invalid estimate %q: must be a number", args[2])
			}

			result, err := service.SetEstimateForIssue(parseID(args[0], "repository id"), int(parseID(args[1], "issue number")), value)
			if err != nil {
				logger.Fatal("Failed to set estimate: %v", err)
			}
			printJSON(result)
		},
	}

	var addRefs, removeRefs []string
	epicIssuesCmd := &cobra.Command{
		Use:   "epic-issues <repo-id> <epic-id>",
		Short: "Add or remove child issues of an epic",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			payload := models.UpdateEpicIssuesPayload{
				AddIssues:    parseIssueRefs(addRefs),
				RemoveIssues: parseIssueRefs(removeRefs),
			}
			if len(payload.AddIssues) == 0 && len(payload.RemoveIssues) == 0 {
				logger.Fatal("Nothing to do: pass --add and/or --remove")
			}

			raw, err := service.AddRemoveIssuesToEpic(parseID(args[0], "repository id"), int(parseID(args[1], "epic id")), payload)
			if err != nil {
				logger.Fatal("Failed to update epic issues: %v", err)
			}
			printRaw(raw)
		},
	}
	epicIssuesCmd.Flags().StringArrayVarP(&addRefs, "add", "a", nil, "Issue to add as repo-id/issue-number (repeatable)")
	epicIssuesCmd.Flags().StringArrayVarP(&removeRefs, "remove", "r", nil, "Issue to remove as repo-id/issue-number (repeatable)")

	var seedRefs []string
	convertCmd := &cobra.Command{
		Use:   "convert <repo-id> <issue-number>",
		Short: "Convert an issue into an epic",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			payload := models.ConvertToEpicPayload{
				Issues: parseIssueRefs(seedRefs),
			}

			raw, err := service.ConvertIssueToEpic(parseID(args[0], "repository id"), int(parseID(args[1], "issue number")), payload)
			if err != nil {
				logger.Fatal("Failed to convert issue: %v", err)
			}
			printRaw(raw)
		},
	}
	convertCmd.Flags().StringArrayVarP(&seedRefs, "issue", "i", nil, "Child issue as repo-id/issue-number (repeatable)")

	var ifStale bool
	var maxAgeHours int
	exportCmd := &cobra.Command{
		Use:   "export <repo-id>",
		Short: "Write board and epic snapshots to the local data directory",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			repoID := parseID(args[0], "repository id")

			if ifStale {
				lastExported, err := export.GetLastExported(cfg.OutputDir, repoID)
				if err != nil {
					logger.Fatal("Failed to read export state: %v", err)
				}
				if !utils.IsStale(lastExported, time.Duration(maxAgeHours)*time.Hour) {
					logger.Info("Snapshot for repository %d is fresh enough, skipping", repoID)
					return
				}
			}

			pipelines, err := service.GetBoard(repoID)
			if err != nil {
				logger.Fatal("Failed to fetch board: %v", err)
			}

			epics, err := service.GetEpics(repoID)
			if err != nil {
				logger.Fatal("Failed to fetch epics: %v", err)
			}

			boardPath, err := export.WriteSnapshot(cfg.OutputDir, repoID, "board", pipelines)
			if err != nil {
				logger.Fatal("Failed to write board snapshot: %v", err)
			}
			logger.Info("Board snapshot written: %s", boardPath)

			epicsPath, err := export.WriteSnapshot(cfg.OutputDir, repoID, "epics", epics)
			if err != nil {
				logger.Fatal("Failed to write epics snapshot: %v", err)
			}
			logger.Info("Epics snapshot written: %s", epicsPath)
		},
	}
	exportCmd.Flags().BoolVarP(&ifStale, "if-stale", "", false, "Only export if the last snapshot is older than --max-age")
	exportCmd.Flags().IntVarP(&maxAgeHours, "max-age", "", 24, "Snapshot age in hours before --if-stale exports again")

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "boardhub.yaml", "Path to the yaml config file")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "API access token (or BOARDHUB_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&apiURL, "api-url", "u", "", "API base URL (or BOARDHUB_API_URL)")
	rootCmd.PersistentFlags().IntVarP(&timeout, "timeout", "", 0, "Request timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(&strictStatus, "strict-status", "", false, "Apply the response status check to POST/PUT too")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(issueCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(epicsCmd)
	rootCmd.AddCommand(epicCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(epicIssuesCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(exportCmd)

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to execute command: %v", err)
	}
}

// printRaw pretty-prints a raw response body, falling back to the bytes
// as-is when the body is not valid JSON
func printRaw(raw json.RawMessage) {
	if len(raw) == 0 {
		fmt.Println("{}")
		return
	}

	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		fmt.Println(string(raw))
		return
	}
	printJSON(v)
}
