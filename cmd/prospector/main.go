// Package main provides the prospector CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/prospector-hq/prospector/cli"
)

var (
	// Global flags
	provider string
	dbPath   string
	dataDir  string
	verbose  bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "prospector",
		Short: "LLM-driven technical interviews from resumes and job descriptions",
		Long: `Prospector turns a resume and a job description into a full technical
interview: targeted questions, interactive answering, per-answer scoring with
follow-up probing, and a saved report per candidate.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "gemini", "LLM provider (gemini, openai, anthropic, deepseek)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "prospector.db", "Database path for jobs and candidates")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "data", "Directory for resumes, reports and session history")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")

	// Add commands
	rootCmd.AddCommand(resumeCmd())
	rootCmd.AddCommand(jdCmd())
	rootCmd.AddCommand(questionsCmd())
	rootCmd.AddCommand(interviewCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(sessionsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func options() cli.Options {
	return cli.Options{
		Provider: provider,
		DBPath:   dbPath,
		DataDir:  dataDir,
		Verbose:  verbose,
	}
}

func resumeCmd() *cobra.Command {
	var jobTitle string

	cmd := &cobra.Command{
		Use:   "resume [file]",
		Short: "Extract structured data from a resume file",
		Long: `Extract structured data (personal details, projects, experience, skills)
from a raw resume text file. With --job, the candidate is also registered
against that job for interviewing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ProcessResume(context.Background(), args[0], jobTitle, options())
		},
	}

	cmd.Flags().StringVarP(&jobTitle, "job", "j", "", "Job title to register the candidate for")

	return cmd
}

func jdCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "jd [file]",
		Short: "Summarize a job description and register the job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ProcessJD(context.Background(), args[0], title, options())
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Job title (defaults to the title the model extracts)")

	return cmd
}

func questionsCmd() *cobra.Command {
	var jobTitle string

	cmd := &cobra.Command{
		Use:   "questions [resume-file]",
		Short: "Generate the interview question set for a resume and a job",
		Long: `Generate the full question set for a candidate: one section built from
the resume, one from the job description, and one combining both, each
ordered easiest to hardest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jobTitle == "" {
				return fmt.Errorf("--job is required")
			}
			return cli.GenerateQuestions(context.Background(), args[0], jobTitle, options())
		},
	}

	cmd.Flags().StringVarP(&jobTitle, "job", "j", "", "Registered job title")

	return cmd
}

func interviewCmd() *cobra.Command {
	var phone string

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run an interactive interview for a registered candidate",
		Long: `Run a full interactive interview. Questions are asked one at a time on
stdin; every answer is scored, weak answers earn follow-up questions, and the
final report is saved under the data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if phone == "" {
				return fmt.Errorf("--phone is required")
			}
			return cli.RunInterview(context.Background(), phone, options())
		},
	}

	cmd.Flags().StringVar(&phone, "phone", "", "Phone number of the registered candidate")

	return cmd
}

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage registered jobs",
	}

	addCmd := &cobra.Command{
		Use:   "add [title] [jd-file]",
		Short: "Register a job without LLM processing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.AddJob(context.Background(), args[0], args[1], options())
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs and their candidates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListJobs(context.Background(), options())
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Remove a job and its candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return cli.RemoveJob(context.Background(), id, options())
		},
	}

	renameCmd := &cobra.Command{
		Use:   "rename [id] [title]",
		Short: "Rename a job, moving its candidates with it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid job id %q", args[0])
			}
			return cli.RenameJob(context.Background(), id, args[1], options())
		},
	}

	cmd.AddCommand(addCmd, listCmd, rmCmd, renameCmd)
	return cmd
}

func sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect saved interview sessions",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ListSessions(options())
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [session-id]",
		Short: "Print a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.ShowSession(args[0], options())
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export [session-id]",
		Short: "Export one session to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = args[0] + ".json"
			}
			return cli.ExportSession(args[0], out, options())
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", "", "Output file (defaults to <session-id>.json)")

	cmd.AddCommand(listCmd, showCmd, exportCmd)
	return cmd
}
