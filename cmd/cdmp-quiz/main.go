package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/FINAL094/CDMP-exam-practice/internal/i18n"
	"github.com/FINAL094/CDMP-exam-practice/internal/loader"
	"github.com/FINAL094/CDMP-exam-practice/internal/model"
	"github.com/FINAL094/CDMP-exam-practice/internal/runner"
)

// defaultWorkbook matches the filename the original desktop app shipped with.
const defaultWorkbook = "CDMP Practice Exam.xlsx"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cdmp-quiz",
		Short:         "Offline CDMP multiple-choice exam trainer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	run := runCmd()
	root.AddCommand(run, exportCmd())

	// Make "run" the default when no subcommand is given.
	root.RunE = run.RunE

	// Register run flags on root so bare `cdmp-quiz --file ...` still works.
	root.Flags().AddFlagSet(run.Flags())

	return root
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive quiz in the terminal",
		RunE:  runQuiz,
	}
	f := cmd.Flags()
	f.StringP("file", "f", defaultWorkbook, "Path to the question workbook")
	f.StringP("chapter", "c", "all", "Chapter to practice (number, name, or 'all')")
	f.Bool("shuffle-questions", false, "Randomize question order")
	f.Bool("shuffle-options", false, "Randomize answer option order")
	f.Int("seconds-per-question", 30, "Time budget per question (0 = untimed)")
	f.StringP("lang", "l", "en", "UI language (en, ar)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the normalized question bank as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.StringP("file", "f", defaultWorkbook, "Path to the question workbook")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("CDMP_QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("cdmp-quiz")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/cdmp-quiz")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func loadWorkbook(path string) ([]model.Question, error) {
	questions, err := loader.Load(path)
	if err != nil {
		// Tell a missing file apart from a present-but-unusable one.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("questions file not found: %s (place the workbook next to the program or pass --file)", path)
		}
		var ferr *loader.FormatError
		if errors.As(err, &ferr) {
			return nil, fmt.Errorf("unsupported workbook %s: %w", path, ferr)
		}
		return nil, err
	}
	return questions, nil
}

func runQuiz(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	path := v.GetString("file")
	questions, err := loadWorkbook(path)
	if err != nil {
		return err
	}
	slog.Info("loaded questions", "path", path, "count", len(questions))

	lang := v.GetString("lang")
	tr, err := i18n.New(lang)
	if err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	cfg := model.RunConfig{
		File:               path,
		Chapter:            v.GetString("chapter"),
		ShuffleQuestions:   v.GetBool("shuffle-questions"),
		ShuffleOptions:     v.GetBool("shuffle-options"),
		SecondsPerQuestion: v.GetInt("seconds-per-question"),
		Lang:               lang,
	}
	slog.Debug("starting quiz",
		"chapter", cfg.Chapter,
		"shuffle_questions", cfg.ShuffleQuestions,
		"shuffle_options", cfg.ShuffleOptions,
		"seconds_per_question", cfg.SecondsPerQuestion,
	)

	return runner.New(os.Stdin, os.Stdout, tr).Run(questions, cfg)
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	path := v.GetString("file")
	questions, err := loadWorkbook(path)
	if err != nil {
		return err
	}

	export := model.NewBankExport(path, questions)
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	return nil
}
