package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Search
	searchText    string
	extensionList string
	caseSensitive bool
	showLines     bool

	// Filtering
	excludePatterns string
	useIgnore       bool
	skipHidden      bool
	maxSizeBytes    int64

	// Output
	outputFile      string
	copyToClipboard bool
	pdfOutputFile   string

	// Processing
	numThreads int

	// Interactive mode
	interactiveMode bool
)

// version is the application version, set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "kemet [PATH]",
	Short: "kemet searches file contents for a literal substring.",
	Long: `kemet recursively walks a directory tree, filters files by extension,
and searches their text content for a literal substring. Results go to the
console, a text file, the clipboard, or a PDF.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) == 1 {
			root = args[0]
		}

		if interactiveMode {
			picked, err := pickSearchRoot(skipHidden)
			if err != nil {
				return err
			}
			if picked == "" {
				return nil // user aborted the selection
			}
			root = picked
		}

		if isGitURL(root) {
			tempDir, err := cloneSearchRoot(root)
			if err != nil {
				return err
			}
			defer func() {
				_ = os.RemoveAll(tempDir)
			}()
			root = tempDir
		}

		cfg, err := newSearchConfig(root, searchText, extensionList, excludePatterns,
			caseSensitive, showLines, useIgnore, skipHidden, outputFile, maxSizeBytes, numThreads)
		if err != nil {
			return err
		}

		sum := runSearch(cfg)
		return emitResults(cfg, sum, pdfOutputFile, copyToClipboard)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Search
	rootCmd.Flags().StringVarP(&searchText, "search", "s", "", "Text to search for (required)")
	viper.BindPFlag("search", rootCmd.Flags().Lookup("search"))
	rootCmd.Flags().StringVarP(&extensionList, "extensions", "e", "", "Comma-separated file extensions (default: txt,json,cs,sql,config,rs,py,js,ts,html,css,xml)")
	viper.BindPFlag("extensions", rootCmd.Flags().Lookup("extensions"))
	viper.BindPFlag("default_extensions", rootCmd.Flags().Lookup("extensions"))
	rootCmd.Flags().BoolVarP(&caseSensitive, "case-sensitive", "c", false, "Enable case-sensitive search")
	viper.BindPFlag("case_sensitive", rootCmd.Flags().Lookup("case-sensitive"))
	rootCmd.Flags().BoolVarP(&showLines, "show-lines", "l", false, "Show matching line content")
	viper.BindPFlag("show_lines", rootCmd.Flags().Lookup("show-lines"))

	// Filtering
	rootCmd.Flags().StringVar(&excludePatterns, "exclude", "", "Glob patterns to exclude (comma-separated, e.g. **/node_modules/**,*.min.js)")
	viper.BindPFlag("exclude", rootCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("default_excludes", rootCmd.Flags().Lookup("exclude"))
	rootCmd.Flags().BoolVar(&useIgnore, "use-ignore", false, "Respect the root's .gitignore file")
	viper.BindPFlag("use_ignore", rootCmd.Flags().Lookup("use-ignore"))
	rootCmd.Flags().BoolVar(&skipHidden, "skip-hidden", false, "Skip hidden files and directories")
	viper.BindPFlag("skip_hidden", rootCmd.Flags().Lookup("skip-hidden"))
	rootCmd.Flags().Int64Var(&maxSizeBytes, "max-size", 0, "Maximum file size in bytes (0 for no limit)")
	viper.BindPFlag("max_size", rootCmd.Flags().Lookup("max-size"))

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (if not provided, results shown on console)")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	rootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy results to clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Save results as PDF")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))

	// Processing
	rootCmd.Flags().IntVarP(&numThreads, "threads", "t", 0, "Number of worker threads for file scanning (0 for auto)")
	viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))

	// Interactive mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the search root with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("max_size", 0)
	viper.SetDefault("threads", 0)
	viper.SetDefault("case_sensitive", false)
	viper.SetDefault("show_lines", false)
	viper.SetDefault("use_ignore", false)
	viper.SetDefault("skip_hidden", false)
}

// initConfig reads in the config file and KEMET_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "kemet"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("KEMET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
		fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
	}

	// Config-file values fill in flags the user did not set explicitly.
	if !rootCmd.Flags().Changed("exclude") {
		if fromConfig := viper.GetStringSlice("default_excludes"); len(fromConfig) > 0 {
			excludePatterns = strings.Join(fromConfig, ",")
		}
	}
	if !rootCmd.Flags().Changed("extensions") {
		if fromConfig := viper.GetStringSlice("default_extensions"); len(fromConfig) > 0 {
			extensionList = strings.Join(fromConfig, ",")
		}
	}
}

// runSearch drives the pipeline: a walker goroutine feeds candidate paths to
// a pool of scan workers whose outcomes are folded, one at a time, into the
// summary. Counters are order-independent; finalize sorts the retained
// records and errors so the report does not depend on worker scheduling.
func runSearch(cfg *SearchConfig) *SearchSummary {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string, workers*4)
	results := make(chan FileOutcome, workers*4)
	walkErrCh := make(chan []SearchError, 1)

	go func() {
		walkErrCh <- walkTree(cfg, jobs)
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- searchFile(cfg, path)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	sum := &SearchSummary{}
	for outcome := range results {
		sum.addOutcome(outcome)
	}
	sum.addTraversalErrors(<-walkErrCh)
	sum.finalize()
	return sum
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "kemet error: %v\n", err)
		os.Exit(1)
	}
}
