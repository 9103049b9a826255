package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool

	// runtime
	flagOutput        string
	flagRenderer      string
	flagChromePath    string
	flagSettleDelay   time.Duration
	flagWaitForReader bool
	flagChapterToken  string

	// headers/auth
	flagUserAgent  string
	flagCookie     string
	flagCookieFile string
	flagCloudflare bool
)

var rootCmd = &cobra.Command{
	Use:   "komikd",
	Short: "Download comic chapters from readerarea-style sites",
	Long: "Download comic chapters from readerarea-style sites.\n" +
		"Run without a subcommand for the interactive menu.",
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	pf.BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")

	pf.StringVar(&flagOutput, "output", "", "base output folder")
	pf.StringVar(&flagRenderer, "renderer", "", "page renderer: chrome or http")
	pf.StringVar(&flagChromePath, "chrome-path", "", "path to the Chrome/Chromium binary")
	pf.DurationVar(&flagSettleDelay, "settle-delay", 0, "pause after each page load before reading it (e.g. 2s)")
	pf.BoolVar(&flagWaitForReader, "wait-for-reader", false, "wait for the reader area instead of the settle delay on chapter pages")
	pf.StringVar(&flagChapterToken, "chapter-token", "", "substring identifying chapter links (default \"-chapter-\")")

	pf.StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	pf.StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	pf.StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	pf.BoolVar(&flagCloudflare, "cloudflare-bypass", false, "mimic a browser TLS fingerprint for image requests")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
