package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkdock/linkdock/config"
	"github.com/linkdock/linkdock/intent"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one intent to a running daemon",
	Long: `Send one intent to a running linkdock daemon, as the panel would.

Examples:
  linkdock send --text "find the login screen"
  linkdock send --action copy
  linkdock send --action insert --url https://example.com/f/login --title "Login Screen"
  linkdock send --action goto --url https://example.com/f/login`,
	RunE: runSend,
}

var (
	sendText    string
	sendAction  string
	sendURL     string
	sendTitle   string
	sendAddr    string
	sendSession string
)

func init() {
	sendCmd.Flags().StringVar(&sendText, "text", "", "Free-form panel message")
	sendCmd.Flags().StringVar(&sendAction, "action", "", "Preview action: copy, insert or goto")
	sendCmd.Flags().StringVar(&sendURL, "url", "", "Link URL for the preview action")
	sendCmd.Flags().StringVar(&sendTitle, "title", "", "Link title for the preview action")
	sendCmd.Flags().StringVar(&sendAddr, "addr", "", "Daemon address (defaults to config)")
	sendCmd.Flags().StringVar(&sendSession, "session", "", "Target session ID (defaults to the oldest connected one)")
	rootCmd.AddCommand(sendCmd)
}

func runSend(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	msg, err := buildIntent()
	if err != nil {
		return err
	}

	addr := strings.TrimSpace(sendAddr)
	if addr == "" {
		addr = cfg.Server.Addr
	}
	endpoint := "http://" + addr + "/send"
	if s := strings.TrimSpace(sendSession); s != "" {
		endpoint += "?session=" + url.QueryEscape(s)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode intent: %w", err)
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to reach daemon at %s: %w", addr, err)
	}
	defer resp.Body.Close()

	var reply struct {
		OK      bool `json:"ok"`
		Results []struct {
			Title string `json:"title"`
			URL   string `json:"url"`
			Kind  string `json:"kind"`
		} `json:"results"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("failed to decode daemon reply: %w", err)
	}
	if !reply.OK {
		if reply.Error != "" {
			return fmt.Errorf("daemon refused intent: %s", reply.Error)
		}
		return fmt.Errorf("daemon refused intent (status %d)", resp.StatusCode)
	}

	if len(reply.Results) == 0 {
		fmt.Println("Intent delivered.")
		return nil
	}
	for i, r := range reply.Results {
		if r.Kind != "" {
			fmt.Printf("%d. %s (%s)\n   %s\n", i+1, r.Title, r.Kind, r.URL)
		} else {
			fmt.Printf("%d. %s\n   %s\n", i+1, r.Title, r.URL)
		}
	}
	return nil
}

// buildIntent translates the flag set into a panel intent. Exactly one of
// --text and --action selects the intent kind.
func buildIntent() (intent.Message, error) {
	text := strings.TrimSpace(sendText)
	action := strings.TrimSpace(sendAction)

	switch {
	case text != "" && action != "":
		return nil, fmt.Errorf("--text and --action are mutually exclusive")
	case text != "":
		return intent.NewUserMessage(text), nil
	case action != "":
		switch intent.Action(action) {
		case intent.ActionCopy, intent.ActionInsert, intent.ActionGoto:
		default:
			return nil, fmt.Errorf("unknown action %q (want copy, insert or goto)", action)
		}
		return intent.NewPreviewAction(intent.Action(action), strings.TrimSpace(sendURL), strings.TrimSpace(sendTitle)), nil
	default:
		return nil, fmt.Errorf("either --text or --action is required")
	}
}
