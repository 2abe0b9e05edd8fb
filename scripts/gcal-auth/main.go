// scripts/gcal-auth/main.go
//
// One-time OAuth bootstrap for Google Calendar. Run it locally, sign in,
// paste the authorization code, and it writes the token file the bot reads
// next to the credentials file.
//
// Usage:
//   go run scripts/gcal-auth/main.go [-creds google-credentials.json] [-token token.json]
//
// The credentials file must be an OAuth Desktop App client downloaded from
// the Google Cloud console; -creds defaults to $GOOGLE_CALENDAR_CREDENTIALS
// when set.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	defaultCreds := os.Getenv("GOOGLE_CALENDAR_CREDENTIALS")
	if defaultCreds == "" {
		defaultCreds = "google-credentials.json"
	}

	credsPath := flag.String("creds", defaultCreds, "OAuth client credentials file")
	tokenPath := flag.String("token", "token.json", "where to write the token")
	flag.Parse()

	if err := run(context.Background(), *credsPath, *tokenPath); err != nil {
		fmt.Fprintln(os.Stderr, "gcal-auth:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, credsPath, tokenPath string) error {
	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("failed to read credentials file %q: %w", credsPath, err)
	}

	// CalendarScope covers both availability reads and /block event writes.
	oauthCfg, err := google.ConfigFromJSON(data, calendar.CalendarScope)
	if err != nil {
		return fmt.Errorf("failed to parse %q (expected an OAuth Desktop App credentials file): %w", credsPath, err)
	}

	authURL := oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Println("Open this URL in a browser and sign in:")
	fmt.Println()
	fmt.Println("  " + authURL)
	fmt.Println()
	fmt.Print("Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}

	tok, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := writeToken(tokenPath, tok); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("Token saved to %s. Restart the bot to pick it up.\n", tokenPath)
	return nil
}

func writeToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return nil
}
