package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vouchdev/vouch/internal/api"
	"github.com/vouchdev/vouch/internal/leaderboard"
)

const defaultShameServer = "https://shame.vouch.dev"

func newShameCmd() *cobra.Command {
	var (
		server   string
		submit   bool
		awards   bool
		limit    int
		repoURL  string
		repoName string
		secret   string
	)

	cmd := &cobra.Command{
		Use:   "shame [path]",
		Short: "Browse or submit to the hall of shame",
		Long: `Lists the lowest-scoring submitted projects. With --submit, scans the
given path and submits the result to the leaderboard.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := strings.TrimRight(server, "/")

			if submit {
				root := "."
				if len(args) == 1 {
					root = args[0]
				}
				return submitShame(cmd.Context(), base, root, repoURL, repoName, secret)
			}
			if awards {
				return printAwards(cmd.Context(), base)
			}
			return printLeaderboard(cmd.Context(), base, limit)
		},
	}

	cmd.Flags().StringVar(&server, "server", defaultShameServer, "Leaderboard server base URL")
	cmd.Flags().BoolVar(&submit, "submit", false, "Scan the project and submit the result")
	cmd.Flags().BoolVar(&awards, "awards", false, "Show the category award holders")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to list")
	cmd.Flags().StringVar(&repoURL, "repo-url", "", "Repository URL for submission")
	cmd.Flags().StringVar(&repoName, "repo-name", "", "Repository name for submission")
	cmd.Flags().StringVar(&secret, "secret", "", "Shared secret for signing the submission")

	return cmd
}

func submitShame(ctx context.Context, base, root, repoURL, repoName, secret string) error {
	if repoURL == "" {
		return fmt.Errorf("--repo-url is required with --submit")
	}
	if repoName == "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolving project path: %w", err)
		}
		repoName = filepath.Base(abs)
	}

	result, err := runScan(ctx, root, scanOpts{})
	if err != nil {
		return err
	}

	payload, err := json.Marshal(api.SubmitRequest{
		RepoURL:  repoURL,
		RepoName: repoName,
		Result:   result,
	})
	if err != nil {
		return fmt.Errorf("encoding submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/api/v1/shame", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Vouch-Signature", api.SignPayload(payload, []byte(secret)))
	}

	resp, err := shameHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("submitting to %s: %w", base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("server rejected submission: %s", resp.Status)
	}

	var entry leaderboard.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	fmt.Printf("Submitted %s: score %d/100 (%s)\n", entry.RepoName, entry.Score, entry.Grade)
	fmt.Printf("Category: %s\n", entry.Category)
	fmt.Printf("%s\n", entry.Remark)
	return nil
}

func printLeaderboard(ctx context.Context, base string, limit int) error {
	var entries []leaderboard.Entry
	url := fmt.Sprintf("%s/api/v1/shame?limit=%d", base, limit)
	if err := shameGet(ctx, url, &entries); err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("The hall of shame is empty. For now.")
		return nil
	}

	fmt.Println("Hall of Shame")
	fmt.Println()
	for i, e := range entries {
		fmt.Printf("%2d. %s — %d/100 (%s) [%s]\n", i+1, e.RepoName, e.Score, e.Grade, e.Category)
		fmt.Printf("    %s\n", e.Remark)
	}
	return nil
}

func printAwards(ctx context.Context, base string) error {
	var awards leaderboard.Awards
	if err := shameGet(ctx, base+"/api/v1/shame/awards", &awards); err != nil {
		return err
	}

	printAward := func(title string, e *leaderboard.Entry) {
		if e == nil {
			return
		}
		fmt.Printf("%s: %s (%d/100)\n", title, e.RepoName, e.Score)
	}

	printAward("Worst Overall", awards.WorstOverall)
	printAward("Bloat King", awards.BloatKing)
	printAward("Security Nightmare", awards.SecurityNightmare)
	printAward("Spaghetti Master", awards.SpaghettiMaster)
	return nil
}

func shameGet(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := shameHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("contacting leaderboard: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("leaderboard request failed: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func shameHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}
