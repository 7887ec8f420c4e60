package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"esports-digest/internal/server"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

var bracketOut string

func init() {
	scheduleCmd.AddCommand(valorantCmd)
	scheduleCmd.AddCommand(lolCmd)
	destinationsCmd.AddCommand(addDestinationCmd)
	bracketCmd.Flags().StringVarP(&bracketOut, "output", "o", "bracket.png", "File to write the bracket image to")

	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bracketCmd)
	rootCmd.AddCommand(regionsCmd)
	rootCmd.AddCommand(destinationsCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(metricsCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show upcoming esports matches",
}

var valorantCmd = &cobra.Command{
	Use:   "valorant",
	Short: "Live and upcoming tier-1 Valorant matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performDocRequest("/v1/schedule/valorant", nil)
	},
}

var lolCmd = &cobra.Command{
	Use:   "lol",
	Short: "League of Legends international schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performDocRequest("/v1/schedule/lol", nil)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats name#tag",
	Short: "Recent competitive matches of a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performDocRequest("/v1/stats", url.Values{"player": {args[0]}})
	},
}

var bracketCmd = &cobra.Command{
	Use:   "bracket region",
	Short: "Save the current VCT bracket of a region as PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, body, err := performRequest(http.MethodGet, "/v1/bracket", url.Values{"region": {args[0]}}, nil)
		if err != nil {
			return err
		}
		if resp.StatusCode != http.StatusOK {
			return printDoc(resp.StatusCode, body)
		}
		if err := os.WriteFile(bracketOut, body, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", bracketOut, err)
		}
		fmt.Printf("Saved %s (%s)\n", bracketOut, resp.Header.Get("X-Bracket-Source"))
		return nil
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the bracket regions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/v1/bracket/regions")
	},
}

var destinationsCmd = &cobra.Command{
	Use:   "destinations",
	Short: "List the registered chat destinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/v1/destinations")
	},
}

var addDestinationCmd = &cobra.Command{
	Use:   "add id [name]",
	Short: "Register a chat destination",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := server.DestinationRequest{ID: args[0]}
		if len(args) == 2 {
			req.Name = args[1]
		}
		payload, err := sonic.Marshal(req)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		resp, body, err := performRequest(http.MethodPost, "/v1/destinations", nil, payload)
		if err != nil {
			return err
		}
		fmt.Printf("Status Code: %d\n", resp.StatusCode)
		fmt.Println(string(body))
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performRequest(method, endpoint string, query url.Values, payload []byte) (*http.Response, []byte, error) {
	target := host + endpoint
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if chatID != "" {
		req.Header.Set("X-Destination-ID", chatID)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp, body, nil
}

func performGetRequest(endpoint string) error {
	fmt.Printf("Making request to %s\n", host+endpoint)

	resp, body, err := performRequest(http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return err
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))
	return nil
}

// performDocRequest prints the rendered text of a command response.
func performDocRequest(endpoint string, query url.Values) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("format", format)

	resp, body, err := performRequest(http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	return printDoc(resp.StatusCode, body)
}

func printDoc(status int, body []byte) error {
	var doc server.DocResponse
	if err := sonic.Unmarshal(body, &doc); err != nil || doc.Text == "" {
		fmt.Printf("Status Code: %d\n", status)
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(doc.Text)
	if status >= http.StatusBadRequest {
		return fmt.Errorf("server answered %d", status)
	}
	return nil
}
