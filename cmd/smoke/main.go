package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/fatih/color"
)

// Walks a running server through one conversation: search, refine,
// select, modify, reset.
func main() {
	baseURL := flag.String("url", "http://localhost:8000", "server base URL")
	flag.Parse()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar, Timeout: 2 * time.Minute}

	color.Cyan("Cooking assistant smoke test against %s\n", *baseURL)

	steps := []struct {
		title string
		path  string
		body  map[string]interface{}
	}{
		{"Fresh search", "/search/", map[string]interface{}{"query": "chicken rice"}},
		{"Refinement", "/search/", map[string]interface{}{"query": "make it spicier"}},
		{"Select second", "/search/", map[string]interface{}{"query": "choose the second recipe", "is_follow_up": true}},
		{"Reset", "/reset_session/", nil},
		{"Select after reset", "/search/", map[string]interface{}{"query": "first", "is_follow_up": true}},
	}

	var lastRecipe interface{}
	for i, step := range steps {
		color.Yellow("\n%d. %s", i+1, step.title)
		status, body, err := post(client, *baseURL+step.path, step.body)
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		printStatus(status)
		prettyPrint(body)

		if results, ok := body["results"].([]interface{}); ok && len(results) > 0 {
			lastRecipe = results[0]
		}
	}

	if lastRecipe != nil {
		color.Yellow("\n%d. Modify", len(steps)+1)
		status, body, err := post(client, *baseURL+"/modify/", map[string]interface{}{
			"recipe":       lastRecipe,
			"modification": "vegan",
		})
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		printStatus(status)
		prettyPrint(body)
	}
}

func post(client *http.Client, url string, body interface{}) (int, map[string]interface{}, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	resp, err := client.Post(url, "application/json", reader)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("decode response: %w", err)
	}
	return resp.StatusCode, out, nil
}

func printStatus(status int) {
	if status >= 400 {
		color.Red("Status: %d", status)
		return
	}
	color.Green("Status: %d", status)
}

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}
