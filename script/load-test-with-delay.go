package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"slices"
	"strings"
	"sync"
	"time"
)

// Scenario is one kind of ledger request
type Scenario struct {
	Name   string
	Method string
	Path   string
	Body   any
}

// ErrorBody mirrors the API error envelope
type ErrorBody struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// TestResult contains metrics for a single request
type TestResult struct {
	Scenario     string
	ResponseTime time.Duration
	StatusCode   int
	ErrorCode    int
	Err          error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests int
	TotalTime     time.Duration
	ResponseTimes []time.Duration
	StatusCounts  map[int]int
	ErrorCodes    map[int]int
	ScenarioStats map[string]int
	Transport     map[string]int
	Lock          sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of requests to make")
	tokensStr := flag.String("t", "", "Comma-separated bearer tokens (ledgerctl auth token ID)")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	flag.Parse()

	var tokens []string
	for _, t := range strings.Split(*tokensStr, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) == 0 {
		fmt.Fprintln(os.Stderr, "at least one bearer token is required (-t)")
		os.Exit(2)
	}

	// Exchanges dominate so inventory and balances are contended
	scenarios := []Scenario{
		{"Exchange 1", http.MethodPost, "/api/v1/exchange", map[string]int{"tokenCount": 1}},
		{"Exchange 1", http.MethodPost, "/api/v1/exchange", map[string]int{"tokenCount": 1}},
		{"Exchange 3", http.MethodPost, "/api/v1/exchange", map[string]int{"tokenCount": 3}},
		{"Dashboard", http.MethodGet, "/api/v1/me/dashboard", nil},
		{"Daily code", http.MethodGet, "/api/v1/daily-code", nil},
	}

	fmt.Printf("Load testing %s with %d accounts\n", *baseURL, len(tokens))
	fmt.Printf("Concurrency: %d goroutines, %d requests, %d ms delay\n", *concurrency, *totalRequests, *delayMs)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		StatusCounts:  make(map[int]int),
		ErrorCodes:    make(map[int]int),
		ScenarioStats: make(map[string]int),
		Transport:     make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	var wg sync.WaitGroup
	for range *concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(*baseURL, *delayMs, tokens, scenarios, jobs, results)
		}()
	}

	for i := range *totalRequests {
		jobs <- i
	}
	close(jobs)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for r := range results {
			stats.Lock.Lock()
			stats.ScenarioStats[r.Scenario]++
			if r.Err != nil {
				stats.Transport[r.Err.Error()]++
			} else {
				stats.StatusCounts[r.StatusCode]++
				stats.ResponseTimes = append(stats.ResponseTimes, r.ResponseTime)
				if r.ErrorCode != 0 {
					stats.ErrorCodes[r.ErrorCode]++
				}
			}
			stats.Lock.Unlock()
		}
	}()

	startTime := time.Now()
	ticker := time.NewTicker(time.Second)
	go func() {
		for range ticker.C {
			stats.Lock.Lock()
			completed := len(stats.ResponseTimes)
			stats.Lock.Unlock()
			fmt.Printf("Progress: %d/%d\n", completed, *totalRequests)
		}
	}()

	wg.Wait()
	close(results)
	<-done
	ticker.Stop()
	stats.TotalTime = time.Since(startTime)

	printResults(stats)
}

func worker(baseURL string, delayMs int, tokens []string, scenarios []Scenario,
	jobs <-chan int, results chan<- TestResult) {

	client := &http.Client{Timeout: 10 * time.Second}

	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		token := tokens[rand.IntN(len(tokens))]
		scenario := scenarios[rand.IntN(len(scenarios))]
		result := TestResult{Scenario: scenario.Name}

		var body io.Reader
		if scenario.Body != nil {
			data, err := json.Marshal(scenario.Body)
			if err != nil {
				result.Err = err
				results <- result
				continue
			}
			body = bytes.NewReader(data)
		}

		req, err := http.NewRequest(scenario.Method, baseURL+scenario.Path, body)
		if err != nil {
			result.Err = err
			results <- result
			continue
		}
		req.Header.Set("Authorization", "Bearer "+token)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		start := time.Now()
		resp, err := client.Do(req)
		result.ResponseTime = time.Since(start)
		if err != nil {
			result.Err = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		if resp.StatusCode >= 400 {
			var e ErrorBody
			if json.NewDecoder(resp.Body).Decode(&e) == nil {
				result.ErrorCode = e.Code
			}
		}
		resp.Body.Close()
		results <- result
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[min(len(sorted)*p/100, len(sorted)-1)]
}

func printResults(stats *TestStats) {
	times := slices.Clone(stats.ResponseTimes)
	slices.Sort(times)

	var total time.Duration
	for _, d := range times {
		total += d
	}
	var avg time.Duration
	if len(times) > 0 {
		avg = total / time.Duration(len(times))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Requests:        %d\n", stats.TotalRequests)
	fmt.Printf("Answered:        %d\n", len(times))
	fmt.Printf("Total Test Time: %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:      %.2f req/s\n", float64(len(times))/stats.TotalTime.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average: %v\n", avg)
	if len(times) > 0 {
		fmt.Printf("Minimum: %v\n", times[0])
		fmt.Printf("Maximum: %v\n", times[len(times)-1])
	}
	fmt.Printf("P50:     %v\n", percentile(times, 50))
	fmt.Printf("P95:     %v\n", percentile(times, 95))
	fmt.Printf("P99:     %v\n", percentile(times, 99))

	fmt.Println("\n----------------- STATUS CODES -----------------")
	for status, count := range stats.StatusCounts {
		fmt.Printf("HTTP %d: %d\n", status, count)
	}
	if len(stats.ErrorCodes) > 0 {
		fmt.Println("\n----------------- LEDGER ERROR CODES -----------------")
		for code, count := range stats.ErrorCodes {
			fmt.Printf("%d: %d\n", code, count)
		}
	}

	fmt.Println("\n----------------- SCENARIOS -----------------")
	for name, count := range stats.ScenarioStats {
		fmt.Printf("%-12s %d\n", name, count)
	}

	if len(stats.Transport) > 0 {
		fmt.Println("\n----------------- TRANSPORT ERRORS -----------------")
		for msg, count := range stats.Transport {
			fmt.Printf("%-40s %d\n", msg, count)
		}
	}

	// A 5xx under contention means a conflict escaped the retry loop
	if stats.StatusCounts[http.StatusInternalServerError] > 0 {
		fmt.Println("\nFAIL: server errors under load")
		os.Exit(1)
	}
}
