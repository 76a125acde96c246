// Command contract_check replays requests against the Go events API and a
// reference json-server and reports where status codes or bodies diverge.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

type target struct {
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	Body     json.RawMessage `json:"body,omitempty"`
	Ignore   []string        `json:"ignore,omitempty"`
	Critical bool            `json:"critical"`
}

type targetFile struct {
	Targets []target `json:"targets"`
}

type reply struct {
	Status   int
	Body     []byte
	Duration time.Duration
}

type comparison struct {
	Target      target
	Candidate   reply
	Reference   reply
	StatusMatch bool
	BodyMatch   bool
	Err         error
}

func (c comparison) diverged() bool {
	return c.Err != nil || !c.StatusMatch || !c.BodyMatch
}

func main() {
	var (
		candidateBase string
		referenceBase string
		targetsPath   string
		timeout       time.Duration
	)

	flag.StringVar(&candidateBase, "candidate", "http://localhost:3000", "Go events API base URL")
	flag.StringVar(&referenceBase, "reference", "http://localhost:3001", "json-server base URL")
	flag.StringVar(&targetsPath, "targets", filepath.Join("scripts", "contract_check", "targets.json"), "Path to JSON targets file")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets, err := loadTargets(targetsPath)
	if err != nil {
		log.Fatalf("failed to load targets: %v", err)
	}

	client := &http.Client{Timeout: timeout}
	results, breaking, optional := run(context.Background(), client, candidateBase, referenceBase, targets)
	printReport(os.Stdout, results)

	fmt.Printf("Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
	if breaking > 0 {
		os.Exit(1)
	}
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var file targetFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return file.Targets, nil
}

// run replays targets in order; mutating targets depend on the ones before
// them so they are never parallelised across targets.
func run(ctx context.Context, client *http.Client, candidateBase, referenceBase string, targets []target) ([]comparison, int, int) {
	results := make([]comparison, 0, len(targets))
	var breaking, optional int
	for _, tgt := range targets {
		comp := compareTarget(ctx, client, candidateBase, referenceBase, tgt)
		if comp.diverged() {
			if tgt.Critical {
				breaking++
			} else {
				optional++
			}
		}
		results = append(results, comp)
	}
	return results, breaking, optional
}

func compareTarget(ctx context.Context, client *http.Client, candidateBase, referenceBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := perform(gctx, client, candidateBase, tgt)
		if err != nil {
			return fmt.Errorf("candidate: %w", err)
		}
		comp.Candidate = r
		return nil
	})
	g.Go(func() error {
		r, err := perform(gctx, client, referenceBase, tgt)
		if err != nil {
			return fmt.Errorf("reference: %w", err)
		}
		comp.Reference = r
		return nil
	})
	if err := g.Wait(); err != nil {
		comp.Err = err
		return comp
	}

	comp.StatusMatch = comp.Candidate.Status == comp.Reference.Status
	comp.BodyMatch = bodiesEqual(comp.Candidate.Body, comp.Reference.Body, tgt.Ignore)
	return comp
}

func perform(ctx context.Context, client *http.Client, base string, tgt target) (reply, error) {
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if len(tgt.Body) > 0 {
		body = bytes.NewReader(tgt.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(base, "/")+path, body)
	if err != nil {
		return reply{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return reply{}, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return reply{}, fmt.Errorf("read body: %w", err)
	}
	return reply{Status: resp.StatusCode, Body: raw, Duration: time.Since(start)}, nil
}

// bodiesEqual compares JSON documents structurally. Object keys listed in
// ignore are dropped at every depth before comparing.
func bodiesEqual(a, b []byte, ignore []string) bool {
	if len(ignore) == 0 && bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	skip := make(map[string]struct{}, len(ignore))
	for _, key := range ignore {
		skip[key] = struct{}{}
	}
	return reflect.DeepEqual(normalize(aj, skip), normalize(bj, skip))
}

// normalize folds numeric strings and whole floats to int64 so "3" and 3
// compare equal; json-server echoes ids in whichever form it was sent.
func normalize(v interface{}, skip map[string]struct{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, v2 := range val {
			if _, ok := skip[k]; ok {
				continue
			}
			out[k] = normalize(v2, skip)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, v2 := range val {
			out[i] = normalize(v2, skip)
		}
		return out
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	case string:
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return v
}

func printReport(w io.Writer, results []comparison) {
	fmt.Fprintln(w, "Contract Check Report")
	fmt.Fprintln(w, "=====================")
	for _, res := range results {
		status := "OK"
		if res.Err != nil {
			status = "ERROR"
		} else if res.diverged() {
			status = "DIFF"
		}
		fmt.Fprintf(w, "[%s] %s %s\n", status, res.Target.Method, res.Target.Path)
		fmt.Fprintf(w, "  Candidate: %d (%s)\n", res.Candidate.Status, res.Candidate.Duration)
		fmt.Fprintf(w, "  Reference: %d (%s)\n", res.Reference.Status, res.Reference.Duration)
		if res.Err != nil {
			fmt.Fprintf(w, "  Error: %v\n", res.Err)
		} else {
			fmt.Fprintf(w, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
