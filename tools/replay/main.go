// Command replay decodes captured LWP3/SPIKE/JSON records without needing
// a hub nearby and reports how many decoded, how many failed, and how
// many of each record kind were seen. It only decodes; records are not
// re-encoded, so round-trip laws are not checked here.
//
// Usage:
//
//	go run tools/replay/main.go <directory-or-file>
//
// Input is one JSON object per line (a "capture"), each carrying a
// "kind" field ("lwp3", "spike", or "json") and the record as the
// appropriate encoding: "frame_hex" (hex-encoded bytes) for lwp3/spike,
// or "line" (the raw JSON telemetry text) for json.
package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/muurk/legohub/internal/jsontelemetry"
	"github.com/muurk/legohub/internal/lwp3"
	"github.com/muurk/legohub/internal/spike"
)

// capture is one line of a replay input file.
type capture struct {
	Kind     string `json:"kind"`
	FrameHex string `json:"frame_hex,omitempty"`
	Line     string `json:"line,omitempty"`
}

type stats struct {
	totalFiles    int
	totalRecords  int
	decodeSuccess int
	decodeFailure int
	kinds         map[string]int
	failures      []string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: replay <directory-or-file>")
		os.Exit(1)
	}

	path := os.Args[1]
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("error accessing path: %v\n", err)
		os.Exit(1)
	}

	var files []string
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.jsonl"))
		if err != nil || len(files) == 0 {
			fmt.Printf("no .jsonl files found in %s\n", path)
			os.Exit(1)
		}
	} else {
		files = []string{path}
	}

	s := &stats{kinds: make(map[string]int)}
	for _, f := range files {
		processFile(f, s)
	}
	printStats(s)

	if s.decodeFailure > 0 {
		os.Exit(1)
	}
}

func processFile(filename string, s *stats) {
	s.totalFiles++

	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("error reading %s: %v\n", filename, err)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if raw == "" {
			continue
		}

		var c capture
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			s.totalRecords++
			s.decodeFailure++
			s.failures = append(s.failures, fmt.Sprintf("%s:%d invalid capture JSON: %v", filename, lineNum, err))
			continue
		}
		s.totalRecords++

		if err := decodeOne(c, s); err != nil {
			s.decodeFailure++
			s.failures = append(s.failures, fmt.Sprintf("%s:%d %v", filename, lineNum, err))
			continue
		}
		s.decodeSuccess++
	}
}

func decodeOne(c capture, s *stats) error {
	switch c.Kind {
	case "lwp3":
		data, err := hex.DecodeString(c.FrameHex)
		if err != nil {
			return fmt.Errorf("hex decode: %w", err)
		}
		msg, err := lwp3.Decode(data)
		if err != nil {
			return fmt.Errorf("lwp3 decode: %w", err)
		}
		s.kinds[fmt.Sprintf("lwp3:%v", msg.Kind())]++
		return nil

	case "spike":
		framed, err := hex.DecodeString(c.FrameHex)
		if err != nil {
			return fmt.Errorf("hex decode: %w", err)
		}
		raw := spike.Unpack(framed)
		if len(raw) == 0 {
			return fmt.Errorf("spike unpack produced empty payload")
		}
		s.kinds[fmt.Sprintf("spike:tag-0x%02X", raw[0])]++
		return nil

	case "json":
		line, err := jsontelemetry.Decode([]byte(c.Line))
		if err != nil {
			return fmt.Errorf("json telemetry decode: %w", err)
		}
		s.kinds[fmt.Sprintf("json:method-%d", line.Method)]++
		return nil

	default:
		return fmt.Errorf("unknown capture kind %q", c.Kind)
	}
}

func printStats(s *stats) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("REPLAY RESULTS\n")
	fmt.Printf("========================================\n\n")
	fmt.Printf("Files Processed: %d\n", s.totalFiles)
	fmt.Printf("Total Records:   %d\n", s.totalRecords)
	fmt.Printf("Decode Success:  %d\n", s.decodeSuccess)
	fmt.Printf("Decode Failure:  %d\n", s.decodeFailure)

	fmt.Printf("\n----------------------------------------\n")
	fmt.Printf("RECORD KIND DISTRIBUTION\n")
	fmt.Printf("----------------------------------------\n")
	keys := make([]string, 0, len(s.kinds))
	for k := range s.kinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%-24s %d\n", k, s.kinds[k])
	}

	if len(s.failures) > 0 {
		fmt.Printf("\n----------------------------------------\n")
		fmt.Printf("FAILURES (%d total)\n", len(s.failures))
		fmt.Printf("----------------------------------------\n")
		maxShow := 10
		for i, f := range s.failures {
			if i >= maxShow {
				fmt.Printf("(%d more)\n", len(s.failures)-maxShow)
				break
			}
			fmt.Println(f)
		}
	}

	fmt.Printf("\n========================================\n")
	if s.decodeFailure == 0 {
		fmt.Printf("all records decoded successfully\n")
	} else {
		fmt.Printf("%d records failed to decode\n", s.decodeFailure)
	}
	fmt.Printf("========================================\n")
}
