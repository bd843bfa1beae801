// Package ingest reads interaction events from delimited text files and
// remaps external node IDs onto the dense indices the engine expects.
package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cogsnet/cogsnet/internal/cogsnet"
)

// Delimiters accepted in event files.
var validDelimiters = map[string]bool{
	",":  true,
	";":  true,
	"\t": true,
}

// ValidDelimiter reports whether d is an accepted field delimiter.
func ValidDelimiter(d string) bool {
	return validDelimiters[d]
}

// ReadEvents parses an event file into the engine's event sequence and the
// node map built along the way. Each data row holds three integer fields:
// sender ID, receiver ID, unix timestamp. The first line is a header and is
// discarded; blank lines are skipped. Events are returned in file order;
// the engine expects them sorted ascending by timestamp.
func ReadEvents(path, delimiter string) ([]cogsnet.Event, *NodeMap, error) {
	if !ValidDelimiter(delimiter) {
		return nil, nil, fmt.Errorf("invalid delimiter %q: allowed delimiters are ',', ';' or tab", delimiter)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open events file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// Header line. An empty file has no events either.
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("read events from %s: %w", path, err)
		}
		return nil, nil, fmt.Errorf("read events from %s: no events to read", path)
	}

	var events []cogsnet.Event
	nodes := NewNodeMap()
	lineNo := 1

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, delimiter)
		if len(fields) < 3 {
			return nil, nil, fmt.Errorf("parse line %d: expected 3 fields separated by %q, got %d", lineNo, delimiter, len(fields))
		}

		sender, err := parseField(fields[0], "sender", lineNo)
		if err != nil {
			return nil, nil, err
		}
		receiver, err := parseField(fields[1], "receiver", lineNo)
		if err != nil {
			return nil, nil, err
		}
		timestamp, err := parseField(fields[2], "timestamp", lineNo)
		if err != nil {
			return nil, nil, err
		}

		events = append(events, cogsnet.Event{
			Sender:   nodes.Add(sender),
			Receiver: nodes.Add(receiver),
			Time:     timestamp,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read events from %s: %w", path, err)
	}
	if len(events) == 0 {
		return nil, nil, fmt.Errorf("read events from %s: no events to read", path)
	}

	return events, nodes, nil
}

func parseField(raw, name string, lineNo int) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse line %d: bad %s %q", lineNo, name, raw)
	}
	return v, nil
}
