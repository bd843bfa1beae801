package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEventsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write events file: %v", err)
	}
	return path
}

func TestReadEvents(t *testing.T) {
	path := writeEventsFile(t, "sender;receiver;timestamp\n100;200;1000\n200;300;2000\n100;300;3000\n")

	events, nodes, err := ReadEvents(path, ";")
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}

	if len(events) != 3 {
		t.Fatalf("event count = %d, want 3", len(events))
	}
	if nodes.Len() != 3 {
		t.Fatalf("node count = %d, want 3", nodes.Len())
	}

	// Dense indices in first-seen order: 100 -> 0, 200 -> 1, 300 -> 2.
	if events[0].Sender != 0 || events[0].Receiver != 1 || events[0].Time != 1000 {
		t.Errorf("event 0 = %+v, want {0 1 1000}", events[0])
	}
	if events[1].Sender != 1 || events[1].Receiver != 2 {
		t.Errorf("event 1 = %+v, want sender 1, receiver 2", events[1])
	}
	if events[2].Sender != 0 || events[2].Receiver != 2 {
		t.Errorf("event 2 = %+v, want sender 0, receiver 2", events[2])
	}

	if got := nodes.RealID(2); got != 300 {
		t.Errorf("RealID(2) = %d, want 300", got)
	}
}

func TestReadEventsDelimiters(t *testing.T) {
	for _, d := range []string{",", ";", "\t"} {
		rows := []string{
			strings.Join([]string{"a", "b", "t"}, d),
			strings.Join([]string{"1", "2", "10"}, d),
			strings.Join([]string{"2", "3", "20"}, d),
		}
		path := writeEventsFile(t, strings.Join(rows, "\n")+"\n")

		events, nodes, err := ReadEvents(path, d)
		if err != nil {
			t.Errorf("delimiter %q: %v", d, err)
			continue
		}
		if len(events) != 2 || nodes.Len() != 3 {
			t.Errorf("delimiter %q: %d events, %d nodes, want 2 and 3", d, len(events), nodes.Len())
		}
	}
}

func TestReadEventsSkipsBlankLines(t *testing.T) {
	path := writeEventsFile(t, "a;b;t\n1;2;10\n\n2;3;20\n\n")

	events, _, err := ReadEvents(path, ";")
	if err != nil {
		t.Fatalf("ReadEvents: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("event count = %d, want 2", len(events))
	}
}

func TestReadEventsInvalidDelimiter(t *testing.T) {
	path := writeEventsFile(t, "a|b|t\n1|2|10\n")

	if _, _, err := ReadEvents(path, "|"); err == nil {
		t.Error("expected error for delimiter |")
	}
}

func TestReadEventsMissingFile(t *testing.T) {
	if _, _, err := ReadEvents(filepath.Join(t.TempDir(), "nope.csv"), ";"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadEventsNoData(t *testing.T) {
	for name, content := range map[string]string{
		"empty":       "",
		"header only": "a;b;t\n",
	} {
		path := writeEventsFile(t, content)
		_, _, err := ReadEvents(path, ";")
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !strings.Contains(err.Error(), "no events") {
			t.Errorf("%s: error = %v, want mention of no events", name, err)
		}
	}
}

func TestReadEventsMalformedRow(t *testing.T) {
	path := writeEventsFile(t, "a;b;t\n1;2;10\n1;oops;20\n")

	_, _, err := ReadEvents(path, ";")
	if err == nil {
		t.Fatal("expected error for malformed row")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error = %v, want the offending line number", err)
	}
}

func TestReadEventsTooFewFields(t *testing.T) {
	path := writeEventsFile(t, "a;b;t\n1;2\n")

	if _, _, err := ReadEvents(path, ";"); err == nil {
		t.Error("expected error for row with 2 fields")
	}
}
