package cli

import "testing"

func TestDocsTopics(t *testing.T) {
	topics, err := docsTopics()
	if err != nil {
		t.Fatalf("docsTopics: %v", err)
	}
	if len(topics) == 0 {
		t.Fatal("no topics found")
	}

	want := map[string]bool{"audits": false, "checks": false, "dataset": false, "release": false}
	for _, topic := range topics {
		if _, ok := want[topic.ID]; ok {
			want[topic.ID] = true
		}
		if topic.Title == "" {
			t.Fatalf("topic %s has no title", topic.ID)
		}
	}
	for id, found := range want {
		if !found {
			t.Fatalf("topic %s missing", id)
		}
	}

	// Sorted by id.
	for i := 1; i < len(topics); i++ {
		if topics[i-1].ID > topics[i].ID {
			t.Fatalf("topics not sorted: %s before %s", topics[i-1].ID, topics[i].ID)
		}
	}
}

func TestDocTitle(t *testing.T) {
	if got := docTitle("# Dataset layout\n\nbody", "x"); got != "Dataset layout" {
		t.Fatalf("docTitle = %q", got)
	}
	if got := docTitle("no heading here", "fallback"); got != "fallback" {
		t.Fatalf("docTitle = %q, want fallback", got)
	}
}
