package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/talentmap/pkg/distribution"
)

const snapshotJSON = `{
  "total_users": 12,
  "total_skills": 4,
  "total_languages": 2,
  "total_projects": 3,
  "verified_users_count": 9,
  "skills_distribution": [
    {"name": "Go", "category": "Technique", "count": 8},
    {"name": "Figma", "category": "Design", "count": 4},
    {"name": "Scrum", "category": "Management", "count": 2},
    {"name": "Listening", "category": "Soft Skills", "count": 6}
  ],
  "languages_distribution": [
    {"name": "French", "count": 5},
    {"name": "English", "count": 10}
  ]
}`

func testSnapshot(t *testing.T) distribution.Snapshot {
	t.Helper()
	snap, err := distribution.Parse([]byte(snapshotJSON))
	if err != nil {
		t.Fatal(err)
	}
	return snap
}

// writeFixtures writes a snapshot file and an empty config into a temp dir.
func writeFixtures(t *testing.T) (dir, snapshot, cfg string) {
	t.Helper()
	dir = t.TempDir()
	snapshot = filepath.Join(dir, "snapshot.json")
	cfg = filepath.Join(dir, "config.toml")
	if err := os.WriteFile(snapshot, []byte(snapshotJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfg, []byte("[layout]\nall_label = \"Everyone\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, snapshot, cfg
}
