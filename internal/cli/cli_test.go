package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.idset/internal/config"
	"go.idset/internal/engine"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{"--home", t.TempDir()}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSizes(t *testing.T) {
	out, err := run(t, "sizes")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Size of LeafNode: 4096", "Size of InternalNode: 4080", "Size of Header: 4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo", "-n", "3000")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "All tests passed!") || !strings.Contains(out, "3,000") {
		t.Fatalf("unexpected demo output:\n%s", out)
	}
}

func TestDemoRandom(t *testing.T) {
	defer func() { demoRandom = false }()

	out, err := run(t, "demo", "-n", "2000", "--random")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "All tests passed!") {
		t.Fatalf("unexpected demo output:\n%s", out)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	data := "# ids\n1\n2\n0x10\n\nalice\n2\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "load", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "loaded 5 ids") {
		t.Fatalf("unexpected load output:\n%s", out)
	}
}

func TestLoadBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	if err := os.WriteFile(path, []byte("1\n0x1"+strings.Repeat("0", 32)+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "load", path)
	if err == nil || !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected error on line 2, got %v", err)
	}
}

func TestShell(t *testing.T) {
	c, err := config.LoadConfig(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	db, err := engine.Open("shell", c)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	input := strings.Join([]string{
		"insert 5 7 5",
		"contains 5",
		"contains 6",
		"count 5",
		"bogus",
		"gen 3",
		"verify",
		"stats",
		"exit",
		"insert 9",
	}, "\n")

	var out bytes.Buffer
	if err := runShell(db, strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	for _, want := range []string{"inserted 5", "true", "false", "2", "Error:", "ok", "height: 1"} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
	// exit stops the session before the last line
	if strings.Contains(got, "inserted 9") || db.Len() != 6 {
		t.Fatalf("session continued after exit, %d ids", db.Len())
	}
}
