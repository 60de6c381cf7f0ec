// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

// Design code flows downward: sequence math knows nothing of files,
// settings, reports or the CLI.
func TestImportBoundaries(t *testing.T) {
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go tool not on PATH")
	}
	cmd := exec.Command("go", "list", "-json", "./...")
	cmd.Dir = "../.."
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	outer := []string{
		"oligostan/internal/pipeline", "oligostan/internal/writers",
		"oligostan/internal/output", "oligostan/internal/config",
		"oligostan/internal/cli", "oligostan/internal/appshell",
		"oligostan/internal/fasta", "oligostan/cmd/",
	}
	bans := map[string][]string{
		"oligostan/internal/oligo":    append([]string{"oligostan/internal/"}, outer...),
		"oligostan/internal/thermo":   outer,
		"oligostan/internal/design":   append([]string{"oligostan/internal/filter", "oligostan/internal/annotate"}, outer...),
		"oligostan/internal/filter":   append([]string{"oligostan/internal/design", "oligostan/internal/annotate"}, outer...),
		"oligostan/internal/annotate": outer,
		"oligostan/internal/pipeline": {
			"oligostan/internal/writers", "oligostan/internal/output",
			"oligostan/internal/config", "oligostan/internal/cli", "oligostan/cmd/",
		},
		"oligostan/internal/output": {
			"oligostan/internal/pipeline", "oligostan/internal/writers",
			"oligostan/internal/cli", "oligostan/cmd/",
		},
		"oligostan/internal/writers": {
			"oligostan/internal/pipeline", "oligostan/internal/cli", "oligostan/cmd/",
		},
		"oligostan/internal/config": {
			"oligostan/internal/pipeline", "oligostan/internal/writers",
			"oligostan/internal/cli", "oligostan/cmd/",
		},
		"oligostan/pkg/": {"oligostan/internal/"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "oligostan/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !under(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "oligostan/") {
					continue
				}
				for _, ban := range forbidden {
					if under(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}

// under reports whether path is prefix itself or lies below it. A prefix
// ending in "/" matches everything beneath it.
func under(path, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
