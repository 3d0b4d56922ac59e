package uplc_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/funvibe/uplc/pkg/uplc"
)

// The conformance corpus lives in testdata as txtar archives. Each case is
// a directory holding program.uplc, an expect file with the settled value
// (or "error: " and the exact failure), and optionally logs with the
// expected trace output one message per line. Every case runs on both
// engines and must come out identical.
func TestConformance(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			for _, c := range readCases(t, path) {
				t.Run(c.name, func(t *testing.T) {
					for _, engine := range []string{"jit", "tree-walk"} {
						res, err := uplc.Run(c.program, uplc.WithBackend(engine))
						if c.wantErr != "" {
							require.EqualError(t, err, c.wantErr, "engine %s", engine)
						} else {
							require.NoError(t, err, "engine %s", engine)
							require.Equal(t, c.want, res.Value.Inspect(), "engine %s", engine)
						}
						require.Equal(t, c.logs, res.Logs, "engine %s trace log", engine)
					}
				})
			}
		})
	}
}

type conformanceCase struct {
	name    string
	program string
	want    string
	wantErr string
	logs    []string
}

func readCases(t *testing.T, path string) []conformanceCase {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	index := map[string]int{}
	var cases []conformanceCase
	for _, f := range ar.Files {
		dir, file, ok := strings.Cut(f.Name, "/")
		require.True(t, ok, "file %q sits outside a case directory", f.Name)
		i, seen := index[dir]
		if !seen {
			i = len(cases)
			index[dir] = i
			cases = append(cases, conformanceCase{name: dir})
		}
		body := strings.TrimRight(string(f.Data), "\n")
		switch file {
		case "program.uplc":
			cases[i].program = body
		case "expect":
			if rest, found := strings.CutPrefix(body, "error: "); found {
				cases[i].wantErr = rest
			} else {
				cases[i].want = body
			}
		case "logs":
			cases[i].logs = strings.Split(body, "\n")
		default:
			t.Fatalf("unrecognized case file %q", f.Name)
		}
	}
	for _, c := range cases {
		require.NotEmpty(t, c.program, "case %s has no program", c.name)
		require.True(t, c.want != "" || c.wantErr != "", "case %s has no expectation", c.name)
	}
	return cases
}
