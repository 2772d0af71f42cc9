package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/exportracker/quotation-backend/pkg/enums"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

	// Postgres declares statuses as an enum type, SQLite as a CHECK list.
	statusEnumRe     = regexp.MustCompile(`(?is)CREATE\s+TYPE\s+quotation_status\s+AS\s+ENUM\s*\(([^)]*)\)`)
	statusAddValueRe = regexp.MustCompile(`(?i)ALTER\s+TYPE\s+quotation_status\s+ADD\s+VALUE\s+(?:IF\s+NOT\s+EXISTS\s+)?'([^']*)'`)
	statusCheckRe    = regexp.MustCompile(`(?is)CHECK\s*\(\s*status\s+IN\s*\(([^)]*)\)`)
	sqlLiteralRe     = regexp.MustCompile(`'([^']*)'`)
)

// ValidateDir validates migration filenames and goose headers, then checks
// that the quotation status literals the Up sections declare are exactly the
// statuses the API accepts.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	seen := map[string]string{} // version -> filename
	var statuses map[string]struct{}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}

		version := m[1]
		if prev, ok := seen[version]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", version, prev, name)
		}
		seen[version] = name

		full := filepath.Join(dir, name)
		b, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("read file %q: %w", full, err)
		}

		txt := string(b)
		up, _, hasDown := strings.Cut(txt, "-- +goose Down")
		if !strings.Contains(up, "-- +goose Up") {
			return fmt.Errorf("migration %q missing \"-- +goose Up\"", name)
		}
		if !hasDown {
			return fmt.Errorf("migration %q missing \"-- +goose Down\"", name)
		}

		if declared := statusLiterals(up); declared != nil {
			if statuses == nil {
				statuses = map[string]struct{}{}
			}
			for _, s := range declared {
				statuses[s] = struct{}{}
			}
		}
	}

	if statuses == nil {
		return nil
	}
	return checkStatuses(dir, statuses)
}

func statusLiterals(up string) []string {
	var out []string
	found := false
	for _, re := range []*regexp.Regexp{statusEnumRe, statusCheckRe} {
		for _, m := range re.FindAllStringSubmatch(up, -1) {
			found = true
			for _, lit := range sqlLiteralRe.FindAllStringSubmatch(m[1], -1) {
				out = append(out, lit[1])
			}
		}
	}
	for _, m := range statusAddValueRe.FindAllStringSubmatch(up, -1) {
		found = true
		out = append(out, m[1])
	}
	if !found {
		return nil
	}
	return out
}

func checkStatuses(dir string, declared map[string]struct{}) error {
	var missing []string
	known := map[string]struct{}{}
	for _, s := range enums.QuotationStatuses() {
		known[s.String()] = struct{}{}
		if _, ok := declared[s.String()]; !ok {
			missing = append(missing, s.String())
		}
	}

	var extra []string
	for s := range declared {
		if _, ok := known[s]; !ok {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)

	if len(missing) > 0 {
		return fmt.Errorf("migrations in %q do not declare quotation status %s", dir, strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		return fmt.Errorf("migrations in %q declare unknown quotation status %s", dir, strings.Join(extra, ", "))
	}
	return nil
}
