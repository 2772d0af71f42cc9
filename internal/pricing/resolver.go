package pricing

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
)

// Candidate is a named record a free-text query can resolve to.
type Candidate struct {
	ID   uuid.UUID
	Name string
}

// Resolve returns the first candidate whose name contains query, ignoring
// case. Matching is one-directional: the query must sit inside the name.
// Candidates are expected to be scoped to the caller already.
func Resolve(candidates []Candidate, query string) (Candidate, error) {
	names := make([]string, len(candidates))
	for i, candidate := range candidates {
		names[i] = candidate.Name
	}
	idx, err := firstMatch(names, query)
	if err != nil {
		return Candidate{}, err
	}
	return candidates[idx], nil
}

// ResolveCompany resolves query against the caller's companies by name.
func ResolveCompany(companies []models.Company, query string) (models.Company, error) {
	candidates := make([]Candidate, len(companies))
	for i, company := range companies {
		candidates[i] = Candidate{ID: company.ID, Name: company.Name}
	}
	match, err := Resolve(candidates, query)
	if err != nil {
		return models.Company{}, err
	}
	return companies[indexOf(candidates, match)], nil
}

// ResolveDestination resolves query against destination countries first and
// falls back to port names when no country matches.
func ResolveDestination(destinations []models.Destination, query string) (models.Destination, error) {
	countries := make([]Candidate, len(destinations))
	ports := make([]Candidate, len(destinations))
	display := make([]string, len(destinations))
	for i, dest := range destinations {
		countries[i] = Candidate{ID: dest.ID, Name: dest.Country}
		ports[i] = Candidate{ID: dest.ID}
		if dest.Port != nil {
			ports[i].Name = *dest.Port
		}
		display[i] = dest.DisplayName()
	}

	match, err := Resolve(countries, query)
	if err == nil {
		return destinations[indexOf(countries, match)], nil
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		return models.Destination{}, err
	}

	match, err = Resolve(ports, query)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return models.Destination{}, notFound(query, display)
		}
		return models.Destination{}, err
	}
	return destinations[indexOf(ports, match)], nil
}

// indexOf finds the position Resolve picked. The first equal candidate is the
// match itself: an earlier one with the same name would have matched first.
func indexOf(candidates []Candidate, match Candidate) int {
	for i, candidate := range candidates {
		if candidate == match {
			return i
		}
	}
	return -1
}

func firstMatch(names []string, query string) (int, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return -1, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}

	for i, name := range names {
		if name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			return i, nil
		}
	}
	return -1, notFound(query, names)
}

func notFound(query string, names []string) error {
	available := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			available = append(available, name)
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no match for %q", query)).
		WithDetails(map[string]any{
			"query":     query,
			"available": available,
		})
}
