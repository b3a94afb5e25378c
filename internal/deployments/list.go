package deployments

import (
	"fmt"
	"sort"
	"strings"
	"time"

	units "github.com/docker/go-units"
	"github.com/stratohq/strato/internal/constants"
	"github.com/stratohq/strato/pkg/models"
)

// SortByCreated orders deployments newest first.
func SortByCreated(deps []models.Deployment) {
	sort.SliceStable(deps, func(i, j int) bool {
		return deps[i].CreatedAt > deps[j].CreatedAt
	})
}

// FilterUniqueProjects keeps only the first deployment per project name.
// Input must already be sorted newest first, so the survivor is each
// project's most recent deployment.
func FilterUniqueProjects(deps []models.Deployment) []models.Deployment {
	seen := make(map[string]bool, len(deps))
	out := deps[:0:0]
	for _, d := range deps {
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		out = append(out, d)
	}
	return out
}

// FilterByHost keeps only deployments whose URL matches host exactly.
func FilterByHost(deps []models.Deployment, host string) []models.Deployment {
	out := deps[:0:0]
	for _, d := range deps {
		if d.URL == host {
			out = append(out, d)
		}
	}
	return out
}

// ParseHostFilter decides whether the app argument is really a deployment
// hostname. Arguments ending in the deployment domain are hosts; their
// first DNS label must carry at least two hyphen-separated segments, since
// bare project aliases have none.
func ParseHostFilter(arg string) (string, bool, error) {
	host := strings.TrimPrefix(strings.TrimPrefix(arg, "https://"), "http://")
	if !strings.HasSuffix(host, constants.DeploymentDomainSuffix) {
		return "", false, nil
	}

	label := strings.SplitN(host, ".", 2)[0]
	if len(strings.Split(label, "-")) < 2 {
		return "", true, fmt.Errorf("only deployment hostnames are allowed, no aliases")
	}

	return host, true, nil
}

// ParseMeta turns repeated key=value flags into a filter map.
func ParseMeta(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	meta := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid meta filter %q, expected key=value", pair)
		}
		meta[key] = value
	}
	return meta, nil
}

// Duration renders the build duration: the time between buildingAt and
// ready. Missing timestamps render as "?", sub-second builds as "--".
func Duration(d models.Deployment) string {
	if d.Ready == 0 || d.BuildingAt == 0 {
		return "?"
	}

	elapsed := time.Duration(d.Ready-d.BuildingAt) * time.Millisecond
	if elapsed.Round(time.Second) == 0 {
		return "--"
	}

	return units.HumanDuration(elapsed)
}

// Age renders the time elapsed since the deployment was created.
func Age(now time.Time, d models.Deployment) string {
	return units.HumanDuration(now.Sub(d.Created())) + " ago"
}
