package notify

import "github.com/piresc/tukang/internal/pkg/models"

// Target addresses channel groups. Identity targets fan out to both the id
// group and the role group so a client connected under either receives it.
type Target struct {
	ID       string
	Role     models.Role
	direct   bool
	everyone bool
}

// User targets a customer
func User(id string) Target {
	return Target{ID: id, Role: models.RoleUser}
}

// Worker targets a worker
func Worker(id string) Target {
	return Target{ID: id, Role: models.RoleWorker}
}

// Direct targets only the id group of a recipient
func Direct(id string) Target {
	return Target{ID: id, direct: true}
}

// Workers targets the general worker channel
func Workers() Target {
	return Target{Role: models.RoleWorker}
}

// Everyone targets every connected client
func Everyone() Target {
	return Target{everyone: true}
}

// Groups returns the channel groups of t
func (t Target) Groups() []string {
	switch {
	case t.everyone:
		return []string{models.GroupEveryone}
	case t.direct:
		if t.ID == "" {
			return nil
		}
		return []string{models.IDGroup(t.ID)}
	}

	var groups []string
	if t.ID != "" {
		groups = append(groups, models.IDGroup(t.ID))
	}
	if t.Role.IsValid() {
		groups = append(groups, models.RoleGroup(t.Role))
	}
	return groups
}

// Groups returns the ordered union of the targets' groups
func Groups(targets ...Target) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range targets {
		for _, g := range t.Groups() {
			if _, ok := seen[g]; ok {
				continue
			}
			seen[g] = struct{}{}
			out = append(out, g)
		}
	}
	return out
}
