package authz

// Policy decides whether a user has admin visibility over the whole system.
// Injected into services so the decision source can change without touching
// the aggregation or entry logic.
type Policy interface {
	IsAdmin(userID string) bool
}

type allowListPolicy struct {
	admins map[string]struct{}
}

// NewAllowListPolicy builds a Policy from a fixed set of admin user IDs.
func NewAllowListPolicy(userIDs []string) Policy {
	admins := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		admins[id] = struct{}{}
	}
	return &allowListPolicy{admins: admins}
}

func (p *allowListPolicy) IsAdmin(userID string) bool {
	_, ok := p.admins[userID]
	return ok
}
