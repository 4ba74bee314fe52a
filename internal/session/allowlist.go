package session

// AllowList is the fixed set of admin e-mail addresses. Matching is exact and case-sensitive.
type AllowList struct {
	emails map[string]struct{}
}

func NewAllowList(emails []string) AllowList {
	set := make(map[string]struct{}, len(emails))
	for _, e := range emails {
		if e == "" {
			continue
		}
		set[e] = struct{}{}
	}
	return AllowList{emails: set}
}

func (a AllowList) Contains(email string) bool {
	if email == "" {
		return false
	}
	_, ok := a.emails[email]
	return ok
}

func (a AllowList) Len() int { return len(a.emails) }
