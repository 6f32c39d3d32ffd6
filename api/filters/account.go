package filters

import "strings"

// Query parameters for the live accounts lookup.
type AccountsParams struct {
	Usernames string `form:"usernames"`
}

// List splits the comma separated usernames, keeping their order.
func (q *AccountsParams) List() []string {
	var usernames []string
	for _, u := range strings.Split(q.Usernames, ",") {
		if u = strings.TrimSpace(u); u != "" {
			usernames = append(usernames, u)
		}
	}
	return usernames
}

// Query parameters for the snapshot history.
type AccountHistoryParams struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
