package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountsParamsList(t *testing.T) {
	tests := []struct {
		name      string
		usernames string
		expected  []string
	}{
		{name: "empty", usernames: "", expected: nil},
		{name: "only separators", usernames: " , ,", expected: nil},
		{name: "keeps order", usernames: "user3,user1, user2 ", expected: []string{"user3", "user1", "user2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := AccountsParams{Usernames: tt.usernames}
			assert.Equal(t, tt.expected, params.List())
		})
	}
}
