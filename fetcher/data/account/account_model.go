package accountfetcher

// Account is the statistics record of a resolved username.
type Account struct {
	Username string `json:"username"`
	Level    int    `json:"level"`
	Wins     int    `json:"wins"`
}

// accountResponse is the raw body of the accounts endpoint.
// Pointers tell a missing field apart from a zero value.
type accountResponse struct {
	Username *string `json:"username"`
	Level    *int    `json:"level"`
	Wins     *int    `json:"wins"`
}
