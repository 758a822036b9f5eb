package common

// AccessTokenHeaderName is the HTTP header carrying the bearer access token.
const AccessTokenHeaderName = "Authorization"

// EntriesTable is the name of the diary entries collection. The client query
// builder and the server storage layer both address entries through it.
const EntriesTable = "catostrafization_entries"
