// Package types holds the data shared between the monitor's packages.
package types

// A RESTError is the JSON body of a failed admin API request.
type RESTError struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
}
