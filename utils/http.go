// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by outbound integrations (Google Maps geocoding and
// place search).
var HTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}
