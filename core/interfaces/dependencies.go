// ABOUTME: Collaborators handed to the clean service at construction time
// ABOUTME: cmd/api, cmd/podclean and the load test each assemble one

package interfaces

// Dependencies groups what the clean service needs from the outside world.
// Cache may be nil, in which case every request fetches upstream.
type Dependencies struct {
	HTTPClient HTTPClient
	Cache      Cache
	Logger     Logger
}
