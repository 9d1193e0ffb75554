package carelink

import "net/http"

// Doer is the transport primitive the client sends requests through.
// *http.Client satisfies it; tests substitute a scripted implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialStore is the durable key-value store the client mirrors its
// token pair into. Implementations must survive process restarts and
// serialize their own reads/writes.
//
// Get returns found=false (and no error) when the key is absent.
type CredentialStore interface {
	Get(key string) (value string, found bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
