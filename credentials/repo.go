package credentials

// Repo abstracts durable storage of the credential record. Implementations
// must treat Save of a zero-value field as "leave the stored value alone";
// only Clear removes keys.
type Repo interface {
	// Save persists the fields present on the credential. Storage failures
	// are not fatal to the session: implementations log and continue, the
	// in-memory session state stays authoritative for the process lifetime.
	Save(credential Credential) error

	// Load reconstructs the credential record from storage. A corrupt
	// stored profile is discarded and reported as absent, never as an error.
	Load() (Credential, error)

	// Clear erases all stored keys. Callers never observe a partial clear.
	Clear() error
}
